// Package resolve turns a BVID into a playable CDN URL with two sequential
// upstream calls: the page list for the first part's CID, then the
// playurl lookup for that part.
package resolve

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"biliredirect/internal/media"
	"biliredirect/internal/metrics"
	"biliredirect/internal/provider"
)

// Resolver resolves BVIDs against an Upstream. It holds no per-request
// state and is safe for concurrent use.
type Resolver struct {
	upstream provider.Upstream
	log      zerolog.Logger
}

// New creates a Resolver.
func New(upstream provider.Upstream, log zerolog.Logger) *Resolver {
	return &Resolver{
		upstream: upstream,
		log:      log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve looks up the CDN URL for bvid. Errors are always *Error.
func (r *Resolver) Resolve(ctx context.Context, bvid string) (*media.Resolution, error) {
	start := time.Now()
	res, err := r.resolve(ctx, bvid)

	metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	metrics.ResolutionsTotal.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		r.log.Error().Err(err).Str("bvid", bvid).Msg("resolution failed")
		return nil, err
	}
	r.log.Info().
		Str("bvid", bvid).
		Int64("cid", res.CID).
		Str("format", res.Format).
		Dur("took", time.Since(start)).
		Msg("resolved")
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, bvid string) (*media.Resolution, error) {
	r.log.Info().Str("bvid", bvid).Msg("fetching page list")

	parts, err := r.upstream.FetchParts(ctx, bvid)
	if err != nil {
		return nil, fail(ErrTransport, err)
	}
	if parts.Code != 0 || len(parts.Parts) == 0 {
		return nil, fail(ErrUpstreamMetadata, ErrUpstreamMetadata)
	}

	// Only the first part is ever played.
	cid := parts.Parts[0].CID
	r.log.Info().Str("bvid", bvid).Int64("cid", cid).Msg("fetching play URL")

	play, err := r.upstream.FetchPlayback(ctx, bvid, cid)
	if err != nil {
		return nil, fail(ErrTransport, err)
	}
	if play.Code != 0 {
		return nil, playbackError(play.Message)
	}

	// An empty first URL does not fall through to the other format.
	src, ok := play.Source()
	if !ok || src.URL() == "" {
		return nil, fail(ErrNoPlayableURL, ErrNoPlayableURL)
	}

	return &media.Resolution{
		BVID:   bvid,
		CID:    cid,
		Format: src.Format().String(),
		URL:    src.URL(),
	}, nil
}
