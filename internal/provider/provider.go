// Package provider defines the upstream video API the resolver talks to
// and its Bilibili implementation.
package provider

import (
	"context"

	"biliredirect/internal/media"
)

// Upstream is the video platform's metadata and playback API.
type Upstream interface {
	// FetchParts returns the page list of a video. A non-zero Code in the
	// result is an upstream verdict, not a transport error.
	FetchParts(ctx context.Context, bvid string) (*media.PageList, error)

	// FetchPlayback returns the playurl response for one part of a video.
	FetchPlayback(ctx context.Context, bvid string, cid int64) (*media.PlayURL, error)
}
