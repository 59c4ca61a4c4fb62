package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"biliredirect/internal/config"
	"biliredirect/internal/httputil"
	"biliredirect/internal/media"
	"biliredirect/internal/metrics"
)

const (
	pagelistPath = "/x/player/pagelist"
	playurlPath  = "/x/player/playurl"
)

// Bilibili implements Upstream against api.bilibili.com.
type Bilibili struct {
	client *resty.Client
	cfg    config.Upstream
}

var _ Upstream = (*Bilibili)(nil)

// NewBilibili creates a Bilibili upstream on top of the hardened client.
func NewBilibili(cfg config.Upstream) *Bilibili {
	client := resty.NewWithClient(httputil.NewClient(cfg.Timeout)).
		SetBaseURL(cfg.APIBase)

	return &Bilibili{
		client: client,
		cfg:    cfg,
	}
}

// FetchParts calls the pagelist endpoint.
func (b *Bilibili) FetchParts(ctx context.Context, bvid string) (*media.PageList, error) {
	var out media.PageList
	err := b.getJSON(ctx, "pagelist", pagelistPath, b.cfg.SiteBase+"/", map[string]string{
		"bvid": bvid,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetching page list: %w", err)
	}
	return &out, nil
}

// FetchPlayback calls the playurl endpoint. The referer must be the
// video's own page or the API refuses the request.
func (b *Bilibili) FetchPlayback(ctx context.Context, bvid string, cid int64) (*media.PlayURL, error) {
	var out media.PlayURL
	referer := httputil.BuildURL(b.cfg.SiteBase, "video", bvid)
	err := b.getJSON(ctx, "playurl", playurlPath, referer, map[string]string{
		"bvid":         bvid,
		"cid":          strconv.FormatInt(cid, 10),
		"qn":           strconv.Itoa(b.cfg.Quality),
		"type":         "",
		"otype":        "json",
		"platform":     "html5",
		"high_quality": "1",
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetching play URL: %w", err)
	}
	return &out, nil
}

func (b *Bilibili) getJSON(ctx context.Context, endpoint, path, referer string, query map[string]string, out any) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeaders(httputil.BrowserHeaders(b.cfg.UserAgent, b.cfg.AcceptLanguage, referer)).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "http_"+strconv.Itoa(resp.StatusCode())).Inc()
		// Error statuses usually still carry the API's own code and message.
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "bad_json").Inc()
		return fmt.Errorf("parsing response: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}
