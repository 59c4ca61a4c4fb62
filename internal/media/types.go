// Package media defines the request-scoped values passed between the
// extractor, the upstream adapter and the resolver.
package media

// Format identifies which of the two playurl response shapes a URL came from.
type Format int

const (
	// Durl is the direct-URL list (FLV/MP4).
	Durl Format = iota
	// Dash is the adaptive stream descriptor list.
	Dash
)

func (f Format) String() string {
	switch f {
	case Durl:
		return "durl"
	case Dash:
		return "dash"
	default:
		return "unknown"
	}
}

// Part is one entry of a video's page list.
type Part struct {
	CID   int64  `json:"cid"`
	Page  int    `json:"page"`
	Title string `json:"part"`
}

// PageList is the decoded pagelist response.
type PageList struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Parts   []Part `json:"data"`
}

// DirectURL is one element of the durl list.
type DirectURL struct {
	Order  int    `json:"order"`
	Length int64  `json:"length"`
	Size   int64  `json:"size"`
	URL    string `json:"url"`
}

// DashStream is one element of dash.video.
type DashStream struct {
	ID      int    `json:"id"`
	BaseURL string `json:"baseUrl"`
	Codecs  string `json:"codecs"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// DashInfo is the dash block of a playurl response.
type DashInfo struct {
	Duration int          `json:"duration"`
	Video    []DashStream `json:"video"`
}

// PlayURLData is the data block of a playurl response.
type PlayURLData struct {
	Quality int         `json:"quality"`
	Format  string      `json:"format"`
	Durl    []DirectURL `json:"durl"`
	Dash    *DashInfo   `json:"dash"`
}

// PlayURL is the decoded playurl response.
type PlayURL struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    *PlayURLData `json:"data"`
}

// Source is a playable source picked out of a PlayURL. It is either
// DirectURLs or DashStreams.
type Source interface {
	URL() string
	Format() Format
	isSource()
}

// DirectURLs is a non-empty durl list.
type DirectURLs []DirectURL

func (d DirectURLs) URL() string    { return d[0].URL }
func (d DirectURLs) Format() Format { return Durl }
func (DirectURLs) isSource()        {}

// DashStreams is a non-empty dash.video list.
type DashStreams []DashStream

func (d DashStreams) URL() string    { return d[0].BaseURL }
func (d DashStreams) Format() Format { return Dash }
func (DashStreams) isSource()        {}

// Source picks the playable source of the response. The durl list wins
// over dash whenever it is non-empty; ok is false when neither is usable.
func (p *PlayURL) Source() (src Source, ok bool) {
	if p == nil || p.Data == nil {
		return nil, false
	}
	if len(p.Data.Durl) > 0 {
		return DirectURLs(p.Data.Durl), true
	}
	if p.Data.Dash != nil && len(p.Data.Dash.Video) > 0 {
		return DashStreams(p.Data.Dash.Video), true
	}
	return nil, false
}

// Resolution is the outcome of one successful resolution.
type Resolution struct {
	BVID   string `json:"bvid"`
	CID    int64  `json:"cid"`
	Format string `json:"format"`
	URL    string `json:"url"`
}
