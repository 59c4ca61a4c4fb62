package resolve

import (
	"errors"
	"fmt"
)

// Failure kinds. Every *Error matches exactly one of them with errors.Is.
var (
	ErrTransport        = errors.New("upstream request failed")
	ErrUpstreamMetadata = errors.New("video not found or removed")
	ErrUpstreamPlayback = errors.New("upstream rejected the playback request")
	ErrNoPlayableURL    = errors.New("no playable CDN URL found")
)

// Error is a failed resolution. Its message is always
// "resolution failed: <cause>".
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return "resolution failed: " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func fail(kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func playbackError(message string) *Error {
	if message == "" {
		message = "unknown error"
	}
	return fail(ErrUpstreamPlayback, fmt.Errorf("failed to get play URL: %s", message))
}

// outcome is the metrics label for err.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUpstreamMetadata):
		return "metadata"
	case errors.Is(err, ErrUpstreamPlayback):
		return "playback"
	case errors.Is(err, ErrNoPlayableURL):
		return "no_url"
	default:
		return "transport"
	}
}
