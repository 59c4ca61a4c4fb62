// Package extract pulls a Bilibili video identifier (BVID) out of
// whatever the caller pasted: a full video URL, a share link with query
// parameters, a bare path or the BVID itself.
package extract

import (
	"errors"
	"regexp"
)

// ErrNotFound is returned when the reference holds no recognizable BVID.
var ErrNotFound = errors.New("no BVID found")

// Patterns are tried in order and the first match wins. The bare pattern
// runs from the first "BV" to the next '?', '/' or end of input; it does
// not cross a line break.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(BV[^?/\n\r\x{2028}\x{2029}]*)(?:[?/]|$)`),
	regexp.MustCompile(`bvid=(BV[a-zA-Z0-9]+)`),
	regexp.MustCompile(`/video/(BV[a-zA-Z0-9]+)`),
}

// BVID returns the video identifier contained in reference.
func BVID(reference string) (string, error) {
	if reference == "" {
		return "", ErrNotFound
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(reference); m != nil {
			return m[1], nil
		}
	}
	return "", ErrNotFound
}
