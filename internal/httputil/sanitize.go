package httputil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that a URL is well-formed, absolute and uses one of
// the allowed schemes. With no schemes given only HTTPS is accepted.
func ValidateURL(rawURL string, schemes ...string) error {
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	allowed := false
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("scheme %q not allowed (want %s)", u.Scheme, strings.Join(schemes, " or "))
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// BuildURL constructs a URL from base and path components, encoding each path segment.
func BuildURL(base string, pathSegments ...string) string {
	u := strings.TrimRight(base, "/")
	for _, seg := range pathSegments {
		u += "/" + url.PathEscape(seg)
	}
	return u
}
