// Package httputil provides the hardened outbound HTTP client and the
// browser header set the upstream API expects.
package httputil

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream call end to end.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is a desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultAcceptLanguage matches a browser with a Chinese locale.
const DefaultAcceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"

// NewClient creates a hardened HTTP client with secure defaults.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          50,
			IdleConnTimeout:       30 * time.Second,
			DisableCompression:    false,
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
		},
	}
}

// BrowserHeaders returns the header set of a browser issuing a same-site
// XHR from a page at referer. Accept-Encoding is deliberately absent: the
// transport negotiates gzip itself and only then decodes bodies for us.
func BrowserHeaders(userAgent, acceptLanguage, referer string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if acceptLanguage == "" {
		acceptLanguage = DefaultAcceptLanguage
	}
	headers := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": acceptLanguage,
		"Connection":      "keep-alive",
		"Sec-Fetch-Dest":  "empty",
		"Sec-Fetch-Mode":  "cors",
		"Sec-Fetch-Site":  "same-site",
	}
	if referer != "" {
		headers["Referer"] = referer
	}
	return headers
}
