package http

import (
	"net/http"
)

// ApplyHeaders sets the request headers the crawler identifies itself with.
// The crawler is a research tool and does not masquerade as a browser.
func ApplyHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
}
