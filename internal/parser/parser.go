// Package parser extracts and filters hyperlinks from fetched pages.
package parser

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Non-document extensions the crawler never enqueues.
var mediaExtensions = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|ico|css|js|svg|woff|woff2|ttf|eot|mp4|mp3|mov|avi)$`)

var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// IsAllowed reports whether a URL points at a document rather than an image,
// stylesheet, script, font, or media file. It is applied when enqueuing newly
// discovered links, not when dequeuing.
func IsAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return !mediaExtensions.MatchString(u.Path)
}

// ExtractLinks scans an HTML document for hyperlink targets, resolves them
// against baseURL, and returns the deduplicated same-origin results stripped
// to scheme+host+path+query. Malformed targets are logged and skipped.
func ExtractLinks(htmlContent, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		slog.Warn("unparseable base URL, no links extracted", "url", baseURL, "error", err)
		return nil
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	links := make([]string, 0)
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				link, ok := normalizeLink(attr.Val, base)
				if !ok {
					continue
				}
				if !seen[link] {
					links = append(links, link)
					seen[link] = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// normalizeLink resolves href against base and reduces it to
// scheme+host+path+query. It rejects non-navigational schemes, fragment-only
// targets, and anything off the base URL's origin.
func normalizeLink(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(href, scheme) {
			return "", false
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		slog.Warn("skipping malformed link", "href", href, "base", base.String(), "error", err)
		return "", false
	}

	resolved := base.ResolveReference(u)
	if resolved.Host != base.Host {
		return "", false
	}

	clean := resolved.Scheme + "://" + resolved.Host + resolved.Path
	if resolved.RawQuery != "" {
		clean += "?" + resolved.RawQuery
	}
	return clean, true
}
