package parser

import (
	"testing"
)

func TestExtractLinks(t *testing.T) {
	htmlContent := `
	<html>
		<body>
			<a href="https://example.com/page1">Link 1</a>
			<a href="/page2">Link 2</a>
			<a href="page3?setid=abc">Link 3</a>
		</body>
	</html>
	`

	links := ExtractLinks(htmlContent, "https://example.com/start")

	want := map[string]bool{
		"https://example.com/page1":           true,
		"https://example.com/page2":           true,
		"https://example.com/page3?setid=abc": true,
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for _, link := range links {
		if !want[link] {
			t.Errorf("unexpected link %q", link)
		}
	}
}

func TestExtractLinksSkipsNonNavigational(t *testing.T) {
	htmlContent := `
	<html>
		<body>
			<a href="javascript:void(0)">js</a>
			<a href="mailto:someone@example.com">mail</a>
			<a href="tel:+1234567890">tel</a>
			<a href="data:text/plain,hi">data</a>
			<a href="#section">fragment</a>
			<a href="https://other-site.com/page">offsite</a>
		</body>
	</html>
	`

	links := ExtractLinks(htmlContent, "https://example.com")

	if len(links) != 0 {
		t.Errorf("expected 0 links, got %v", links)
	}
}

func TestExtractLinksStripsFragments(t *testing.T) {
	htmlContent := `<a href="/page#warnings">Link</a>`

	links := ExtractLinks(htmlContent, "https://example.com")

	if len(links) != 1 || links[0] != "https://example.com/page" {
		t.Errorf("expected fragment-stripped link, got %v", links)
	}
}

func TestExtractLinksNoDuplicates(t *testing.T) {
	htmlContent := `
	<a href="/page">Link 1</a>
	<a href="https://example.com/page">Link 2</a>
	<a href="/page#other">Link 3</a>
	`

	links := ExtractLinks(htmlContent, "https://example.com")

	if len(links) != 1 {
		t.Errorf("expected 1 unique link, got %d: %v", len(links), links)
	}
}

func TestExtractLinksEmptyHTML(t *testing.T) {
	links := ExtractLinks("", "https://example.com")

	if len(links) != 0 {
		t.Errorf("expected 0 links, got %d", len(links))
	}
}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		url     string
		allowed bool
	}{
		{"https://example.com/drugInfo.cfm?setid=abc", true},
		{"https://example.com/page", true},
		{"https://example.com/logo.png", false},
		{"https://example.com/style.CSS", false},
		{"https://example.com/app.js", false},
		{"https://example.com/font.woff2", false},
		{"https://example.com/video.mp4", false},
		{"https://example.com/image.png?size=large", false},
		{"https://example.com/pngs/overview", true},
	}

	for _, tt := range tests {
		if got := IsAllowed(tt.url); got != tt.allowed {
			t.Errorf("IsAllowed(%q) = %v, want %v", tt.url, got, tt.allowed)
		}
	}
}
