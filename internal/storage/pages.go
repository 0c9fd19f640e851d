package storage

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const maxPageNameLen = 200

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// PageStore writes raw fetched page bodies under root, bucketed into
// fixed-size batch directories to bound directory fan-out. Pages are written
// once per successful fetch and never modified.
type PageStore struct {
	root      string
	batchSize int
}

// NewPageStore creates the store rooted at dir.
func NewPageStore(dir string, batchSize int) (*PageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create page store directory: %w", err)
	}
	return &PageStore{root: dir, batchSize: batchSize}, nil
}

// PathFor derives the stable on-disk path for a URL. The name comes from the
// URL's path+query with unsafe characters replaced, truncated to a bounded
// length, falling back to "index" for the site root. The batch directory is
// chosen by integer-dividing pageCount by the batch size.
func (s *PageStore) PathFor(rawURL string, pageCount int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL for page path: %w", err)
	}

	pathAndQuery := u.Path
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}

	name := unsafePathChars.ReplaceAllString(strings.Trim(pathAndQuery, "/"), "_")
	if name == "" {
		name = "index"
	}
	if len(name) > maxPageNameLen {
		name = name[:maxPageNameLen]
	}

	batch := fmt.Sprintf("batch_%d", pageCount/s.batchSize)
	return filepath.Join(s.root, batch, name+".html"), nil
}

// Save writes the page body to its derived path and returns that path.
func (s *PageStore) Save(rawURL, content string, pageCount int) (string, error) {
	path, err := s.PathFor(rawURL, pageCount)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write page: %w", err)
	}
	return path, nil
}

// Walk calls fn for every saved page file with its path and file name.
func (s *PageStore) Walk(fn func(path, name string) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		return fn(path, d.Name())
	})
}
