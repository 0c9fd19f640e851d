package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"druglabelsearch/internal/types"
)

func TestAuditLogWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl_metadata.tsv")

	log, err := OpenAuditLog(path, false)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}

	err = log.Append(types.FetchRecord{
		URL:       "https://example.com/page",
		Status:    types.FetchSuccess,
		HTTPCode:  200,
		Retries:   1,
		SavedPath: "data/html/batch_0/page.html",
		ScrapedAt: time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "url\tstatus\thttp_code\tretries\tsaved_path\tscraped_at" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	fields := strings.Split(lines[1], "\t")
	if len(fields) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(fields))
	}
	if fields[1] != "success" || fields[2] != "200" || fields[3] != "1" {
		t.Errorf("unexpected row: %v", fields)
	}
}

func TestAuditLogFailureRowUsesPlaceholders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl_metadata.tsv")

	log, err := OpenAuditLog(path, false)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	err = log.Append(types.FetchRecord{
		URL:       "https://example.com/broken",
		Status:    types.FetchFailed,
		Retries:   3,
		ScrapedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	log.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	fields := strings.Split(lines[1], "\t")
	if fields[2] != "N/A" {
		t.Errorf("expected http_code N/A, got %q", fields[2])
	}
	if fields[4] != "N/A" {
		t.Errorf("expected saved_path N/A, got %q", fields[4])
	}
}

func TestAuditLogResumeAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl_metadata.tsv")

	first, err := OpenAuditLog(path, false)
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	first.Append(types.FetchRecord{URL: "https://example.com/a", Status: types.FetchSuccess, HTTPCode: 200, Retries: 1, ScrapedAt: time.Now()})
	first.Close()

	second, err := OpenAuditLog(path, true)
	if err != nil {
		t.Fatalf("OpenAuditLog(resume) error = %v", err)
	}
	second.Append(types.FetchRecord{URL: "https://example.com/b", Status: types.FetchSuccess, HTTPCode: 200, Retries: 1, ScrapedAt: time.Now()})
	second.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows after resume, got %d lines", len(lines))
	}
	if strings.Count(string(data), "url\tstatus") != 1 {
		t.Error("resume must not write a second header")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawler_state.json")

	snap := types.FrontierSnapshot{
		ToVisit:   []string{"https://example.com/a", "https://example.com/b"},
		Visited:   []string{"https://example.com"},
		PageCount: 1,
	}
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	loaded, ok, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot to exist")
	}
	if loaded.PageCount != 1 || len(loaded.ToVisit) != 2 || len(loaded.Visited) != 1 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.ToVisit[0] != "https://example.com/a" {
		t.Errorf("queue order not preserved: %v", loaded.ToVisit)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	_, ok, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing snapshot")
	}
}

func TestSnapshotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawler_state.json")

	SaveSnapshot(path, types.FrontierSnapshot{PageCount: 1})
	SaveSnapshot(path, types.FrontierSnapshot{PageCount: 2})

	loaded, _, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if loaded.PageCount != 2 {
		t.Errorf("expected latest snapshot, got page_count=%d", loaded.PageCount)
	}
}

func TestPageStorePathFor(t *testing.T) {
	store, err := NewPageStore(t.TempDir(), 2000)
	if err != nil {
		t.Fatalf("NewPageStore() error = %v", err)
	}

	tests := []struct {
		url       string
		pageCount int
		wantName  string
		wantBatch string
	}{
		{"https://example.com/drugInfo.cfm?setid=abc-123", 0, "drugInfo_cfm_setid_abc-123.html", "batch_0"},
		{"https://example.com/", 0, "index.html", "batch_0"},
		{"https://example.com/a/b", 1999, "a_b.html", "batch_0"},
		{"https://example.com/a/b", 2000, "a_b.html", "batch_1"},
	}

	for _, tt := range tests {
		path, err := store.PathFor(tt.url, tt.pageCount)
		if err != nil {
			t.Fatalf("PathFor(%q) error = %v", tt.url, err)
		}
		if filepath.Base(path) != tt.wantName {
			t.Errorf("PathFor(%q) name = %q, want %q", tt.url, filepath.Base(path), tt.wantName)
		}
		if filepath.Base(filepath.Dir(path)) != tt.wantBatch {
			t.Errorf("PathFor(%q) batch = %q, want %q", tt.url, filepath.Base(filepath.Dir(path)), tt.wantBatch)
		}
	}
}

func TestPageStorePathTruncation(t *testing.T) {
	store, _ := NewPageStore(t.TempDir(), 2000)

	long := "https://example.com/" + strings.Repeat("x", 500)
	path, err := store.PathFor(long, 0)
	if err != nil {
		t.Fatalf("PathFor() error = %v", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".html")
	if len(name) != 200 {
		t.Errorf("expected name truncated to 200 chars, got %d", len(name))
	}
}

func TestPageStoreSaveAndWalk(t *testing.T) {
	store, _ := NewPageStore(t.TempDir(), 2000)

	path, err := store.Save("https://example.com/page", "<html>hi</html>", 0)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved page: %v", err)
	}
	if string(data) != "<html>hi</html>" {
		t.Errorf("unexpected page content: %q", data)
	}

	var seen []string
	err = store.Walk(func(p, name string) error {
		seen = append(seen, name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(seen) != 1 || seen[0] != "page.html" {
		t.Errorf("unexpected walk results: %v", seen)
	}
}
