// Package storage manages the crawl's durable artifacts: the fetch audit
// log, the frontier snapshot, the raw page store, and the extracted drug
// record store.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"druglabelsearch/internal/types"
)

var auditHeader = []string{"url", "status", "http_code", "retries", "saved_path", "scraped_at"}

// AuditLog is the append-only, tab-delimited record of terminal fetch
// outcomes. Every row is flushed to the OS before Append returns, so a
// record is durable before the next fetch attempt begins.
type AuditLog struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// OpenAuditLog opens the log at path. With resume set and an existing file,
// rows are appended after the prior crawl's; otherwise the file is truncated
// and a header row written.
func OpenAuditLog(path string, resume bool) (*AuditLog, error) {
	writeHeader := true
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if resume {
		if _, err := os.Stat(path); err == nil {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
			writeHeader = false
		}
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	w := csv.NewWriter(file)
	w.Comma = '\t'

	log := &AuditLog{file: file, w: w}
	if writeHeader {
		if err := log.writeRow(auditHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write audit header: %w", err)
		}
	}
	return log, nil
}

// Append writes one fetch record and flushes it.
func (l *AuditLog) Append(rec types.FetchRecord) error {
	httpCode := "N/A"
	if rec.HTTPCode != 0 {
		httpCode = strconv.Itoa(rec.HTTPCode)
	}
	savedPath := rec.SavedPath
	if savedPath == "" {
		savedPath = "N/A"
	}
	return l.writeRow([]string{
		rec.URL,
		rec.Status,
		httpCode,
		strconv.Itoa(rec.Retries),
		savedPath,
		rec.ScrapedAt.Format(time.RFC3339),
	})
}

func (l *AuditLog) writeRow(row []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("failed to write audit row: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("failed to flush audit row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *AuditLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
