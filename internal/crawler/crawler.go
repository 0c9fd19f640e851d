// Package crawler implements the resumable single-site crawl loop: a FIFO
// frontier with politeness delays, bounded retries, an append-only fetch
// audit trail, and periodic durable snapshots.
package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"druglabelsearch/internal/config"
	httpx "druglabelsearch/internal/http"
	"druglabelsearch/internal/parser"
	"druglabelsearch/internal/storage"
	"druglabelsearch/internal/types"
	"golang.org/x/time/rate"
)

// Crawler drives the fetch loop. It is strictly sequential: one URL is in
// flight at a time, and the frontier, audit log, and visited set form a
// single critical section per URL.
type Crawler struct {
	cfg       config.CrawlerConfig
	frontier  *Frontier
	audit     *storage.AuditLog
	pages     *storage.PageStore
	statePath string
	client    *http.Client
	limiter   *rate.Limiter
	policy    httpx.RetryPolicy
	robots    *robotsGate
	log       *slog.Logger

	results types.CrawlResults
}

// New creates a crawler over dataDir. With resume set, the frontier is
// restored from the last snapshot and the audit log is appended to;
// otherwise both start fresh.
func New(cfg config.CrawlerConfig, dataDir string, resume bool) (*Crawler, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	audit, err := storage.OpenAuditLog(filepath.Join(dataDir, "crawl_metadata.tsv"), resume)
	if err != nil {
		return nil, err
	}

	pages, err := storage.NewPageStore(filepath.Join(dataDir, "html"), cfg.BatchSize)
	if err != nil {
		audit.Close()
		return nil, err
	}

	statePath := filepath.Join(dataDir, "crawler_state.json")
	frontier := NewFrontier()
	if resume {
		snap, ok, err := storage.LoadSnapshot(statePath)
		if err != nil {
			audit.Close()
			return nil, err
		}
		if ok {
			frontier = Restore(snap)
		}
	}

	client := &http.Client{Timeout: cfg.Timeout}

	return &Crawler{
		cfg:       cfg,
		frontier:  frontier,
		audit:     audit,
		pages:     pages,
		statePath: statePath,
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(cfg.SleepMin), 1),
		policy: httpx.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			SleepMin:   cfg.SleepMin,
			SleepMax:   cfg.SleepMax,
		},
		robots: newRobotsGate(client, cfg.UserAgent, cfg.IgnoreRobots),
		log:    slog.Default(),
	}, nil
}

// Frontier exposes the crawl state, mainly for inspection in tests and the
// resume path.
func (c *Crawler) Frontier() *Frontier { return c.frontier }

// Fetch retrieves one URL. A URL already in a terminal state is skipped with
// no I/O. Otherwise up to MaxRetries attempts are made, each preceded by the
// mandatory politeness delay. The terminal outcome is appended to the audit
// log before Fetch returns; audit failures are fatal to the run.
func (c *Crawler) Fetch(ctx context.Context, url string) (string, bool, error) {
	if c.frontier.Visited(url) {
		return "", false, nil
	}

	lastCode := 0
	for attempt := 1; attempt <= c.policy.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", false, err
		}
		time.Sleep(c.policy.Jitter())

		c.log.Info("fetching", "url", url, "attempt", attempt, "pages", c.frontier.PageCount())

		body, code, err := c.attempt(ctx, url)
		if err == nil && !c.policy.ShouldRetry(code, nil) {
			c.frontier.MarkVisited(url)
			savedPath, pathErr := c.pages.PathFor(url, c.frontier.PageCount())
			if pathErr != nil {
				return "", false, pathErr
			}
			if err := c.audit.Append(types.FetchRecord{
				URL:       url,
				Status:    types.FetchSuccess,
				HTTPCode:  code,
				Retries:   attempt,
				SavedPath: savedPath,
				ScrapedAt: time.Now(),
			}); err != nil {
				return "", false, err
			}
			return body, true, nil
		}

		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		if code != 0 {
			lastCode = code
		}
		c.log.Warn("fetch attempt failed", "url", url, "attempt", attempt, "code", code, "error", err)
	}

	c.frontier.MarkVisited(url)
	if err := c.audit.Append(types.FetchRecord{
		URL:       url,
		Status:    types.FetchFailed,
		HTTPCode:  lastCode,
		Retries:   c.policy.MaxRetries,
		ScrapedAt: time.Now(),
	}); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// attempt issues a single HTTP request and returns the body and status code.
// A timeout or transport error is reported through err with code 0.
func (c *Crawler) attempt(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	httpx.ApplyHeaders(req, c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// Crawl runs the fetch loop until the queue drains, maxPages pages have been
// saved, or the context is cancelled. The frontier is snapshotted every
// SnapshotEvery pages and unconditionally before returning; snapshot and
// audit I/O errors abort the run.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxPages int) (types.CrawlResults, error) {
	if c.frontier.QueueLen() == 0 && c.frontier.VisitedCount() == 0 {
		c.frontier.Enqueue(startURL)
	} else {
		c.log.Info("resuming crawl", "pending", c.frontier.QueueLen(), "visited", c.frontier.VisitedCount())
	}

	for c.frontier.PageCount() < maxPages {
		url, ok := c.frontier.Dequeue()
		if !ok {
			break
		}

		body, fetched, err := c.Fetch(ctx, url)
		if err != nil {
			c.snapshot()
			return c.results, err
		}
		if !fetched {
			c.results.Failed++
			continue
		}
		c.results.Fetched++

		if err := c.processPage(url, body); err != nil {
			c.snapshot()
			return c.results, err
		}

		if c.frontier.PageCount()%c.cfg.SnapshotEvery == 0 {
			if err := c.snapshot(); err != nil {
				return c.results, err
			}
		}
	}

	if err := c.snapshot(); err != nil {
		return c.results, err
	}

	c.results.Pending = c.frontier.QueueLen()
	c.log.Info("crawl finished",
		"fetched", c.results.Fetched,
		"failed", c.results.Failed,
		"saved", c.results.Saved,
		"pending", c.results.Pending,
	)
	return c.results, nil
}

// processPage persists a fetched body and enqueues the page's allowed,
// unseen links.
func (c *Crawler) processPage(url, body string) error {
	path, err := c.pages.Save(url, body, c.frontier.PageCount())
	if err != nil {
		return err
	}
	c.frontier.IncrementPageCount()
	c.results.Saved++
	c.log.Info("saved page", "path", path)

	for _, link := range parser.ExtractLinks(body, url) {
		if !parser.IsAllowed(link) {
			continue
		}
		if !c.robots.Allowed(link) {
			continue
		}
		c.frontier.Enqueue(link)
	}
	return nil
}

func (c *Crawler) snapshot() error {
	if err := storage.SaveSnapshot(c.statePath, c.frontier.Snapshot()); err != nil {
		return fmt.Errorf("failed to save frontier snapshot: %w", err)
	}
	return nil
}

// Close releases the audit log.
func (c *Crawler) Close() error {
	return c.audit.Close()
}
