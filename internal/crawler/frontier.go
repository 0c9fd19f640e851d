package crawler

import (
	"sort"

	"druglabelsearch/internal/types"
	"github.com/bits-and-blooms/bloom/v3"
)

// Bloom filter sized for a full single-site crawl.
const (
	bloomFilterSize = 1_000_000
	bloomFilterFP   = 0.01
)

// Frontier holds the crawl state: the FIFO queue of URLs still to fetch, the
// set already fetched, and the running saved-page counter. A URL is enqueued
// only if it is in neither set, so visited and queue never intersect. The
// bloom filter is a fast negative check in front of the exact sets; the sets
// remain authoritative.
type Frontier struct {
	queue     []string
	queued    map[string]struct{}
	visited   map[string]struct{}
	pageCount int
	seen      *bloom.BloomFilter
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
		seen:    bloom.NewWithEstimates(bloomFilterSize, bloomFilterFP),
	}
}

// Restore rebuilds a frontier from a snapshot.
func Restore(snap types.FrontierSnapshot) *Frontier {
	f := NewFrontier()
	for _, u := range snap.Visited {
		f.visited[u] = struct{}{}
		f.seen.AddString(u)
	}
	for _, u := range snap.ToVisit {
		if _, ok := f.visited[u]; ok {
			continue
		}
		if _, ok := f.queued[u]; ok {
			continue
		}
		f.queue = append(f.queue, u)
		f.queued[u] = struct{}{}
		f.seen.AddString(u)
	}
	f.pageCount = snap.PageCount
	return f
}

// Enqueue adds a URL if it has been neither visited nor queued. It reports
// whether the URL was added.
func (f *Frontier) Enqueue(url string) bool {
	if f.seen.TestString(url) {
		// Possible bloom false positive; confirm against the exact sets.
		if _, ok := f.visited[url]; ok {
			return false
		}
		if _, ok := f.queued[url]; ok {
			return false
		}
	}
	f.seen.AddString(url)
	f.queue = append(f.queue, url)
	f.queued[url] = struct{}{}
	return true
}

// Dequeue pops the oldest queued URL.
func (f *Frontier) Dequeue() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// MarkVisited moves a URL into the visited set. Both successful fetches and
// permanently failed ones end up here; neither is ever fetched again.
func (f *Frontier) MarkVisited(url string) {
	delete(f.queued, url)
	f.visited[url] = struct{}{}
	f.seen.AddString(url)
}

// Visited reports whether the URL has already reached a terminal state.
func (f *Frontier) Visited(url string) bool {
	if !f.seen.TestString(url) {
		return false
	}
	_, ok := f.visited[url]
	return ok
}

// QueueLen returns the number of pending URLs.
func (f *Frontier) QueueLen() int { return len(f.queue) }

// VisitedCount returns the number of URLs in a terminal state.
func (f *Frontier) VisitedCount() int { return len(f.visited) }

// PageCount returns the number of pages saved so far.
func (f *Frontier) PageCount() int { return f.pageCount }

// IncrementPageCount bumps the saved-page counter.
func (f *Frontier) IncrementPageCount() { f.pageCount++ }

// Snapshot captures the frontier for persistence. The visited list is sorted
// so snapshots are deterministic; queue order is preserved as is.
func (f *Frontier) Snapshot() types.FrontierSnapshot {
	visited := make([]string, 0, len(f.visited))
	for u := range f.visited {
		visited = append(visited, u)
	}
	sort.Strings(visited)

	queue := make([]string, len(f.queue))
	copy(queue, f.queue)

	return types.FrontierSnapshot{
		ToVisit:   queue,
		Visited:   visited,
		PageCount: f.pageCount,
	}
}
