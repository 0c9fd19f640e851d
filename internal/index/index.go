package index

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"

	"druglabelsearch/internal/types"
	"golang.org/x/sync/errgroup"
)

// InvertedIndex maps term → document → term frequency over the weighted
// document text, and stores the records themselves for result projection.
// It is built incrementally and immutable once persisted; queries hold a
// read-only reference.
type InvertedIndex struct {
	Postings   map[string]map[string]int   `json:"index"`
	DocCount   int                         `json:"doc_count"`
	DocLengths map[string]int              `json:"doc_lengths"`
	Documents  map[string]types.DrugRecord `json:"drugs"`
}

// New creates an empty index.
func New() *InvertedIndex {
	return &InvertedIndex{
		Postings:   make(map[string]map[string]int),
		DocLengths: make(map[string]int),
		Documents:  make(map[string]types.DrugRecord),
	}
}

// AddDocument tokenizes text and records the term frequencies for docID.
// Re-adding a document replaces its previous postings entirely.
func (ix *InvertedIndex) AddDocument(docID, text string) {
	tokens := Tokenize(text)

	if _, exists := ix.DocLengths[docID]; exists {
		ix.removeDocument(docID)
		ix.DocCount--
	}

	counts := make(map[string]int)
	for _, token := range tokens {
		counts[token]++
	}
	ix.merge(docID, counts, len(tokens))
	ix.DocCount++
}

// AddRecord stores the record and indexes its weighted document text.
func (ix *InvertedIndex) AddRecord(rec types.DrugRecord, weights []FieldWeight) {
	ix.Documents[rec.SetID] = rec
	ix.AddDocument(rec.SetID, BuildDocumentText(rec, weights))
}

// merge folds one document's term counts into the shared postings.
func (ix *InvertedIndex) merge(docID string, counts map[string]int, length int) {
	for term, count := range counts {
		docs, ok := ix.Postings[term]
		if !ok {
			docs = make(map[string]int)
			ix.Postings[term] = docs
		}
		docs[docID] = count
	}
	ix.DocLengths[docID] = length
}

func (ix *InvertedIndex) removeDocument(docID string) {
	for term, docs := range ix.Postings {
		delete(docs, docID)
		if len(docs) == 0 {
			delete(ix.Postings, term)
		}
	}
	delete(ix.DocLengths, docID)
}

// DocFrequency returns the number of documents containing term.
func (ix *InvertedIndex) DocFrequency(term string) int {
	return len(ix.Postings[term])
}

// BuildFromRecords indexes all records. With workers > 1, tokenization and
// counting run in parallel; merging into the shared postings happens on a
// single goroutine so the postings map is the only point of shared state.
func BuildFromRecords(records []types.DrugRecord, weights []FieldWeight, workers int) (*InvertedIndex, error) {
	ix := New()

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || len(records) < 2 {
		for _, rec := range records {
			ix.AddRecord(rec, weights)
		}
		return ix, nil
	}

	type docCounts struct {
		rec    types.DrugRecord
		counts map[string]int
		length int
	}

	jobs := make(chan types.DrugRecord)
	results := make(chan docCounts, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for rec := range jobs {
				tokens := Tokenize(BuildDocumentText(rec, weights))
				counts := make(map[string]int, len(tokens))
				for _, token := range tokens {
					counts[token]++
				}
				results <- docCounts{rec: rec, counts: counts, length: len(tokens)}
			}
			return nil
		})
	}

	go func() {
		for _, rec := range records {
			jobs <- rec
		}
		close(jobs)
		g.Wait()
		close(results)
	}()

	for dc := range results {
		ix.Documents[dc.rec.SetID] = dc.rec
		ix.merge(dc.rec.SetID, dc.counts, dc.length)
		ix.DocCount++
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ix, nil
}

// Save writes the whole index as one JSON document.
func (ix *InvertedIndex) Save(path string) error {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// Load reads an index saved by Save. There is no partial load; the file is
// the complete index.
func Load(path string) (*InvertedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	ix := New()
	if err := json.Unmarshal(data, ix); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	return ix, nil
}

// TermCount pairs a term with its document frequency.
type TermCount struct {
	Term     string
	DocCount int
}

// Stats summarizes the index.
type Stats struct {
	TotalDocuments int
	UniqueTerms    int
	TotalTokens    int
	AvgDocLength   float64
	TopTerms       []TermCount
}

// Statistics computes index-wide counts and the topN terms by document
// frequency.
func (ix *InvertedIndex) Statistics(topN int) Stats {
	totalTokens := 0
	for _, n := range ix.DocLengths {
		totalTokens += n
	}

	avg := 0.0
	if ix.DocCount > 0 {
		avg = float64(totalTokens) / float64(ix.DocCount)
	}

	terms := make([]TermCount, 0, len(ix.Postings))
	for term, docs := range ix.Postings {
		terms = append(terms, TermCount{Term: term, DocCount: len(docs)})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].DocCount != terms[j].DocCount {
			return terms[i].DocCount > terms[j].DocCount
		}
		return terms[i].Term < terms[j].Term
	})
	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}

	return Stats{
		TotalDocuments: ix.DocCount,
		UniqueTerms:    len(ix.Postings),
		TotalTokens:    totalTokens,
		AvgDocLength:   avg,
		TopTerms:       terms,
	}
}
