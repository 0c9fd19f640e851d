// Package search ranks documents against queries over an immutable inverted
// index. Queries are conjunctive: a result must contain every query term
// that exists in the vocabulary.
package search

import (
	"sort"

	"druglabelsearch/internal/index"
)

const snippetLen = 200

// Result is one ranked hit with a small projection of the stored record.
type Result struct {
	SetID             string  `json:"setid"`
	Score             float64 `json:"score"`
	DrugName          string  `json:"drug_name"`
	Indications       string  `json:"indications"`
	ActiveIngredients string  `json:"active_ingredients"`
}

// Engine answers queries against a loaded index. It performs reads only and
// holds no locks; serving concurrent queries is safe as long as the index is
// not mid-build.
type Engine struct {
	ix *index.InvertedIndex
}

// NewEngine wraps a read-only reference to the index.
func NewEngine(ix *index.InvertedIndex) *Engine {
	return &Engine{ix: ix}
}

// Search tokenizes the query with the index's own tokenizer, scores every
// document carrying an indexed query term under the model's IDF, drops
// documents that miss any indexed term, and returns the topK by score.
// Terms absent from the vocabulary are excluded from both scoring and the
// required-match count. An empty query after tokenization returns nothing.
func (e *Engine) Search(query string, model Model, topK int) []Result {
	terms := uniqueTerms(index.Tokenize(query))
	if len(terms) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	matched := make(map[string]int)
	indexedTerms := 0

	for _, term := range terms {
		df := e.ix.DocFrequency(term)
		if df == 0 {
			continue
		}
		indexedTerms++

		idf := model.IDF(e.ix.DocCount, df)
		for docID, tf := range e.ix.Postings[term] {
			scores[docID] += float64(tf) * idf
			matched[docID]++
		}
	}
	if indexedTerms == 0 {
		return nil
	}

	ranked := make([]Result, 0, len(scores))
	for docID, score := range scores {
		if matched[docID] < indexedTerms {
			continue
		}
		rec := e.ix.Documents[docID]
		ranked = append(ranked, Result{
			SetID:             docID,
			Score:             score,
			DrugName:          rec.DrugName,
			Indications:       snippet(rec.IndicationsAndUsage),
			ActiveIngredients: rec.ActiveIngredients,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].SetID < ranked[j].SetID
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// Compare runs the same query under every model, for side-by-side study of
// the weighting formulas.
func (e *Engine) Compare(query string, topK int) map[Model][]Result {
	out := make(map[Model][]Result, len(Models))
	for _, m := range Models {
		out[m] = e.Search(query, m, topK)
	}
	return out
}

// uniqueTerms deduplicates while preserving first-occurrence order.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// snippet truncates the indications text for result display.
func snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	return text[:snippetLen] + "..."
}
