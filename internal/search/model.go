package search

import (
	"fmt"
	"math"
)

// Model selects the IDF weighting formula. The set is closed; ParseModel
// rejects names outside it rather than silently falling back.
type Model int

const (
	Standard Model = iota
	Smooth
	Probabilistic
	BM25
)

// Models lists every supported model, in display order.
var Models = []Model{Standard, Smooth, Probabilistic, BM25}

// ParseModel maps a model name to its Model. Unknown names are an input
// error.
func ParseModel(name string) (Model, error) {
	switch name {
	case "standard":
		return Standard, nil
	case "smooth":
		return Smooth, nil
	case "probabilistic":
		return Probabilistic, nil
	case "bm25":
		return BM25, nil
	}
	return Standard, fmt.Errorf("unknown IDF model %q (want standard, smooth, probabilistic, or bm25)", name)
}

func (m Model) String() string {
	switch m {
	case Standard:
		return "standard"
	case Smooth:
		return "smooth"
	case Probabilistic:
		return "probabilistic"
	case BM25:
		return "bm25"
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// IDF computes the inverse-document-frequency weight for a term with
// document frequency df in a collection of n documents.
func (m Model) IDF(n, df int) float64 {
	switch m {
	case Standard:
		if df == 0 {
			return 0
		}
		return math.Log(float64(n) / float64(df))
	case Smooth:
		return math.Log(float64(n) / float64(df+1))
	case Probabilistic:
		if df == 0 || df == n {
			return 0
		}
		return math.Log(float64(n-df) / float64(df))
	case BM25:
		return math.Log((float64(n) - float64(df) + 0.5) / (float64(df) + 0.5))
	}
	return 0
}
