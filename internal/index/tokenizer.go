// Package index builds the inverted index over extracted drug records:
// domain-aware tokenization, weighted document text, per-term frequency
// postings, and JSON persistence.
package index

import (
	"regexp"
	"strings"

	"druglabelsearch/internal/types"
)

var generalStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "may": {}, "might": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "its": {}, "you": {}, "your": {},
	"not": {}, "who": {}, "any": {},
}

var domainStopWords = map[string]struct{}{
	"drug": {}, "drugs": {}, "medicine": {}, "medication": {},
	"medications": {}, "treatment": {}, "pharmaceutical": {}, "therapy": {},
	"oral": {}, "patient": {}, "patients": {}, "use": {}, "used": {},
	"using": {},
}

// Tokenization runs four ordered extraction passes over the lowercased text.
// Dosage spans are removed from the working text before the later passes so
// the generic-word pass cannot fragment them; the ordering is load-bearing.
var (
	dosagePattern     = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|mcl|μg|ug|iu|units?)\b(?:/\w+)?`)
	compoundPattern   = regexp.MustCompile(`\b[a-z]+(?:-[a-z]+)+\b`)
	percentPattern    = regexp.MustCompile(`\b\d+(?:\.\d+)?%`)
	wordPattern       = regexp.MustCompile(`\b[a-z]{3,}\b`)
	innerSpacePattern = regexp.MustCompile(`\s+`)
)

func isStopWord(token string) bool {
	if _, ok := generalStopWords[token]; ok {
		return true
	}
	_, ok := domainStopWords[token]
	return ok
}

// Tokenize turns a text field into normalized terms. Dosage expressions,
// hyphenated compounds, and percentages are extracted before generic words
// and survive stop-word filtering unconditionally; generic words are kept
// only when longer than two characters and outside the stop-word sets.
// Empty input and the extractor's not-found sentinel yield no terms.
func Tokenize(text string) []string {
	if text == "" || text == types.NotFound {
		return nil
	}
	text = strings.ToLower(text)

	tokens := make([]string, 0, 32)

	for _, d := range dosagePattern.FindAllString(text, -1) {
		tokens = append(tokens, innerSpacePattern.ReplaceAllString(d, ""))
	}
	text = dosagePattern.ReplaceAllString(text, " ")

	tokens = append(tokens, compoundPattern.FindAllString(text, -1)...)
	tokens = append(tokens, percentPattern.FindAllString(text, -1)...)
	tokens = append(tokens, wordPattern.FindAllString(text, -1)...)

	kept := tokens[:0]
	for _, token := range tokens {
		if hasDigit(token) || strings.ContainsAny(token, "-%") {
			kept = append(kept, token)
			continue
		}
		if !isStopWord(token) && len(token) > 2 {
			kept = append(kept, token)
		}
	}
	return kept
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
