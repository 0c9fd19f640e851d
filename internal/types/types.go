package types

import (
	"time"
)

// NotFound is the sentinel stored for label fields the extractor could not
// locate on a page. Tokenization treats it the same as empty input.
const NotFound = "Not found"

// Fetch outcome values recorded in the audit log.
const (
	FetchSuccess = "success"
	FetchFailed  = "failed"
)

// FetchRecord is one terminal fetch outcome. Records are append-only; once
// written to the audit log they are never mutated.
type FetchRecord struct {
	URL       string
	Status    string
	HTTPCode  int // 0 when no response was received
	Retries   int
	SavedPath string // "N/A" for failures
	ScrapedAt time.Time
}

// FrontierSnapshot is the durable form of the crawl frontier, written
// periodically and at shutdown so a crawl can be paused and resumed.
type FrontierSnapshot struct {
	ToVisit   []string `json:"to_visit"`
	Visited   []string `json:"visited"`
	PageCount int      `json:"page_count"`
}

// CrawlResults summarizes a finished crawl.
type CrawlResults struct {
	Fetched int
	Failed  int
	Saved   int
	Pending int
}

// DrugRecord is the fixed-schema output of the label field extractor, keyed
// by setid. Missing fields hold the NotFound sentinel.
type DrugRecord struct {
	SetID               string `json:"setid"`
	DrugName            string `json:"drug_name"`
	ProductType         string `json:"product_type"`
	ActiveIngredients   string `json:"active_ingredients"`
	InactiveIngredients string `json:"inactive_ingredients"`
	IndicationsAndUsage string `json:"indications_and_usage"`
	Contraindications   string `json:"contraindications"`
	Warnings            string `json:"warnings"`
	FilePath            string `json:"filepath"`
}

// FieldValue returns the named text field of the record. Names match the
// JSON/TSV column names. Unknown names return the empty string.
func (r DrugRecord) FieldValue(name string) string {
	switch name {
	case "drug_name":
		return r.DrugName
	case "product_type":
		return r.ProductType
	case "active_ingredients":
		return r.ActiveIngredients
	case "inactive_ingredients":
		return r.InactiveIngredients
	case "indications_and_usage":
		return r.IndicationsAndUsage
	case "contraindications":
		return r.Contraindications
	case "warnings":
		return r.Warnings
	}
	return ""
}
