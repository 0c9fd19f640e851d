package index

import (
	"sort"
	"strings"

	"druglabelsearch/internal/types"
)

// FieldWeight repeats a record field's text weight times in the document,
// so higher-weighted fields dominate term frequencies without a separate
// weighting pass at scoring time.
type FieldWeight struct {
	Field  string
	Weight int
}

// DefaultFieldWeights biases ranking toward the drug name and indications.
func DefaultFieldWeights() []FieldWeight {
	return []FieldWeight{
		{Field: "drug_name", Weight: 5},
		{Field: "active_ingredients", Weight: 3},
		{Field: "indications_and_usage", Weight: 4},
		{Field: "inactive_ingredients", Weight: 1},
		{Field: "contraindications", Weight: 1},
		{Field: "warnings", Weight: 1},
	}
}

// FieldWeightsFromMap converts a configured field→weight map into the
// deterministic ordered form, sorted by field name. Unknown fields are kept;
// they simply contribute nothing for records that lack them.
func FieldWeightsFromMap(m map[string]int) []FieldWeight {
	if len(m) == 0 {
		return DefaultFieldWeights()
	}
	weights := make([]FieldWeight, 0, len(m))
	for field, weight := range m {
		weights = append(weights, FieldWeight{Field: field, Weight: weight})
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Field < weights[j].Field })
	return weights
}

// BuildDocumentText concatenates each weighted field's value repeated
// Weight times. Empty fields and not-found sentinels contribute nothing.
func BuildDocumentText(rec types.DrugRecord, weights []FieldWeight) string {
	var parts []string
	for _, fw := range weights {
		value := rec.FieldValue(fw.Field)
		if value == "" || value == types.NotFound {
			continue
		}
		for i := 0; i < fw.Weight; i++ {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}
