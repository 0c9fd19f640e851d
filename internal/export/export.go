// Package export writes extracted drug records out as TSV or JSON for use
// outside the search engine.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"druglabelsearch/internal/types"
)

// recordColumns is the fixed TSV column order, matching the record schema.
var recordColumns = []string{
	"setid",
	"drug_name",
	"product_type",
	"active_ingredients",
	"inactive_ingredients",
	"indications_and_usage",
	"contraindications",
	"warnings",
	"filepath",
}

type Exporter struct {
	outputDir string
}

func NewExporter(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Exporter{
		outputDir: outputDir,
	}, nil
}

func (e *Exporter) ExportJSON(records []types.DrugRecord, outputFile string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// ExportTSV writes one row per record, tab-separated, with a header row.
func (e *Exporter) ExportTSV(records []types.DrugRecord, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create TSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = '\t'
	defer writer.Flush()

	if err := writer.Write(recordColumns); err != nil {
		return fmt.Errorf("failed to write TSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.SetID,
			rec.DrugName,
			rec.ProductType,
			rec.ActiveIngredients,
			rec.InactiveIngredients,
			rec.IndicationsAndUsage,
			rec.Contraindications,
			rec.Warnings,
			rec.FilePath,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write TSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
