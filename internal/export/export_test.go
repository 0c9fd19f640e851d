package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"

	"druglabelsearch/internal/types"
)

func sampleRecords() []types.DrugRecord {
	return []types.DrugRecord{
		{
			SetID:               "aaa-111",
			DrugName:            "Painaway",
			ProductType:         "human otc drug",
			ActiveIngredients:   "acetaminophen (500 mg)",
			InactiveIngredients: "starch",
			IndicationsAndUsage: "temporary relief of minor aches",
			Contraindications:   types.NotFound,
			Warnings:            "liver warning",
			FilePath:            "/data/html/batch_0/a.html",
		},
		{
			SetID:               "bbb-222",
			DrugName:            "Allerfree",
			ProductType:         "human otc drug",
			ActiveIngredients:   "loratadine (10 mg)",
			InactiveIngredients: types.NotFound,
			IndicationsAndUsage: "relief of allergy symptoms",
			Contraindications:   types.NotFound,
			Warnings:            types.NotFound,
			FilePath:            "/data/html/batch_0/b.html",
		},
	}
}

func TestExporterNew(t *testing.T) {
	tmpDir := t.TempDir()

	exporter, err := NewExporter(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create exporter: %v", err)
	}

	if exporter == nil {
		t.Error("Expected exporter to be created")
	}
}

func TestExporterExportJSON(t *testing.T) {
	tmpDir := t.TempDir()

	exporter, err := NewExporter(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create exporter: %v", err)
	}

	outputFile := tmpDir + "/drugs.json"
	if err := exporter.ExportJSON(sampleRecords(), outputFile); err != nil {
		t.Fatalf("Failed to export JSON: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}

	var records []types.DrugRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Exported JSON is not parseable: %v", err)
	}
	if len(records) != 2 || records[0].SetID != "aaa-111" {
		t.Errorf("Unexpected exported records: %+v", records)
	}
}

func TestExporterExportTSV(t *testing.T) {
	tmpDir := t.TempDir()

	exporter, err := NewExporter(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create exporter: %v", err)
	}

	outputFile := tmpDir + "/drugs.tsv"
	if err := exporter.ExportTSV(sampleRecords(), outputFile); err != nil {
		t.Fatalf("Failed to export TSV: %v", err)
	}

	file, err := os.Open(outputFile)
	if err != nil {
		t.Fatalf("Failed to open export file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse TSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "setid" || rows[0][1] != "drug_name" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "aaa-111" || rows[1][3] != "acetaminophen (500 mg)" {
		t.Errorf("Unexpected first record row: %v", rows[1])
	}
	if rows[2][8] != "/data/html/batch_0/b.html" {
		t.Errorf("Unexpected filepath column: %v", rows[2])
	}
}

func TestExporterExportEmpty(t *testing.T) {
	tmpDir := t.TempDir()

	exporter, err := NewExporter(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create exporter: %v", err)
	}

	outputFile := tmpDir + "/drugs.tsv"
	if err := exporter.ExportTSV(nil, outputFile); err != nil {
		t.Errorf("Expected empty export to succeed: %v", err)
	}
}
