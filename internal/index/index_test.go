package index

import (
	"path/filepath"
	"reflect"
	"testing"

	"druglabelsearch/internal/types"
)

func sampleRecords() []types.DrugRecord {
	return []types.DrugRecord{
		{
			SetID:               "aaa-111",
			DrugName:            "Painaway",
			ActiveIngredients:   "acetaminophen (500 mg)",
			IndicationsAndUsage: "temporary relief of headache pain",
			InactiveIngredients: "starch",
			Contraindications:   types.NotFound,
			Warnings:            "liver warning",
		},
		{
			SetID:               "bbb-222",
			DrugName:            "Allerfree",
			ActiveIngredients:   "loratadine 10mg",
			IndicationsAndUsage: "relief of nasal allergy symptoms",
			InactiveIngredients: types.NotFound,
			Contraindications:   types.NotFound,
			Warnings:            types.NotFound,
		},
		{
			SetID:               "ccc-333",
			DrugName:            "Coughstop",
			ActiveIngredients:   "dextromethorphan",
			IndicationsAndUsage: "suppresses cough and relieves throat pain",
			InactiveIngredients: "sorbitol",
			Contraindications:   "children under 4",
			Warnings:            "drowsiness",
		},
	}
}

// docLength must always equal the sum of the document's term frequencies.
func TestIndexAdditivity(t *testing.T) {
	ix := New()
	for _, rec := range sampleRecords() {
		ix.AddRecord(rec, DefaultFieldWeights())
	}

	for docID, length := range ix.DocLengths {
		sum := 0
		for _, docs := range ix.Postings {
			sum += docs[docID]
		}
		if sum != length {
			t.Errorf("doc %s: postings sum %d != doc length %d", docID, sum, length)
		}
	}
}

func TestIndexDocCount(t *testing.T) {
	ix := New()
	for _, rec := range sampleRecords() {
		ix.AddRecord(rec, DefaultFieldWeights())
	}

	if ix.DocCount != 3 {
		t.Errorf("expected 3 documents, got %d", ix.DocCount)
	}
	if len(ix.Documents) != 3 {
		t.Errorf("expected 3 stored records, got %d", len(ix.Documents))
	}
}

func TestIndexReaddOverwrites(t *testing.T) {
	ix := New()

	ix.AddDocument("doc1", "headache pain relief")
	ix.AddDocument("doc1", "nasal congestion")

	if ix.DocCount != 1 {
		t.Errorf("expected doc count 1 after re-add, got %d", ix.DocCount)
	}
	if ix.DocFrequency("headache") != 0 {
		t.Error("stale postings survived re-add")
	}
	if ix.DocFrequency("nasal") != 1 {
		t.Error("new postings missing after re-add")
	}
	if ix.DocLengths["doc1"] != 2 {
		t.Errorf("expected doc length 2, got %d", ix.DocLengths["doc1"])
	}
}

func TestIndexDocFrequency(t *testing.T) {
	ix := New()
	ix.AddDocument("doc1", "headache pain")
	ix.AddDocument("doc2", "muscle pain")

	if df := ix.DocFrequency("pain"); df != 2 {
		t.Errorf("expected df=2 for pain, got %d", df)
	}
	if df := ix.DocFrequency("headache"); df != 1 {
		t.Errorf("expected df=1 for headache, got %d", df)
	}
	if df := ix.DocFrequency("absent"); df != 0 {
		t.Errorf("expected df=0 for absent term, got %d", df)
	}
}

func TestIndexSaveLoadRoundTrip(t *testing.T) {
	ix := New()
	for _, rec := range sampleRecords() {
		ix.AddRecord(rec, DefaultFieldWeights())
	}

	path := filepath.Join(t.TempDir(), "drug_index.json")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(ix.Postings, loaded.Postings) {
		t.Error("postings differ after round trip")
	}
	if !reflect.DeepEqual(ix.DocLengths, loaded.DocLengths) {
		t.Error("doc lengths differ after round trip")
	}
	if !reflect.DeepEqual(ix.Documents, loaded.Documents) {
		t.Error("documents differ after round trip")
	}
	if ix.DocCount != loaded.DocCount {
		t.Errorf("doc count differs: %d vs %d", ix.DocCount, loaded.DocCount)
	}
}

func TestBuildFromRecordsParallelMatchesSequential(t *testing.T) {
	records := sampleRecords()
	weights := DefaultFieldWeights()

	sequential, err := BuildFromRecords(records, weights, 1)
	if err != nil {
		t.Fatalf("sequential build error = %v", err)
	}
	parallel, err := BuildFromRecords(records, weights, 4)
	if err != nil {
		t.Fatalf("parallel build error = %v", err)
	}

	if !reflect.DeepEqual(sequential.Postings, parallel.Postings) {
		t.Error("parallel build postings differ from sequential")
	}
	if !reflect.DeepEqual(sequential.DocLengths, parallel.DocLengths) {
		t.Error("parallel build doc lengths differ from sequential")
	}
	if sequential.DocCount != parallel.DocCount {
		t.Errorf("doc counts differ: %d vs %d", sequential.DocCount, parallel.DocCount)
	}
}

func TestStatistics(t *testing.T) {
	ix := New()
	ix.AddDocument("doc1", "headache pain relief")
	ix.AddDocument("doc2", "muscle pain")

	stats := ix.Statistics(10)

	if stats.TotalDocuments != 2 {
		t.Errorf("expected 2 documents, got %d", stats.TotalDocuments)
	}
	if stats.UniqueTerms != 4 {
		t.Errorf("expected 4 unique terms, got %d", stats.UniqueTerms)
	}
	if stats.TotalTokens != 5 {
		t.Errorf("expected 5 total tokens, got %d", stats.TotalTokens)
	}
	if stats.AvgDocLength != 2.5 {
		t.Errorf("expected avg length 2.5, got %f", stats.AvgDocLength)
	}
	if stats.TopTerms[0].Term != "pain" || stats.TopTerms[0].DocCount != 2 {
		t.Errorf("expected pain as top term, got %+v", stats.TopTerms[0])
	}
}
