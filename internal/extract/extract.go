// Package extract turns saved drug label pages into structured DrugRecords.
// The output schema is a fixed contract: setid plus a set of named text
// fields, each populated or holding the not-found sentinel.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"druglabelsearch/internal/storage"
	"druglabelsearch/internal/types"
	"github.com/PuerkitoBio/goquery"
)

// LOINC section codes used on label pages.
const (
	sectionIndications       = "34067-9"
	sectionContraindications = "34070-3"
	sectionWarnings          = "34071-1"
)

const maxSectionLen = 5000

var (
	setidPattern    = regexp.MustCompile(`setid=([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)
	strengthPattern = regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*[a-zμµ]+(?:\s*(?:/|per|in)\s*\d*(?:[.,]\d+)?\s*[a-zμµ]*)?$`)
)

// ExtractRecord parses one saved page. ok is false when the page is not a
// drug label (no label heading) or carries no setid.
func ExtractRecord(html, filename, filepath string) (types.DrugRecord, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.DrugRecord{}, false
	}

	drugName := collapse(doc.Find("h1 #drug-label").First().Text())
	if drugName == "" {
		return types.DrugRecord{}, false
	}

	setid := extractSetID(html, filename)
	if setid == "" {
		return types.DrugRecord{}, false
	}

	return types.DrugRecord{
		SetID:               setid,
		DrugName:            drugName,
		ProductType:         extractProductType(doc),
		ActiveIngredients:   extractIngredients(doc, "Active Ingredient/Active Moiety", true),
		InactiveIngredients: extractIngredients(doc, "Inactive Ingredients", false),
		IndicationsAndUsage: extractSection(doc, sectionIndications),
		Contraindications:   extractSection(doc, sectionContraindications),
		Warnings:            extractSection(doc, sectionWarnings),
		FilePath:            filepath,
	}, true
}

// extractSetID prefers the setid embedded in the saved file name (the page
// store keeps the URL's query in it) and falls back to scanning the body.
func extractSetID(html, filename string) string {
	parts := strings.Split(filename, "_")
	for i, part := range parts {
		if part == "setid" && i+1 < len(parts) {
			return strings.SplitN(parts[i+1], ".", 2)[0]
		}
	}
	if m := setidPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

func extractProductType(doc *goquery.Document) string {
	productType := ""
	doc.Find("td.formLabel").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !strings.EqualFold(collapse(s.Text()), "product type") {
			return true
		}
		productType = strings.ToLower(collapse(s.Next().Text()))
		return false
	})
	if productType == "" {
		return types.NotFound
	}
	return productType
}

// extractSection pulls the text of the labeled section with the given LOINC
// code, capped at maxSectionLen characters.
func extractSection(doc *goquery.Document, code string) string {
	sel := doc.Find(fmt.Sprintf(`div[data-sectioncode=%q]`, code)).First()
	text := collapse(sel.Text())
	if text == "" {
		return types.NotFound
	}
	if len(text) > maxSectionLen {
		text = text[:maxSectionLen]
	}
	return text
}

// extractIngredients reads the ingredient table under the given heading.
// For the active table, each ingredient's strength cell is folded into the
// name, e.g. "acetaminophen (500 mg)".
func extractIngredients(doc *goquery.Document, heading string, withStrength bool) string {
	var table *goquery.Selection
	doc.Find("table.formTablePetite").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), strings.ToLower(heading)) {
			table = s
			return false
		}
		return true
	})
	if table == nil {
		return types.NotFound
	}

	var ingredients []string
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		name := collapse(row.Find("td.formItem strong").First().Text())
		if name == "" {
			return
		}
		if withStrength {
			if strength := rowStrength(row); strength != "" {
				name = fmt.Sprintf("%s (%s)", name, strength)
			}
		}
		ingredients = append(ingredients, name)
	})
	if len(ingredients) == 0 {
		return types.NotFound
	}
	return strings.Join(ingredients, ", ")
}

// rowStrength finds the first cell in the row whose text looks like a
// strength value ("500 mg", "10 mg/5 ml").
func rowStrength(row *goquery.Selection) string {
	strength := ""
	row.Find("td.formItem").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if cell.Find("strong").Length() > 0 {
			return true
		}
		text := strings.ToLower(collapse(cell.Text()))
		if text != "" && strengthPattern.MatchString(text) {
			strength = text
			return false
		}
		return true
	})
	return strength
}

// collapse trims and collapses all whitespace runs (including non-breaking
// spaces) to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Run extracts a record from every saved page and stores the results. Pages
// that are not drug labels are skipped. It returns the number of records
// extracted.
func Run(pages *storage.PageStore, store *storage.RecordStore) (int, error) {
	count := 0
	err := pages.Walk(func(path, name string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read page %s: %w", path, err)
		}

		rec, ok := ExtractRecord(string(data), name, path)
		if !ok {
			slog.Debug("skipping non-label page", "path", path)
			return nil
		}
		if err := store.Save(rec); err != nil {
			return err
		}
		count++
		if count%1000 == 0 {
			slog.Info("extraction progress", "records", count)
		}
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}
