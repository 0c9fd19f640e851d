package storage

import (
	"database/sql"
	"fmt"

	"druglabelsearch/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

// RecordStore persists extracted drug records in SQLite, keyed by setid.
// The index build reads the whole table back out.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore opens (creating if needed) the record database at dbPath.
func NewRecordStore(dbPath string) (*RecordStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS drugs (
		setid TEXT PRIMARY KEY,
		drug_name TEXT NOT NULL,
		product_type TEXT,
		active_ingredients TEXT,
		inactive_ingredients TEXT,
		indications_and_usage TEXT,
		contraindications TEXT,
		warnings TEXT,
		filepath TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_drug_name ON drugs(drug_name);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create record schema: %w", err)
	}

	return &RecordStore{db: db}, nil
}

// Save inserts or replaces one record.
func (s *RecordStore) Save(rec types.DrugRecord) error {
	query := `
		INSERT OR REPLACE INTO drugs
		(setid, drug_name, product_type, active_ingredients, inactive_ingredients,
		 indications_and_usage, contraindications, warnings, filepath)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		rec.SetID,
		rec.DrugName,
		rec.ProductType,
		rec.ActiveIngredients,
		rec.InactiveIngredients,
		rec.IndicationsAndUsage,
		rec.Contraindications,
		rec.Warnings,
		rec.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", rec.SetID, err)
	}
	return nil
}

// LoadAll reads every stored record, ordered by setid.
func (s *RecordStore) LoadAll() ([]types.DrugRecord, error) {
	rows, err := s.db.Query(`
		SELECT setid, drug_name, product_type, active_ingredients, inactive_ingredients,
		       indications_and_usage, contraindications, warnings, filepath
		FROM drugs ORDER BY setid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]types.DrugRecord, 0)
	for rows.Next() {
		var rec types.DrugRecord
		err := rows.Scan(
			&rec.SetID,
			&rec.DrugName,
			&rec.ProductType,
			&rec.ActiveIngredients,
			&rec.InactiveIngredients,
			&rec.IndicationsAndUsage,
			&rec.Contraindications,
			&rec.Warnings,
			&rec.FilePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM drugs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *RecordStore) Close() error {
	return s.db.Close()
}
