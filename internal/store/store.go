// Package store caches resolved variants and their preferred titles in
// DuckDB, keyed by source record id with the ClinVar and CAR
// cross-references queryable as secondary indexes.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/clingen-dx/vartitle/internal/variant"
)

// Record is one cached resolution result.
type Record struct {
	Key            string // "clinvar:<id>" or "car:<id>"
	ClinVarID      string
	CARID          string
	PreferredTitle string
	ClinVarTitle   string
	VariationType  string
	HGVSGRCh37     string
	HGVSGRCh38     string
	ResolvedAt     time.Time
}

// NewRecord builds a cache record for a resolved variant.
func NewRecord(key string, v *variant.Variant) Record {
	r := Record{
		Key:            key,
		ClinVarID:      v.ClinVarVariantID,
		CARID:          v.CARID,
		PreferredTitle: v.PreferredTitle,
		ClinVarTitle:   v.ClinVarVariantTitle,
		VariationType:  v.VariationType,
		ResolvedAt:     time.Now().UTC(),
	}
	if v.HGVSNames != nil {
		r.HGVSGRCh37 = v.HGVSNames.GRCh37
		r.HGVSGRCh38 = v.HGVSNames.GRCh38
	}
	return r
}

// Store manages a DuckDB connection for cached resolution results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an
// empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS resolved_variants (
		key VARCHAR PRIMARY KEY,
		clinvar_id VARCHAR,
		car_id VARCHAR,
		preferred_title VARCHAR,
		clinvar_title VARCHAR,
		variation_type VARCHAR,
		hgvs_grch37 VARCHAR,
		hgvs_grch38 VARCHAR,
		resolved_at TIMESTAMP
	)`)
	return err
}

// Put inserts or replaces a record.
func (s *Store) Put(r Record) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO resolved_variants
		(key, clinvar_id, car_id, preferred_title, clinvar_title,
		 variation_type, hgvs_grch37, hgvs_grch38, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Key, r.ClinVarID, r.CARID, r.PreferredTitle, r.ClinVarTitle,
		r.VariationType, r.HGVSGRCh37, r.HGVSGRCh38, r.ResolvedAt)
	if err != nil {
		return fmt.Errorf("put record %s: %w", r.Key, err)
	}
	return nil
}

const recordColumns = `key, clinvar_id, car_id, preferred_title, clinvar_title,
	variation_type, hgvs_grch37, hgvs_grch38, resolved_at`

// Get returns the record for a key. The second return is false when the
// key is not cached.
func (s *Store) Get(key string) (Record, bool, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+`
		FROM resolved_variants WHERE key = ?`, key)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("get record %s: %w", key, err)
	}
	return r, true, nil
}

// FindByClinVarID returns all records cross-referenced to a ClinVar
// variation id, regardless of which source they were resolved from.
func (s *Store) FindByClinVarID(clinvarID string) ([]Record, error) {
	return s.query(`SELECT `+recordColumns+`
		FROM resolved_variants WHERE clinvar_id = ? ORDER BY key`, clinvarID)
}

// FindByCARID returns all records cross-referenced to a CAR id.
func (s *Store) FindByCARID(carID string) ([]Record, error) {
	return s.query(`SELECT `+recordColumns+`
		FROM resolved_variants WHERE car_id = ? ORDER BY key`, carID)
}

// All returns every cached record ordered by key.
func (s *Store) All() ([]Record, error) {
	return s.query(`SELECT ` + recordColumns + `
		FROM resolved_variants ORDER BY key`)
}

// Clear removes all cached records.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM resolved_variants`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Count returns the number of cached records.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM resolved_variants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Store) query(q string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	err := row.Scan(&r.Key, &r.ClinVarID, &r.CARID, &r.PreferredTitle,
		&r.ClinVarTitle, &r.VariationType, &r.HGVSGRCh37, &r.HGVSGRCh38,
		&r.ResolvedAt)
	return r, err
}
