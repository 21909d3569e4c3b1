// Package store handles SQLite persistence of the analysis history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/chiffre/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for analysis history.
type Store struct {
	db *sql.DB
}

// ColumnRecord is the key letter chosen for one column of a stored analysis.
type ColumnRecord struct {
	Column     int
	Letter     string
	ChiSquared float64
	Length     int
}

// LangCount summarizes how many analyses were run per cipher and language.
type LangCount struct {
	Cipher string
	Lang   string
	Count  int
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			cipher TEXT NOT NULL,
			lang TEXT NOT NULL,
			method TEXT NOT NULL,
			letters INTEGER NOT NULL,
			key_length INTEGER NOT NULL,
			cipher_key TEXT NOT NULL,
			manual INTEGER NOT NULL,
			conclusive INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			preview TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_columns (
			analysis_id INTEGER NOT NULL,
			col INTEGER NOT NULL,
			letter TEXT NOT NULL,
			chi2 REAL NOT NULL,
			length INTEGER NOT NULL,
			PRIMARY KEY (analysis_id, col)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_cipher_lang ON analyses(cipher, lang);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAnalysis stores a completed analysis and its per-column key letters.
func (s *Store) InsertAnalysis(ctx context.Context, rec model.AnalysisRecord, cols []ColumnRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (created_at, cipher, lang, method, letters, key_length, cipher_key, manual, conclusive, duration_ms, preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.Cipher,
		rec.Lang,
		rec.Method,
		rec.Letters,
		rec.KeyLength,
		rec.Key,
		boolInt(rec.Manual),
		boolInt(rec.Conclusive),
		rec.DurationMs,
		rec.Preview,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(cols) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO analysis_columns (analysis_id, col, letter, chi2, length) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, c := range cols {
			if _, err := stmt.ExecContext(ctx, id, c.Column, c.Letter, c.ChiSquared, c.Length); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return id, nil
}

// ListAnalyses returns analyses matching filter, newest first.
func (s *Store) ListAnalyses(ctx context.Context, filter model.HistoryFilter) ([]model.AnalysisRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Cipher != "" {
		clauses = append(clauses, "cipher = ?")
		args = append(args, filter.Cipher)
	}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, created_at, cipher, lang, method, letters, key_length, cipher_key, manual, conclusive, duration_ms, preview
		FROM analyses
		WHERE %s
		ORDER BY created_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if filter.Last > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var createdAt string
		var manual, conclusive int
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Cipher, &rec.Lang, &rec.Method, &rec.Letters,
			&rec.KeyLength, &rec.Key, &manual, &conclusive, &rec.DurationMs, &rec.Preview); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Manual = manual != 0
		rec.Conclusive = conclusive != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListColumns returns the per-column key letters of one analysis.
func (s *Store) ListColumns(ctx context.Context, analysisID int64) ([]ColumnRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT col, letter, chi2, length FROM analysis_columns WHERE analysis_id = ? ORDER BY col`, analysisID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var cols []ColumnRecord
	for rows.Next() {
		var c ColumnRecord
		if err := rows.Scan(&c.Column, &c.Letter, &c.ChiSquared, &c.Length); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// CountByLanguage counts stored analyses per cipher and language.
func (s *Store) CountByLanguage(ctx context.Context) ([]LangCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cipher, lang, COUNT(*) FROM analyses GROUP BY cipher, lang ORDER BY cipher, lang`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []LangCount
	for rows.Next() {
		var c LangCount
		if err := rows.Scan(&c.Cipher, &c.Lang, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
