package vocab

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed vocabulary source. It also exposes the write
// operations used by the glossary admin commands; the translation pipeline
// itself only ever reads through Load.
type Store struct {
	db *sql.DB
}

// StoredEntry is a vocabulary row including its admin identifiers.
type StoredEntry struct {
	ID         string
	Category   string
	SourceTerm string
	TargetTerm string
	Confidence string
	CreatedAt  time.Time
}

// OpenStore opens (creating if necessary) the vocabulary database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vocabulary (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		source_term TEXT NOT NULL,
		target_term TEXT NOT NULL,
		confidence TEXT NOT NULL DEFAULT 'verified',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(category, source_term)
	);

	CREATE INDEX IF NOT EXISTS idx_vocabulary_category ON vocabulary(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AddTerm inserts or replaces a vocabulary entry.
func (s *Store) AddTerm(ctx context.Context, category, sourceTerm, targetTerm, confidence string) error {
	if confidence == "" {
		confidence = "verified"
	}
	id := fmt.Sprintf("vg_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vocabulary (id, category, source_term, target_term, confidence)
		 VALUES (?, ?, ?, ?, ?)`,
		id, category, NormalizeTerm(sourceTerm), NormalizeTerm(targetTerm), confidence)
	return err
}

// ListTerms returns all vocabulary entries, optionally filtered by category
// (pass an empty string to return everything).
func (s *Store) ListTerms(ctx context.Context, category string) ([]StoredEntry, error) {
	query := `SELECT id, category, source_term, target_term, confidence, created_at FROM vocabulary`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY category, source_term`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []StoredEntry
	for rows.Next() {
		var e StoredEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.SourceTerm, &e.TargetTerm, &e.Confidence, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteTerm removes a vocabulary entry by ID.
func (s *Store) DeleteTerm(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = ?`, id)
	return err
}

// Load builds a Vocabulary from the database. Rows are ordered by category
// then source term, so resolution order is deterministic across runs.
func (s *Store) Load(ctx context.Context) (*Vocabulary, error) {
	entries, err := s.ListTerms(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	vocab := &Vocabulary{}
	var cur *Category
	for _, e := range entries {
		if cur == nil || cur.Name != e.Category {
			vocab.Categories = append(vocab.Categories, Category{Name: e.Category})
			cur = &vocab.Categories[len(vocab.Categories)-1]
		}
		cur.Entries = append(cur.Entries, Entry{
			SourceTerm: e.SourceTerm,
			Target:     e.TargetTerm,
			Confidence: e.Confidence,
		})
	}
	return vocab, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
