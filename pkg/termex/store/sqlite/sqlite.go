package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	settings TEXT,
	documents INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS terms (
	run_id TEXT NOT NULL,
	id INTEGER NOT NULL,
	expanded TEXT NOT NULL,
	c_value REAL NOT NULL,
	f INTEGER NOT NULL,
	df INTEGER NOT NULL,
	idf REAL NOT NULL,
	PRIMARY KEY(run_id, id),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS term_variants (
	run_id TEXT NOT NULL,
	term_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	PRIMARY KEY(run_id, term_id, position),
	FOREIGN KEY(run_id, term_id) REFERENCES terms(run_id, id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS labels (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	doc_id TEXT NOT NULL,
	start INTEGER NOT NULL,
	length INTEGER NOT NULL,
	term_id INTEGER NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS acronyms (
	run_id TEXT NOT NULL,
	short TEXT NOT NULL,
	long_form TEXT NOT NULL,
	term_key TEXT NOT NULL,
	PRIMARY KEY(run_id, short),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_labels_doc ON labels(run_id, doc_id);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores a run in a single transaction, replacing an existing run
// with the same ID.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty ID: %w", internalerr.ErrInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"term_variants", "terms", "labels", "acronyms"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id=?`, r.ID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, r.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, settings, documents) VALUES (?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Settings, r.Documents,
	); err != nil {
		return err
	}
	if err := insertTerms(ctx, tx, r.ID, r.Terms); err != nil {
		return err
	}
	if err := insertLabels(ctx, tx, r.ID, r.Labels); err != nil {
		return err
	}
	if err := insertAcronyms(ctx, tx, r.ID, r.Acronyms); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTerms(ctx context.Context, tx *sql.Tx, runID string, terms []store.Term) error {
	if len(terms) == 0 {
		return nil
	}
	termStmt, err := tx.PrepareContext(ctx, `
INSERT INTO terms (run_id, id, expanded, c_value, f, df, idf)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer termStmt.Close()

	variantStmt, err := tx.PrepareContext(ctx, `
INSERT INTO term_variants (run_id, term_id, position, text, frequency)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer variantStmt.Close()

	for _, t := range terms {
		if _, err := termStmt.ExecContext(ctx, runID, t.ID, t.Expanded, t.CValue, t.F, t.DF, t.IDF); err != nil {
			return fmt.Errorf("insert term %d: %w", t.ID, err)
		}
		for i, v := range t.Variants {
			if _, err := variantStmt.ExecContext(ctx, runID, t.ID, i, v.Text, v.Frequency); err != nil {
				return fmt.Errorf("insert variant of term %d: %w", t.ID, err)
			}
		}
	}
	return nil
}

func insertLabels(ctx context.Context, tx *sql.Tx, runID string, labels []store.Label) error {
	if len(labels) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO labels (run_id, position, doc_id, start, length, term_id)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, l := range labels {
		if _, err := stmt.ExecContext(ctx, runID, i, l.DocID, l.Start, l.Length, l.TermID); err != nil {
			return err
		}
	}
	return nil
}

func insertAcronyms(ctx context.Context, tx *sql.Tx, runID string, acronyms []store.Acronym) error {
	if len(acronyms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO acronyms (run_id, short, long_form, term_key) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, a := range acronyms {
		if _, err := stmt.ExecContext(ctx, runID, a.Short, a.Long, a.Key); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a complete run.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var r store.Run
	var created string
	var settings sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, settings, documents FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &created, &settings, &r.Documents)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	r.Settings = settings.String
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		r.CreatedAt = t
	}

	if r.Terms, err = s.loadTerms(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.Labels, err = s.loadLabels(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.Acronyms, err = s.loadAcronyms(ctx, id); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

func (s *sqliteStore) loadTerms(ctx context.Context, runID string) ([]store.Term, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, expanded, c_value, f, df, idf
FROM terms WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []store.Term
	index := make(map[int]int)
	for rows.Next() {
		var t store.Term
		if err := rows.Scan(&t.ID, &t.Expanded, &t.CValue, &t.F, &t.DF, &t.IDF); err != nil {
			return nil, err
		}
		index[t.ID] = len(terms)
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := s.db.QueryContext(ctx, `
SELECT term_id, text, frequency
FROM term_variants WHERE run_id = ? ORDER BY term_id, position`, runID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var termID int
		var v store.Variant
		if err := vrows.Scan(&termID, &v.Text, &v.Frequency); err != nil {
			return nil, err
		}
		if i, ok := index[termID]; ok {
			terms[i].Variants = append(terms[i].Variants, v)
		}
	}
	return terms, vrows.Err()
}

func (s *sqliteStore) loadLabels(ctx context.Context, runID string) ([]store.Label, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT doc_id, start, length, term_id
FROM labels WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []store.Label
	for rows.Next() {
		var l store.Label
		if err := rows.Scan(&l.DocID, &l.Start, &l.Length, &l.TermID); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (s *sqliteStore) loadAcronyms(ctx context.Context, runID string) ([]store.Acronym, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT short, long_form, term_key FROM acronyms WHERE run_id = ? ORDER BY short`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acronyms []store.Acronym
	for rows.Next() {
		var a store.Acronym
		if err := rows.Scan(&a.Short, &a.Long, &a.Key); err != nil {
			return nil, err
		}
		acronyms = append(acronyms, a)
	}
	return acronyms, rows.Err()
}

// LatestRun returns the run with the greatest ID.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	r, err := s.GetRun(ctx, id)
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns run summaries, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunInfo, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.created_at, r.documents, COUNT(t.id)
FROM runs r
LEFT JOIN terms t ON t.run_id = r.id
GROUP BY r.id
ORDER BY r.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunInfo
	for rows.Next() {
		var info store.RunInfo
		var created string
		if err := rows.Scan(&info.ID, &created, &info.Documents, &info.Terms); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			info.CreatedAt = t
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
