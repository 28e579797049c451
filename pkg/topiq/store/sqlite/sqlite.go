// Package sqlite implements the run archive on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/topiq/pkg/topiq/internalerr"
	"github.com/cognicore/topiq/pkg/topiq/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
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

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	model TEXT
);

CREATE TABLE IF NOT EXISTS run_docs (
	run_id TEXT NOT NULL,
	doc_index INTEGER NOT NULL,
	file_name TEXT NOT NULL,
	date TEXT,
	topic_count INTEGER NOT NULL,
	summary TEXT,
	category TEXT,
	confidence REAL,
	rationale TEXT,
	PRIMARY KEY(run_id, doc_index),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_topics (
	run_id TEXT NOT NULL,
	doc_index INTEGER NOT NULL,
	topic_id INTEGER NOT NULL,
	name TEXT,
	proportion REAL NOT NULL,
	PRIMARY KEY(run_id, doc_index, topic_id),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes a whole run in one transaction, replacing any previous
// run with the same id.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("sqlite: run id required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, started_at, model)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	started_at=excluded.started_at,
	model=excluded.model;
`, r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Model); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_docs WHERE run_id=?`, r.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_topics WHERE run_id=?`, r.ID); err != nil {
		return err
	}

	docStmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_docs (run_id, doc_index, file_name, date, topic_count, summary, category, confidence, rationale)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer docStmt.Close()
	for _, d := range r.Docs {
		if _, err := docStmt.ExecContext(ctx, r.ID, d.DocIndex, d.FileName, d.Date,
			d.TopicCount, d.Summary, d.Category, d.Confidence, d.Rationale); err != nil {
			return err
		}
	}

	topicStmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_topics (run_id, doc_index, topic_id, name, proportion)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer topicStmt.Close()
	for _, t := range r.Topics {
		if _, err := topicStmt.ExecContext(ctx, r.ID, t.DocIndex, t.TopicID, t.Name, t.Proportion); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads a run with its doc and topic rows.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		run     store.Run
		started string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, started_at, model FROM runs WHERE id=?`, id).
		Scan(&run.ID, &started, &run.Model)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("sqlite: run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if parsed, perr := time.Parse(time.RFC3339, started); perr == nil {
		run.StartedAt = parsed
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT doc_index, file_name, date, topic_count, summary, category, confidence, rationale
FROM run_docs WHERE run_id=? ORDER BY doc_index`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var d store.DocRecord
		if err := rows.Scan(&d.DocIndex, &d.FileName, &d.Date, &d.TopicCount,
			&d.Summary, &d.Category, &d.Confidence, &d.Rationale); err != nil {
			return store.Run{}, err
		}
		run.Docs = append(run.Docs, d)
	}
	if err := rows.Err(); err != nil {
		return store.Run{}, err
	}

	topicRows, err := s.db.QueryContext(ctx, `
SELECT doc_index, topic_id, name, proportion
FROM run_topics WHERE run_id=? ORDER BY doc_index, proportion DESC, topic_id`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer topicRows.Close()
	for topicRows.Next() {
		var t store.TopicRecord
		if err := topicRows.Scan(&t.DocIndex, &t.TopicID, &t.Name, &t.Proportion); err != nil {
			return store.Run{}, err
		}
		run.Topics = append(run.Topics, t)
	}
	return run, topicRows.Err()
}

// ListRuns returns the newest runs first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.started_at, r.model, COUNT(d.doc_index)
FROM runs r
LEFT JOIN run_docs d ON d.run_id = r.id
GROUP BY r.id
ORDER BY r.id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.RunInfo
	for rows.Next() {
		var (
			info    store.RunInfo
			started string
		)
		if err := rows.Scan(&info.ID, &started, &info.Model, &info.DocCount); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(time.RFC3339, started); perr == nil {
			info.StartedAt = parsed
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
