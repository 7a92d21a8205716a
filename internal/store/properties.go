package store

import (
	"context"
	"database/sql"
	"time"

	"rightmove-engine/internal/domain"
)

// Run is one persisted crawl with its accounting.
type Run struct {
	ID           int64
	SearchURL    string
	StartedAt    time.Time
	TotalPages   int
	PagesCovered int
	Discovered   int
	Extracted    int
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  search_url TEXT NOT NULL,
  started_at TEXT NOT NULL,
  total_pages INTEGER NOT NULL,
  pages_covered INTEGER NOT NULL,
  discovered INTEGER NOT NULL,
  extracted INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS properties (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id INTEGER NOT NULL REFERENCES runs(id),
  price INTEGER NOT NULL,
  beds INTEGER NOT NULL,
  address TEXT NOT NULL,
  description TEXT NOT NULL,
  url TEXT NOT NULL,
  scraped_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_properties_run ON properties(run_id);
`)
	return err
}

// SaveRun writes the run header and all of its records in one transaction.
// Record order is preserved by insertion order.
func SaveRun(ctx context.Context, db *sql.DB, run Run, records []domain.PropertyRecord) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO runs(search_url, started_at, total_pages, pages_covered, discovered, extracted)
VALUES(?,?,?,?,?,?);`,
		run.SearchURL,
		run.StartedAt.Format(time.RFC3339),
		run.TotalPages,
		run.PagesCovered,
		run.Discovered,
		run.Extracted,
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO properties(run_id, price, beds, address, description, url, scraped_at)
VALUES(?,?,?,?,?,?,?);`,
			runID, r.Price, r.Beds, r.Address, r.Description, r.URL, now,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRun returns a run's records in the order they were extracted.
func ListRun(ctx context.Context, db *sql.DB, runID int64) ([]domain.PropertyRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT price, beds, address, description, url
FROM properties
WHERE run_id = ?
ORDER BY id;`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyRecord
	for rows.Next() {
		var r domain.PropertyRecord
		if err := rows.Scan(&r.Price, &r.Beds, &r.Address, &r.Description, &r.URL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
