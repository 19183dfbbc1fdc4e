package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/adrianlzt/jardin-du-the/internal/catalog"
)

// Store keeps finished runs in SQLite so they can be inspected and
// re-exported without scraping the storefront again.
type Store struct {
	db *sql.DB
}

// RunRecord is everything one pipeline run produced.
type RunRecord struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	Items      []catalog.Item
	Vocabulary []string
	Presence   [][]int
}

// RunSummary is the list view of a stored run.
type RunSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ItemCount int       `json:"item_count"`
	TermCount int       `json:"term_count"`
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite failed: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode failed: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys failed: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	term_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	img TEXT NOT NULL,
	short_description TEXT NOT NULL,
	description TEXT NOT NULL,
	ingredients TEXT NOT NULL,
	suggested TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS vocabulary (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	term TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS presence (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	item_position INTEGER NOT NULL,
	term_position INTEGER NOT NULL,
	present INTEGER NOT NULL,
	PRIMARY KEY (run_id, item_position, term_position)
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema failed: %w", err)
	}
	return nil
}

// SaveRun writes a run and all of its rows in one transaction, so a
// half-written run never becomes visible.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("run id must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, name, created_at, item_count, term_count) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt.UTC().Format(time.RFC3339), len(rec.Items), len(rec.Vocabulary))
	if err != nil {
		return fmt.Errorf("insert run failed: %w", err)
	}

	for i, item := range rec.Items {
		suggested, err := json.Marshal(item.CandidateIngredients)
		if err != nil {
			return fmt.Errorf("marshal suggestions failed: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (run_id, position, title, url, img, short_description, description, ingredients, suggested)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i, item.Title, item.URL, item.ImageURL, item.ShortDescription, item.Description, item.IngredientsText, string(suggested))
		if err != nil {
			return fmt.Errorf("insert item failed: %w", err)
		}
	}

	for i, term := range rec.Vocabulary {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO vocabulary (run_id, position, term) VALUES (?, ?, ?)`,
			rec.ID, i, term)
		if err != nil {
			return fmt.Errorf("insert term failed: %w", err)
		}
	}

	for i, row := range rec.Presence {
		for j, present := range row {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO presence (run_id, item_position, term_position, present) VALUES (?, ?, ?, ?)`,
				rec.ID, i, j, present)
			if err != nil {
				return fmt.Errorf("insert presence failed: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, item_count, term_count FROM runs ORDER BY created_at DESC LIMIT ?`,
		clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query runs failed: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var summary RunSummary
		var createdAt string
		if err := rows.Scan(&summary.ID, &summary.Name, &createdAt, &summary.ItemCount, &summary.TermCount); err != nil {
			return nil, fmt.Errorf("scan run failed: %w", err)
		}
		summary.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, summary)
	}
	return out, rows.Err()
}

// LoadRun rebuilds a stored run, including its presence matrix.
func (s *Store) LoadRun(ctx context.Context, id string) (*RunRecord, error) {
	rec := RunRecord{ID: id}

	var createdAt string
	var itemCount, termCount int
	err := s.db.QueryRowContext(ctx,
		`SELECT name, created_at, item_count, term_count FROM runs WHERE id = ?`, id).
		Scan(&rec.Name, &createdAt, &itemCount, &termCount)
	if err != nil {
		return nil, fmt.Errorf("load run failed: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	itemRows, err := s.db.QueryContext(ctx,
		`SELECT title, url, img, short_description, description, ingredients, suggested
		 FROM items WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item catalog.Item
		var suggested string
		if err := itemRows.Scan(&item.Title, &item.URL, &item.ImageURL,
			&item.ShortDescription, &item.Description, &item.IngredientsText, &suggested); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		if err := json.Unmarshal([]byte(suggested), &item.CandidateIngredients); err != nil {
			return nil, fmt.Errorf("unmarshal suggestions failed: %w", err)
		}
		rec.Items = append(rec.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	termRows, err := s.db.QueryContext(ctx,
		`SELECT term FROM vocabulary WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary failed: %w", err)
	}
	defer termRows.Close()
	for termRows.Next() {
		var term string
		if err := termRows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan term failed: %w", err)
		}
		rec.Vocabulary = append(rec.Vocabulary, term)
	}
	if err := termRows.Err(); err != nil {
		return nil, err
	}

	if len(rec.Items) > 0 && len(rec.Vocabulary) > 0 {
		rec.Presence = make([][]int, len(rec.Items))
		for i := range rec.Presence {
			rec.Presence[i] = make([]int, len(rec.Vocabulary))
		}
		presRows, err := s.db.QueryContext(ctx,
			`SELECT item_position, term_position, present FROM presence WHERE run_id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("query presence failed: %w", err)
		}
		defer presRows.Close()
		for presRows.Next() {
			var i, j, present int
			if err := presRows.Scan(&i, &j, &present); err != nil {
				return nil, fmt.Errorf("scan presence failed: %w", err)
			}
			if i < len(rec.Presence) && j < len(rec.Presence[i]) {
				rec.Presence[i][j] = present
			}
		}
		if err := presRows.Err(); err != nil {
			return nil, err
		}
	}

	return &rec, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
