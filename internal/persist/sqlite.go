package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

// SQLitePersister stores the table content in a single SQLite file, one
// database row per store row with the cells JSON-encoded. Each Save rewrites
// the snapshot inside one SQL transaction, so a reader in another process
// sees either the previous snapshot or the new one, never a partial
// resequence.
type SQLitePersister struct {
	store *store.Store
	path  string
	db    *sql.DB
}

// NewSQLite creates a persister for the given store and file path. Call Init
// before Load or Save.
func NewSQLite(s *store.Store, path string) *SQLitePersister {
	return &SQLitePersister{store: s, path: ExpandPath(path)}
}

func (p *SQLitePersister) Init() error {
	if err := ensureDir(p.path); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", p.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	p.db = db

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS store_rows (
			tbl    TEXT NOT NULL,
			row_id TEXT NOT NULL,
			data   TEXT NOT NULL,
			PRIMARY KEY (tbl, row_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create store_rows table: %w", err)
	}
	return nil
}

func (p *SQLitePersister) Load() error {
	if p.db == nil {
		return fmt.Errorf("persister not initialized")
	}

	rows, err := p.db.Query("SELECT tbl, row_id, data FROM store_rows")
	if err != nil {
		return fmt.Errorf("failed to read store rows: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]map[string]store.Row)
	for rows.Next() {
		var tbl, rowID, data string
		if err := rows.Scan(&tbl, &rowID, &data); err != nil {
			return fmt.Errorf("failed to scan store row: %w", err)
		}

		var cells store.Row
		if err := json.Unmarshal([]byte(data), &cells); err != nil {
			return fmt.Errorf("failed to decode row %s/%s: %w", tbl, rowID, err)
		}

		if tables[tbl] == nil {
			tables[tbl] = make(map[string]store.Row)
		}
		tables[tbl][rowID] = cells
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate store rows: %w", err)
	}

	p.store.SetContent(tables)
	return nil
}

func (p *SQLitePersister) Save() error {
	if p.db == nil {
		return fmt.Errorf("persister not initialized")
	}

	content := p.store.Content()

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM store_rows"); err != nil {
		return fmt.Errorf("failed to clear store rows: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO store_rows (tbl, row_id, data) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for tbl, rowsByID := range content {
		for rowID, cells := range rowsByID {
			data, err := json.Marshal(cells)
			if err != nil {
				return fmt.Errorf("failed to encode row %s/%s: %w", tbl, rowID, err)
			}
			if _, err := stmt.Exec(tbl, rowID, string(data)); err != nil {
				return fmt.Errorf("failed to insert row %s/%s: %w", tbl, rowID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (p *SQLitePersister) StartAutoSave() func() {
	return autoSave(p, p.store.OnCommit)
}

func (p *SQLitePersister) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLitePersister) Path() string {
	return p.path
}
