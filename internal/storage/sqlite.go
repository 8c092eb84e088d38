// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/darkseeker/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// OpenSQLiteReadOnly opens an existing catalog database without writing to it: no schema
// is created and the journal mode is left as it is. A missing file is an error.
func OpenSQLiteReadOnly(dbPath string) (*SQLiteStorage, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '[]',
		date TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
	`
	_, err := db.Exec(schema)
	return err
}

const selectItem = `SELECT id, title, description, category, price, tags, date FROM items`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item     models.Item
		id       string
		tagsJSON string
		rawDate  string
	)
	if err := row.Scan(&id, &item.Title, &item.Description, &item.Category, &item.Price, &tagsJSON, &rawDate); err != nil {
		return nil, err
	}
	item.ID = models.ID(id)
	if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags of item %s: %w", id, err)
	}
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", id, err)
	}
	item.Date = date
	return &item, nil
}

// ListItems returns every item ordered by its catalog position.
func (s *SQLiteStorage) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItem+` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ReplaceItems deletes every stored item and inserts items in one transaction.
func (s *SQLiteStorage) ReplaceItems(ctx context.Context, items []models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (id, position, title, description, category, price, tags, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			item.ID.String(), i, item.Title, item.Description, item.Category,
			item.Price, string(tagsJSON), item.Date.String(),
		); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// CountItems returns the total number of items.
func (s *SQLiteStorage) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
