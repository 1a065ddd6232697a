package store

import (
	"database/sql"
	"fmt"

	"github.com/aleclerc/artist-tools/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite cache of the latest analysis run. It lets the report
// commands answer queries without re-aggregating the dataset.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HasData reports whether an analysis run has been stored.
func (s *Store) HasData() (bool, error) {
	row := s.db.QueryRow("SELECT COUNT(*) FROM Meta")
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("checking for data: %w", err)
	}
	return count > 0, nil
}
