package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// LocalDestination is the destination name of catalogs written straight into
// the local database by the importer.
const LocalDestination = "local"

// CatalogFile identifies one version of a catalog file on disk.
type CatalogFile struct {
	Path string
	Size int64
	Hash string
}

// StatCatalogFile resolves path and fingerprints its current content.
func StatCatalogFile(path string) (CatalogFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return CatalogFile{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return CatalogFile{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return CatalogFile{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return CatalogFile{Path: abs, Size: n, Hash: hex.EncodeToString(h.Sum(nil))}, nil
}

// StateDB remembers which version of each catalog file reached which
// destination, so a file is only sent again after it changes. A destination is
// LocalDestination or a remote server URL.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/catalog-state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "catalog-state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS delivered_catalogs (
		destination  TEXT NOT NULL,
		path         TEXT NOT NULL,
		size         INTEGER NOT NULL,
		hash         TEXT NOT NULL,
		exercises    INTEGER NOT NULL DEFAULT 0,
		delivered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (destination, path)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// Delivered reports whether this exact version of f already reached destination.
func (s *StateDB) Delivered(destination string, f CatalogFile) (bool, error) {
	var hash string
	var size int64
	err := s.db.QueryRow(
		`SELECT size, hash FROM delivered_catalogs WHERE destination = ? AND path = ?`,
		destination, f.Path,
	).Scan(&size, &hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading catalog state: %w", err)
	}
	return size == f.Size && hash == f.Hash, nil
}

// MarkDelivered records that f, holding the given number of exercises,
// reached destination. It replaces any earlier version of the same path.
func (s *StateDB) MarkDelivered(destination string, f CatalogFile, exercises int) error {
	_, err := s.db.Exec(
		`INSERT INTO delivered_catalogs (destination, path, size, hash, exercises)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (destination, path) DO UPDATE SET
			size = excluded.size,
			hash = excluded.hash,
			exercises = excluded.exercises,
			delivered_at = CURRENT_TIMESTAMP`,
		destination, f.Path, f.Size, f.Hash, exercises,
	)
	if err != nil {
		return fmt.Errorf("recording catalog state: %w", err)
	}
	return nil
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
