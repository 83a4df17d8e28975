// Package sqlite opens the SQL model repository on an embedded SQLite file
// using the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/sqlstore"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Dialect is the SQLite flavour of the model table
var Dialect = sqlstore.Dialect{
	Name:         "sqlite",
	DocumentType: "BLOB",
	Placeholder:  func(int) string { return "?" },
	NoLimit:      "-1",
}

// NewModelRepository opens (creating if needed) the database at path
func NewModelRepository(ctx context.Context, path string, c *codec.Codec, logger *zap.Logger) (*sqlstore.ModelRepository, error) {
	if path == "" {
		path = "sketchddd.db"
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and keeps :memory: databases
	// from splitting across the pool.
	db.SetMaxOpenConns(1)

	repo, err := sqlstore.NewModelRepository(ctx, db, Dialect, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("Opened SQLite model store", zap.String("path", path))
	return repo, nil
}
