// Package postgres opens the SQL model repository on Postgres through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"go.uber.org/zap"

	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/sqlstore"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/sketchddd?sslmode=disable"
)

// Dialect is the Postgres flavour of the model table
var Dialect = sqlstore.Dialect{
	Name:         "postgres",
	DocumentType: "JSONB",
	Placeholder:  func(n int) string { return "$" + strconv.Itoa(n) },
	NoLimit:      "ALL",
}

// NewModelRepository connects to dsn and ensures the models table exists
func NewModelRepository(ctx context.Context, dsn string, c *codec.Codec, logger *zap.Logger) (*sqlstore.ModelRepository, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	repo, err := sqlstore.NewModelRepository(ctx, db, Dialect, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("Connected to Postgres model store")
	return repo, nil
}
