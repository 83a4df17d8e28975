// Package sqlstore persists models as JSON documents in a single SQL table.
// The SQLite and Postgres backends share this implementation and differ only
// in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/persistence/abstractions"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/pkg/utils"
)

// Dialect captures the SQL differences between backends
type Dialect struct {
	Name         string
	DocumentType string
	Placeholder  func(n int) string
	NoLimit      string
}

var _ ports.ModelRepository = (*ModelRepository)(nil)

// ModelRepository implements ports.ModelRepository over database/sql
type ModelRepository struct {
	db      *sql.DB
	dialect Dialect
	codec   *codec.Codec
	logger  *zap.Logger
	now     func() time.Time
}

// NewModelRepository creates the models table if needed
func NewModelRepository(ctx context.Context, db *sql.DB, dialect Dialect, c *codec.Codec, logger *zap.Logger) (*ModelRepository, error) {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		version INTEGER NOT NULL,
		checksum TEXT NOT NULL,
		context_count INTEGER NOT NULL,
		document %s NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`, dialect.DocumentType)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create models table: %w", err)
	}
	return &ModelRepository{db: db, dialect: dialect, codec: c, logger: logger, now: time.Now}, nil
}

// DB exposes the underlying handle for tests and shutdown
func (r *ModelRepository) DB() *sql.DB { return r.db }

// Save stores the next version of model inside a transaction
func (r *ModelRepository) Save(ctx context.Context, model *aggregates.Model) (retErr error) {
	record, err := abstractions.NewModelRecord(r.codec, model, r.now())
	if err != nil {
		return r.storageError("save", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.storageError("begin", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	stored := 0
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT version FROM models WHERE id = %s`, r.ph(1)),
		record.ID,
	).Scan(&stored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return r.storageError("read version", err)
	}
	if err := abstractions.CheckVersion(model, stored); err != nil {
		return err
	}

	upsert := fmt.Sprintf(`INSERT INTO models
		(id, name, description, version, checksum, context_count, document, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			version = excluded.version,
			checksum = excluded.checksum,
			context_count = excluded.context_count,
			document = excluded.document,
			updated_at = excluded.updated_at
		WHERE models.version = %s`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8), r.ph(9), r.ph(10))
	res, err := tx.ExecContext(ctx, upsert,
		record.ID,
		record.Name,
		record.Description,
		record.Version,
		record.Checksum,
		record.ContextCount,
		record.Document,
		utils.FormatTimestamp(record.CreatedAt),
		utils.FormatTimestamp(record.UpdatedAt),
		stored,
	)
	if err != nil {
		return r.storageError("upsert", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pkgerrors.NewVersionConflictError(record.ID, model.Version(), stored)
	}
	if err := tx.Commit(); err != nil {
		return r.storageError("commit", err)
	}

	r.logger.Debug("Saved model",
		zap.String("backend", r.dialect.Name),
		zap.String("modelID", record.ID),
		zap.Int("version", record.Version),
	)
	return nil
}

// GetByID loads a model
func (r *ModelRepository) GetByID(ctx context.Context, id valueobjects.ModelID) (*aggregates.Model, error) {
	var document []byte
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT document FROM models WHERE id = %s`, r.ph(1)),
		id.String(),
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewModelNotFoundError(id.String())
	}
	if err != nil {
		return nil, r.storageError("get", err)
	}
	record := &abstractions.ModelRecord{Document: document}
	return record.ToModel(r.codec)
}

// List returns model summaries ordered by name, then id
func (r *ModelRepository) List(ctx context.Context, opts ports.ListOptions) ([]ports.ModelSummary, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT id, name, description, version, checksum, context_count, updated_at FROM models`)
	if opts.NamePrefix != "" {
		args = append(args, opts.NamePrefix)
		fmt.Fprintf(&query, ` WHERE substr(name, 1, %d) = %s`, len([]rune(opts.NamePrefix)), r.ph(len(args)))
	}
	query.WriteString(` ORDER BY name, id`)
	switch {
	case opts.Limit > 0:
		args = append(args, opts.Limit)
		fmt.Fprintf(&query, ` LIMIT %s`, r.ph(len(args)))
	case opts.Offset > 0:
		fmt.Fprintf(&query, ` LIMIT %s`, r.dialect.NoLimit)
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&query, ` OFFSET %s`, r.ph(len(args)))
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, r.storageError("list", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []ports.ModelSummary{}
	for rows.Next() {
		var (
			s       ports.ModelSummary
			updated string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Version, &s.Checksum, &s.ContextCount, &updated); err != nil {
			return nil, r.storageError("scan", err)
		}
		if s.UpdatedAt, err = utils.ParseTimestamp(updated); err != nil {
			return nil, r.storageError("scan", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageError("list", err)
	}
	return summaries, nil
}

// Delete removes a model
func (r *ModelRepository) Delete(ctx context.Context, id valueobjects.ModelID) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM models WHERE id = %s`, r.ph(1)),
		id.String(),
	)
	if err != nil {
		return r.storageError("delete", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pkgerrors.NewModelNotFoundError(id.String())
	}
	return nil
}

// Close closes the database handle
func (r *ModelRepository) Close() error {
	return r.db.Close()
}

func (r *ModelRepository) ph(n int) string {
	return r.dialect.Placeholder(n)
}

func (r *ModelRepository) storageError(operation string, err error) error {
	r.logger.Error("Model storage operation failed",
		zap.String("backend", r.dialect.Name),
		zap.String("operation", operation),
		zap.Error(err),
	)
	return pkgerrors.NewStorageError(r.dialect.Name, operation, err)
}
