// Package memory provides an in-process model repository. Models are kept
// as encoded records, so every load returns an independent copy.
package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/persistence/abstractions"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
)

var _ ports.ModelRepository = (*ModelRepository)(nil)

// ModelRepository implements ports.ModelRepository in memory
type ModelRepository struct {
	mu      sync.RWMutex
	records map[string]*abstractions.ModelRecord
	codec   *codec.Codec
	logger  *zap.Logger
	now     func() time.Time
}

// NewModelRepository creates an empty repository
func NewModelRepository(c *codec.Codec, logger *zap.Logger) *ModelRepository {
	return &ModelRepository{
		records: make(map[string]*abstractions.ModelRecord),
		codec:   c,
		logger:  logger,
		now:     time.Now,
	}
}

// Save stores the next version of model
func (r *ModelRepository) Save(ctx context.Context, model *aggregates.Model) error {
	record, err := abstractions.NewModelRecord(r.codec, model, r.now())
	if err != nil {
		return pkgerrors.NewStorageError("memory", "save", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	if existing, ok := r.records[record.ID]; ok {
		stored = existing.Version
	}
	if err := abstractions.CheckVersion(model, stored); err != nil {
		return err
	}
	r.records[record.ID] = record

	r.logger.Debug("Saved model",
		zap.String("modelID", record.ID),
		zap.Int("version", record.Version),
	)
	return nil
}

// GetByID loads a model
func (r *ModelRepository) GetByID(ctx context.Context, id valueobjects.ModelID) (*aggregates.Model, error) {
	r.mu.RLock()
	record, ok := r.records[id.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.NewModelNotFoundError(id.String())
	}
	return record.ToModel(r.codec)
}

// List returns model summaries
func (r *ModelRepository) List(ctx context.Context, opts ports.ListOptions) ([]ports.ModelSummary, error) {
	r.mu.RLock()
	summaries := make([]ports.ModelSummary, 0, len(r.records))
	for _, record := range r.records {
		summaries = append(summaries, record.Summary())
	}
	r.mu.RUnlock()
	return abstractions.ApplyListOptions(summaries, opts), nil
}

// Delete removes a model
func (r *ModelRepository) Delete(ctx context.Context, id valueobjects.ModelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id.String()]; !ok {
		return pkgerrors.NewModelNotFoundError(id.String())
	}
	delete(r.records, id.String())
	return nil
}
