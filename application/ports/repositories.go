package ports

import (
	"context"
	"time"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/domain/events"
)

// ModelRepository defines the interface for model persistence.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type ModelRepository interface {
	// Save persists a model with optimistic locking: the stored version must
	// equal model.Version() (no record counts as zero). The record is written
	// at model.Version()+1; callers bump the aggregate with MarkSaved.
	Save(ctx context.Context, model *aggregates.Model) error

	// GetByID retrieves a model by its ID
	GetByID(ctx context.Context, id valueobjects.ModelID) (*aggregates.Model, error)

	// List returns summaries ordered by name, then id
	List(ctx context.Context, opts ListOptions) ([]ModelSummary, error)

	// Delete removes a model
	Delete(ctx context.Context, id valueobjects.ModelID) error
}

// ListOptions defines list parameters
type ListOptions struct {
	NamePrefix string
	Limit      int
	Offset     int
}

// ModelSummary is the listing view of a stored model
type ModelSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Version      int       `json:"version"`
	Checksum     string    `json:"checksum"`
	ContextCount int       `json:"context_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Metrics records service-level measurements
type Metrics interface {
	// RecordValidation records one validation run
	RecordValidation(ctx context.Context, errorCount, warningCount int, duration time.Duration)

	// RecordOperation records a repository or codec operation
	RecordOperation(ctx context.Context, operation string, success bool, duration time.Duration)
}
