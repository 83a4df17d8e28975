package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// SourceCore is the event source name used on external buses
const SourceCore = "sketchddd.core"

// Event type names
const (
	TypeContextCreated  = "context.created"
	TypeElementDeclared = "context.element_declared"
	TypeModelValidated  = "model.validated"
	TypeModelSaved      = "model.saved"
	TypeModelImported   = "model.imported"
	TypeModelDeleted    = "model.deleted"
)

// ElementKind classifies what a bounded context declared
type ElementKind string

const (
	KindEntity      ElementKind = "entity"
	KindValueObject ElementKind = "value_object"
	KindAggregate   ElementKind = "aggregate"
	KindEnum        ElementKind = "enum"
	KindSumType     ElementKind = "sum_type"
	KindInvariant   ElementKind = "invariant"
	KindEquation    ElementKind = "equation"
)

// Context Events

// ContextCreated is raised when a bounded context is created
type ContextCreated struct {
	BaseEvent
	ContextName string `json:"context_name"`
}

// NewContextCreated creates a ContextCreated event
func NewContextCreated(contextName string, timestamp time.Time) ContextCreated {
	return ContextCreated{
		BaseEvent: BaseEvent{
			AggregateID: contextName,
			EventType:   TypeContextCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		ContextName: contextName,
	}
}

// ElementDeclared is raised when a bounded context classifies a new element
type ElementDeclared struct {
	BaseEvent
	ContextName string      `json:"context_name"`
	Kind        ElementKind `json:"kind"`
	Name        string      `json:"name"`
	ObjectID    uint32      `json:"object_id"`
}

// NewElementDeclared creates an ElementDeclared event
func NewElementDeclared(contextName string, kind ElementKind, name string, objectID uint32, version int, timestamp time.Time) ElementDeclared {
	return ElementDeclared{
		BaseEvent: BaseEvent{
			AggregateID: contextName,
			EventType:   TypeElementDeclared,
			Timestamp:   timestamp,
			Version:     version,
		},
		ContextName: contextName,
		Kind:        kind,
		Name:        name,
		ObjectID:    objectID,
	}
}

// Model Events

// ModelValidated is raised after a whole model was validated
type ModelValidated struct {
	BaseEvent
	ModelName    string   `json:"model_name"`
	ErrorCount   int      `json:"error_count"`
	WarningCount int      `json:"warning_count"`
	Codes        []string `json:"codes"`
}

// NewModelValidated creates a ModelValidated event
func NewModelValidated(modelID, modelName string, errorCount, warningCount int, codes []string, timestamp time.Time) ModelValidated {
	return ModelValidated{
		BaseEvent: BaseEvent{
			AggregateID: modelID,
			EventType:   TypeModelValidated,
			Timestamp:   timestamp,
			Version:     1,
		},
		ModelName:    modelName,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
		Codes:        codes,
	}
}

// ModelSaved is raised when a model is persisted
type ModelSaved struct {
	BaseEvent
	ModelName string `json:"model_name"`
	Checksum  string `json:"checksum"`
}

// NewModelSaved creates a ModelSaved event
func NewModelSaved(modelID, modelName, checksum string, version int, timestamp time.Time) ModelSaved {
	return ModelSaved{
		BaseEvent: BaseEvent{
			AggregateID: modelID,
			EventType:   TypeModelSaved,
			Timestamp:   timestamp,
			Version:     version,
		},
		ModelName: modelName,
		Checksum:  checksum,
	}
}

// ModelImported is raised when a model document was decoded into a model
type ModelImported struct {
	BaseEvent
	ModelName string `json:"model_name"`
	Format    string `json:"format"`
}

// NewModelImported creates a ModelImported event
func NewModelImported(modelID, modelName, format string, timestamp time.Time) ModelImported {
	return ModelImported{
		BaseEvent: BaseEvent{
			AggregateID: modelID,
			EventType:   TypeModelImported,
			Timestamp:   timestamp,
			Version:     1,
		},
		ModelName: modelName,
		Format:    format,
	}
}

// ModelDeleted is raised when a stored model is removed
type ModelDeleted struct {
	BaseEvent
}

// NewModelDeleted creates a ModelDeleted event
func NewModelDeleted(modelID string, timestamp time.Time) ModelDeleted {
	return ModelDeleted{
		BaseEvent: BaseEvent{
			AggregateID: modelID,
			EventType:   TypeModelDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
	}
}
