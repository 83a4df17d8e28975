package aggregates

import (
	"errors"
	"slices"
	"time"

	"sketchddd/domain/core/valueobjects"
)

// Model is a named collection of bounded contexts and the context maps
// between them. It is the unit of validation and persistence.
type Model struct {
	id          valueobjects.ModelID
	name        string
	description string
	contexts    []*BoundedContext
	contextMaps []*ContextMap
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewModel creates an empty model with a fresh id
func NewModel(name string) (*Model, error) {
	if name == "" {
		return nil, errors.New("model name cannot be empty")
	}
	now := time.Now()
	return &Model{
		id:          valueobjects.NewModelID(),
		name:        name,
		contexts:    []*BoundedContext{},
		contextMaps: []*ContextMap{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructModel rebuilds a model from repository data
func ReconstructModel(
	id valueobjects.ModelID,
	name, description string,
	contexts []*BoundedContext,
	contextMaps []*ContextMap,
	createdAt, updatedAt time.Time,
	version int,
) (*Model, error) {
	if id.IsZero() {
		return nil, errors.New("model id cannot be empty")
	}
	if name == "" {
		return nil, errors.New("model name cannot be empty")
	}
	if version < 0 {
		version = 0
	}
	return &Model{
		id:          id,
		name:        name,
		description: description,
		contexts:    append([]*BoundedContext{}, contexts...),
		contextMaps: append([]*ContextMap{}, contextMaps...),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

// ID returns the model id
func (m *Model) ID() valueobjects.ModelID { return m.id }

// Name returns the model name
func (m *Model) Name() string { return m.name }

// Description returns the model description
func (m *Model) Description() string { return m.description }

// CreatedAt returns the creation time
func (m *Model) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the time of the last change
func (m *Model) UpdatedAt() time.Time { return m.updatedAt }

// Version returns the number of successful saves; zero means never saved
func (m *Model) Version() int { return m.version }

// SetDescription updates the description
func (m *Model) SetDescription(description string) {
	m.description = description
	m.updatedAt = time.Now()
}

// AddContext creates a bounded context inside the model.
// Duplicate names are accepted and reported by validation.
func (m *Model) AddContext(name string) *BoundedContext {
	ctx := NewBoundedContext(name)
	m.AttachContext(ctx)
	return ctx
}

// AttachContext adds an existing bounded context
func (m *Model) AttachContext(ctx *BoundedContext) {
	m.contexts = append(m.contexts, ctx)
	m.updatedAt = time.Now()
}

// AddContextMap creates a context map inside the model
func (m *Model) AddContextMap(name, source, target string, pattern valueobjects.RelationshipPattern) *ContextMap {
	cm := NewContextMap(name, source, target, pattern)
	m.AttachContextMap(cm)
	return cm
}

// AttachContextMap adds an existing context map
func (m *Model) AttachContextMap(cm *ContextMap) {
	m.contextMaps = append(m.contextMaps, cm)
	m.updatedAt = time.Now()
}

// Context returns the first context with the given name
func (m *Model) Context(name string) (*BoundedContext, bool) {
	for _, c := range m.contexts {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ContextMap returns the first context map with the given name
func (m *Model) ContextMap(name string) (*ContextMap, bool) {
	for _, cm := range m.contextMaps {
		if cm.Name() == name {
			return cm, true
		}
	}
	return nil, false
}

// Contexts returns the contexts in insertion order
func (m *Model) Contexts() []*BoundedContext {
	return slices.Clone(m.contexts)
}

// ContextMaps returns the context maps in insertion order
func (m *Model) ContextMaps() []*ContextMap {
	return slices.Clone(m.contextMaps)
}

// MarkSaved bumps the version after a successful save
func (m *Model) MarkSaved(at time.Time) {
	m.version++
	m.updatedAt = at
}
