package aggregates

import (
	"slices"

	"sketchddd/domain/core/valueobjects"
)

// ObjectMapping maps an object of the source context to one of the target context
type ObjectMapping struct {
	Source      valueobjects.ObjectID
	Target      valueobjects.ObjectID
	Description string
}

// MorphismMapping maps a morphism of the source context to one of the target context
type MorphismMapping struct {
	Source      valueobjects.MorphismID
	Target      valueobjects.MorphismID
	Description string
}

// ContextMap is a named relationship between two bounded contexts: a DDD
// pattern tag plus the object and morphism mappings of the functor between
// them. Mappings are append-only; lookups return the first match, so later
// duplicates are kept but shadowed.
type ContextMap struct {
	name             string
	sourceContext    string
	targetContext    string
	pattern          valueobjects.RelationshipPattern
	objectMappings   []ObjectMapping
	morphismMappings []MorphismMapping
}

// NewContextMap creates a context map with no mappings
func NewContextMap(name, sourceContext, targetContext string, pattern valueobjects.RelationshipPattern) *ContextMap {
	return &ContextMap{
		name:             name,
		sourceContext:    sourceContext,
		targetContext:    targetContext,
		pattern:          pattern,
		objectMappings:   []ObjectMapping{},
		morphismMappings: []MorphismMapping{},
	}
}

// Name returns the map name
func (m *ContextMap) Name() string {
	return m.name
}

// SourceContext returns the name of the source context
func (m *ContextMap) SourceContext() string {
	return m.sourceContext
}

// TargetContext returns the name of the target context
func (m *ContextMap) TargetContext() string {
	return m.targetContext
}

// Pattern returns the relationship pattern
func (m *ContextMap) Pattern() valueobjects.RelationshipPattern {
	return m.pattern
}

// MapObject appends an object mapping
func (m *ContextMap) MapObject(source, target valueobjects.ObjectID) {
	m.MapObjectWithDescription(source, target, "")
}

// MapObjectWithDescription appends a described object mapping
func (m *ContextMap) MapObjectWithDescription(source, target valueobjects.ObjectID, description string) {
	m.objectMappings = append(m.objectMappings, ObjectMapping{Source: source, Target: target, Description: description})
}

// MapMorphism appends a morphism mapping
func (m *ContextMap) MapMorphism(source, target valueobjects.MorphismID) {
	m.MapMorphismWithDescription(source, target, "")
}

// MapMorphismWithDescription appends a described morphism mapping
func (m *ContextMap) MapMorphismWithDescription(source, target valueobjects.MorphismID, description string) {
	m.morphismMappings = append(m.morphismMappings, MorphismMapping{Source: source, Target: target, Description: description})
}

// ObjectMapping returns the image of a source object
func (m *ContextMap) ObjectMapping(source valueobjects.ObjectID) (valueobjects.ObjectID, bool) {
	for _, om := range m.objectMappings {
		if om.Source == source {
			return om.Target, true
		}
	}
	return 0, false
}

// MorphismMapping returns the image of a source morphism
func (m *ContextMap) MorphismMapping(source valueobjects.MorphismID) (valueobjects.MorphismID, bool) {
	for _, mm := range m.morphismMappings {
		if mm.Source == source {
			return mm.Target, true
		}
	}
	return 0, false
}

// ObjectMappings returns all object mappings in insertion order
func (m *ContextMap) ObjectMappings() []ObjectMapping {
	return slices.Clone(m.objectMappings)
}

// MorphismMappings returns all morphism mappings in insertion order
func (m *ContextMap) MorphismMappings() []MorphismMapping {
	return slices.Clone(m.morphismMappings)
}

// SourceIsUpstream reports whether the source context is the provider
func (m *ContextMap) SourceIsUpstream() bool {
	return m.pattern.SourceIsUpstream()
}

// IsSymmetric reports whether neither context dominates
func (m *ContextMap) IsSymmetric() bool {
	return m.pattern.IsSymmetric()
}

// RequiresTranslation reports whether the relationship needs a translation layer
func (m *ContextMap) RequiresTranslation() bool {
	return m.pattern.RequiresTranslation()
}

// HasIntegration reports whether the contexts integrate at all
func (m *ContextMap) HasIntegration() bool {
	return m.pattern.HasIntegration()
}

// Directionality returns the data flow label of the pattern
func (m *ContextMap) Directionality() string {
	return m.pattern.Directionality()
}
