package entities

import "sketchddd/domain/core/valueobjects"

// Object is a named node of the graph representing a domain concept
type Object struct {
	ID          valueobjects.ObjectID
	Name        string
	Description string
}

// HasDescription reports whether a description was given
func (o Object) HasDescription() bool {
	return o.Description != ""
}

// Morphism is a named directed edge between two objects.
// Identity morphisms always have Source == Target.
type Morphism struct {
	ID          valueobjects.MorphismID
	Name        string
	Source      valueobjects.ObjectID
	Target      valueobjects.ObjectID
	Description string
	IsIdentity  bool
}

// IsLoop reports whether the morphism starts and ends on the same object
func (m Morphism) IsLoop() bool {
	return m.Source == m.Target
}
