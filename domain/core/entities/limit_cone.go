package entities

import "sketchddd/domain/core/valueobjects"

// Projection is one leg of a limit cone
type Projection struct {
	Morphism valueobjects.MorphismID
	Target   valueobjects.ObjectID
}

// LimitCone models a product-like composition of parts.
// A value object cone has IsAggregate false and no Root. An aggregate cone
// has IsAggregate true and Root equal to Apex.
type LimitCone struct {
	Name        string
	Apex        valueobjects.ObjectID
	Projections []Projection
	IsAggregate bool
	Root        *valueobjects.ObjectID
}

// NewValueObjectCone creates an empty non-aggregate cone over apex
func NewValueObjectCone(name string, apex valueobjects.ObjectID) *LimitCone {
	return &LimitCone{
		Name:        name,
		Apex:        apex,
		Projections: []Projection{},
	}
}

// NewAggregateCone creates an aggregate cone rooted at root
func NewAggregateCone(name string, root valueobjects.ObjectID) *LimitCone {
	r := root
	return &LimitCone{
		Name:        name,
		Apex:        root,
		Projections: []Projection{},
		IsAggregate: true,
		Root:        &r,
	}
}

// AddProjection appends a projection leg
func (c *LimitCone) AddProjection(morphism valueobjects.MorphismID, target valueobjects.ObjectID) {
	c.Projections = append(c.Projections, Projection{Morphism: morphism, Target: target})
}

// ComponentObjects returns the projection targets in order
func (c *LimitCone) ComponentObjects() []valueobjects.ObjectID {
	out := make([]valueobjects.ObjectID, 0, len(c.Projections))
	for _, p := range c.Projections {
		out = append(out, p.Target)
	}
	return out
}

// HasRoot reports whether the cone is rooted at the given object
func (c *LimitCone) HasRoot(id valueobjects.ObjectID) bool {
	return c.Root != nil && *c.Root == id
}
