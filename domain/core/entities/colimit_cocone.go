package entities

import "sketchddd/domain/core/valueobjects"

// Injection is one variant of a colimit cocone
type Injection struct {
	Name   string
	Source valueobjects.ObjectID
}

// ColimitCocone models a choice between variants.
// For an enumeration every injection's Source equals Apex; for a sum type
// each Source is the variant's payload object.
type ColimitCocone struct {
	Name       string
	Apex       valueobjects.ObjectID
	Injections []Injection
}

// NewColimitCocone creates a cocone with no variants
func NewColimitCocone(name string, apex valueobjects.ObjectID) *ColimitCocone {
	return &ColimitCocone{
		Name:       name,
		Apex:       apex,
		Injections: []Injection{},
	}
}

// NewEnumeration creates a cocone whose payload-free variants all source at the apex
func NewEnumeration(name string, apex valueobjects.ObjectID, variants []string) *ColimitCocone {
	c := NewColimitCocone(name, apex)
	for _, v := range variants {
		c.AddVariant(v, apex)
	}
	return c
}

// AddVariant appends an injection
func (c *ColimitCocone) AddVariant(name string, source valueobjects.ObjectID) {
	c.Injections = append(c.Injections, Injection{Name: name, Source: source})
}

// VariantNames returns the injection names in order
func (c *ColimitCocone) VariantNames() []string {
	out := make([]string, 0, len(c.Injections))
	for _, inj := range c.Injections {
		out = append(out, inj.Name)
	}
	return out
}

// IsEnumeration reports whether every variant is payload-free
func (c *ColimitCocone) IsEnumeration() bool {
	for _, inj := range c.Injections {
		if inj.Source != c.Apex {
			return false
		}
	}
	return true
}
