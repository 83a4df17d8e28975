package valueobjects

import "slices"

// Path is an ordered sequence of morphisms from a source object to a target
// object. A path with no morphisms whose source equals its target is the
// identity path on that object.
type Path struct {
	Source    ObjectID     `json:"source" yaml:"source"`
	Target    ObjectID     `json:"target" yaml:"target"`
	Morphisms []MorphismID `json:"morphisms" yaml:"morphisms"`
}

// NewPath creates a path. The morphism slice is copied.
func NewPath(source, target ObjectID, morphisms ...MorphismID) Path {
	return Path{
		Source:    source,
		Target:    target,
		Morphisms: slices.Clone(morphisms),
	}
}

// IdentityPath creates the empty path on an object
func IdentityPath(object ObjectID) Path {
	return Path{Source: object, Target: object}
}

// IsIdentity reports whether the path is empty and starts where it ends
func (p Path) IsIdentity() bool {
	return len(p.Morphisms) == 0 && p.Source == p.Target
}

// Len returns the number of morphisms in the path
func (p Path) Len() int {
	return len(p.Morphisms)
}

// IsEmpty reports whether the path has no morphisms
func (p Path) IsEmpty() bool {
	return len(p.Morphisms) == 0
}

// Equals compares two paths structurally
func (p Path) Equals(other Path) bool {
	return p.Source == other.Source &&
		p.Target == other.Target &&
		slices.Equal(p.Morphisms, other.Morphisms)
}
