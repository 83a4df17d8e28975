package entities

import "sketchddd/domain/core/valueobjects"

// PathEquation asserts that two paths with the same endpoints denote the
// same business value
type PathEquation struct {
	Name string
	LHS  valueobjects.Path
	RHS  valueobjects.Path
}

// NewPathEquation creates a named equation
func NewPathEquation(name string, lhs, rhs valueobjects.Path) PathEquation {
	return PathEquation{Name: name, LHS: lhs, RHS: rhs}
}

// IsWellFormed reports whether both sides share source and target
func (e PathEquation) IsWellFormed() bool {
	return e.LHS.Source == e.RHS.Source && e.LHS.Target == e.RHS.Target
}

// IsTrivial reports whether both sides are identity paths
func (e PathEquation) IsTrivial() bool {
	return e.LHS.IsIdentity() && e.RHS.IsIdentity()
}
