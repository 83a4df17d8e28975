package entities

import "sketchddd/domain/core/valueobjects"

// Invariant is a business rule encoded as an equalizer of MorphismF and
// MorphismG. Equalizer is the object of states where both agree and
// Inclusion embeds it into the constrained object.
type Invariant struct {
	Name        string
	Equalizer   valueobjects.ObjectID
	Inclusion   valueobjects.MorphismID
	MorphismF   valueobjects.MorphismID
	MorphismG   valueobjects.MorphismID
	Description string
}
