package valueobjects

import (
	"fmt"
	"strconv"
)

// ObjectID identifies an object inside one graph.
// Ids are dense, strictly increasing and never reused. Ids taken from two
// different graphs carry no relation to each other.
type ObjectID uint32

// MorphismID identifies a morphism inside one graph.
type MorphismID uint32

// String returns the string representation of the ObjectID
func (id ObjectID) String() string {
	return "obj#" + strconv.FormatUint(uint64(id), 10)
}

// Index returns the arena slot for this id
func (id ObjectID) Index() int {
	return int(id)
}

// String returns the string representation of the MorphismID
func (id MorphismID) String() string {
	return "mor#" + strconv.FormatUint(uint64(id), 10)
}

// Index returns the arena slot for this id
func (id MorphismID) Index() int {
	return int(id)
}

// ParseObjectID parses the "obj#N" form produced by String, or a bare integer
func ParseObjectID(s string) (ObjectID, error) {
	n, err := parseID(s, "obj#")
	if err != nil {
		return 0, fmt.Errorf("invalid object id %q: %w", s, err)
	}
	return ObjectID(n), nil
}

// ParseMorphismID parses the "mor#N" form produced by String, or a bare integer
func ParseMorphismID(s string) (MorphismID, error) {
	n, err := parseID(s, "mor#")
	if err != nil {
		return 0, fmt.Errorf("invalid morphism id %q: %w", s, err)
	}
	return MorphismID(n), nil
}

func parseID(s, prefix string) (uint32, error) {
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
