package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// ModelID identifies a persisted model across storage backends.
// Unlike ObjectID and MorphismID it is globally unique.
type ModelID struct {
	value string
}

// NewModelID creates a new random ModelID
func NewModelID() ModelID {
	return ModelID{value: uuid.New().String()}
}

// NewModelIDFromString creates a ModelID from an existing string
func NewModelIDFromString(id string) (ModelID, error) {
	if id == "" {
		return ModelID{}, errors.New("model ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return ModelID{}, errors.New("model ID must be a valid UUID")
	}
	return ModelID{value: id}, nil
}

// String returns the string representation of the ModelID
func (id ModelID) String() string {
	return id.value
}

// Equals checks if two ModelIDs are equal
func (id ModelID) Equals(other ModelID) bool {
	return id.value == other.value
}

// IsZero checks if the ModelID is the zero value
func (id ModelID) IsZero() bool {
	return id.value == ""
}

// MarshalText implements encoding.TextMarshaler
func (id ModelID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ModelID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = ModelID{}
		return nil
	}
	parsed, err := NewModelIDFromString(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
