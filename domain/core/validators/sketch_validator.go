package validators

import (
	"fmt"

	"sketchddd/domain/core/aggregates"
)

// ValidateSketch checks morphism endpoints, equations, object name
// uniqueness and aggregate size
func (v *Validator) ValidateSketch(sketch *aggregates.Sketch) *ValidationResult {
	result := NewValidationResult()
	graph := sketch.Graph()

	for _, m := range graph.Morphisms() {
		if !graph.HasObject(m.Source) {
			result.Add(NewError(CodeMorphismSourceMissing,
				fmt.Sprintf("Morphism '%s' references non-existent source object %s", m.Name, m.Source)))
		}
		if !graph.HasObject(m.Target) {
			result.Add(NewError(CodeMorphismTargetMissing,
				fmt.Sprintf("Morphism '%s' references non-existent target object %s", m.Name, m.Target)))
		}
	}

	result.Merge(v.ValidateEquations(sketch))

	seen := make(map[string]bool)
	for _, o := range graph.Objects() {
		if seen[o.Name] {
			result.Add(NewError(CodeDuplicateObjectName,
				fmt.Sprintf("Duplicate object name: '%s'", o.Name)))
			continue
		}
		seen[o.Name] = true
	}

	for _, limit := range sketch.Limits() {
		if limit.IsAggregate && len(limit.Projections) > v.config.MaxAggregateSize {
			result.Add(NewWarning(CodeAggregateTooLarge,
				fmt.Sprintf("Aggregate '%s' contains %d objects, which may be too large", limit.Name, len(limit.Projections))).
				WithSuggestion("Consider splitting into smaller aggregates"))
		}
	}

	return result
}
