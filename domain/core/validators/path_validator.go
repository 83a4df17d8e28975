package validators

import (
	"fmt"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
)

// ValidatePath checks that a path exists in graph and composes from its
// source to its target. A missing source object ends the check. A missing
// morphism is reported and skipped without moving the walk forward.
func (v *Validator) ValidatePath(path valueobjects.Path, graph *aggregates.Graph, name string) *ValidationResult {
	result := NewValidationResult()

	if !graph.HasObject(path.Source) {
		result.Add(NewError(CodePathSourceMissing,
			fmt.Sprintf("Path '%s' starts at non-existent object %s", name, path.Source)))
		return result
	}
	if !graph.HasObject(path.Target) {
		result.Add(NewError(CodePathTargetMissing,
			fmt.Sprintf("Path '%s' ends at non-existent object %s", name, path.Target)))
	}

	if path.IsEmpty() {
		if path.Source != path.Target {
			result.Add(NewError(CodeEmptyPathEndpoints,
				fmt.Sprintf("Path '%s' has no morphisms but its source %s differs from its target %s",
					name, objectLabel(graph, path.Source), objectLabel(graph, path.Target))).
				WithSuggestion("An empty path is an identity and must start and end on the same object"))
		}
		return result
	}

	current := path.Source
	for i, id := range path.Morphisms {
		m, ok := graph.Morphism(id)
		if !ok {
			result.Add(NewError(CodePathMorphismMissing,
				fmt.Sprintf("Path '%s' references non-existent morphism %s at position %d", name, id, i)))
			continue
		}

		if i == 0 {
			if m.Source != path.Source {
				result.Add(NewError(CodePathStartMismatch,
					fmt.Sprintf("Path '%s' starts at %s but its first morphism '%s' starts at %s",
						name, objectLabel(graph, path.Source), m.Name, objectLabel(graph, m.Source))))
			}
		} else if m.Source != current {
			result.Add(NewError(CodePathNotComposable,
				fmt.Sprintf("Path '%s' is not composable: morphism '%s' starts at %s but the previous morphism ends at %s",
					name, m.Name, objectLabel(graph, m.Source), objectLabel(graph, current))))
		}
		current = m.Target
	}

	if current != path.Target {
		result.Add(NewError(CodePathEndMismatch,
			fmt.Sprintf("Path '%s' ends at %s but its declared target is %s",
				name, objectLabel(graph, current), objectLabel(graph, path.Target))))
	}

	return result
}

// ValidateEquation checks both sides of an equation and that they share
// endpoints
func (v *Validator) ValidateEquation(eq entities.PathEquation, graph *aggregates.Graph) *ValidationResult {
	result := NewValidationResult()

	result.Merge(v.ValidatePath(eq.LHS, graph, eq.Name+" (lhs)"))
	result.Merge(v.ValidatePath(eq.RHS, graph, eq.Name+" (rhs)"))

	if eq.LHS.Source != eq.RHS.Source {
		result.Add(NewError(CodeEquationSourceMismatch,
			fmt.Sprintf("Equation '%s' sides start at different objects: %s and %s",
				eq.Name, objectLabel(graph, eq.LHS.Source), objectLabel(graph, eq.RHS.Source))))
	}
	if eq.LHS.Target != eq.RHS.Target {
		result.Add(NewError(CodeEquationTargetMismatch,
			fmt.Sprintf("Equation '%s' sides end at different objects: %s and %s",
				eq.Name, objectLabel(graph, eq.LHS.Target), objectLabel(graph, eq.RHS.Target))))
	}

	if eq.IsTrivial() {
		result.Add(NewWarning(CodeTrivialEquation,
			fmt.Sprintf("Equation '%s' equates two identity paths and always holds", eq.Name)))
	}

	if longest := max(eq.LHS.Len(), eq.RHS.Len()); longest > v.config.MaxPathLength {
		result.Add(NewWarning(CodeLongEquationPath,
			fmt.Sprintf("Equation '%s' has a path of length %d", eq.Name, longest)).
			WithSuggestion(fmt.Sprintf("Paths longer than %d are hard to read; consider naming intermediate morphisms", v.config.MaxPathLength)))
	}

	return result
}

// ValidateEquations checks every equation of a sketch and warns about
// equation names used more than once
func (v *Validator) ValidateEquations(sketch *aggregates.Sketch) *ValidationResult {
	result := NewValidationResult()
	graph := sketch.Graph()

	seen := make(map[string]int)
	for _, eq := range sketch.Equations() {
		result.Merge(v.ValidateEquation(eq, graph))

		if eq.Name == "" {
			continue
		}
		seen[eq.Name]++
		if seen[eq.Name] == 2 {
			result.Add(NewWarning(CodeDuplicateEquationName,
				fmt.Sprintf("Equation name '%s' is used more than once", eq.Name)))
		}
	}

	return result
}

func objectLabel(graph *aggregates.Graph, id valueobjects.ObjectID) string {
	if o, ok := graph.Object(id); ok {
		return fmt.Sprintf("'%s'", o.Name)
	}
	return id.String()
}
