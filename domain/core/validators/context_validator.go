package validators

import (
	"fmt"

	"sketchddd/domain/core/aggregates"
)

// ValidateContext checks the sketch of a bounded context and then its DDD
// classification: aggregates, entities, value objects, enumerations and
// invariants
func (v *Validator) ValidateContext(ctx *aggregates.BoundedContext) *ValidationResult {
	result := v.ValidateSketch(ctx.Sketch())
	graph := ctx.Graph()

	for _, root := range ctx.AggregateRoots() {
		if !graph.HasObject(root) {
			result.Add(NewError(CodeAggregateRootMissing,
				fmt.Sprintf("Aggregate root %s does not exist", root)))
		}
	}

	for _, limit := range ctx.Sketch().Limits() {
		if !limit.IsAggregate {
			continue
		}
		if limit.Root != nil && !graph.HasObject(*limit.Root) {
			result.Add(NewError(CodeAggregateConeRootMissing,
				fmt.Sprintf("Aggregate '%s' has non-existent root %s", limit.Name, *limit.Root)))
		}
		for _, p := range limit.Projections {
			if !graph.HasObject(p.Target) {
				result.Add(NewError(CodeAggregateMemberMissing,
					fmt.Sprintf("Aggregate '%s' contains non-existent member %s", limit.Name, p.Target)).
					WithSuggestion("Declare the member as an entity or value object in this context"))
			}
		}
	}

	for _, entity := range ctx.Entities() {
		if _, ok := ctx.EntityIdentity(entity); !ok {
			result.Add(NewError(CodeEntityIdentityMissing,
				fmt.Sprintf("Entity %s has no identity morphism", objectLabel(graph, entity))))
		}
	}

	for _, vo := range ctx.ValueObjects() {
		if _, ok := ctx.ValueObjectLimit(vo); !ok {
			result.Add(NewWarning(CodeValueObjectLimitMissing,
				fmt.Sprintf("Value object %s has no limit cone describing its structure", objectLabel(graph, vo))))
		}
	}

	for _, colimit := range ctx.Sketch().Colimits() {
		seen := make(map[string]bool)
		for _, name := range colimit.VariantNames() {
			if seen[name] {
				result.Add(NewError(CodeDuplicateVariantName,
					fmt.Sprintf("Enum '%s' declares variant '%s' more than once", colimit.Name, name)))
				continue
			}
			seen[name] = true
		}
	}

	for _, inv := range ctx.Invariants() {
		f, fok := graph.Morphism(inv.MorphismF)
		g, gok := graph.Morphism(inv.MorphismG)
		if !fok {
			result.Add(NewError(CodeInvariantMorphismMissing,
				fmt.Sprintf("Invariant '%s' references non-existent morphism %s", inv.Name, inv.MorphismF)))
		}
		if !gok {
			result.Add(NewError(CodeInvariantMorphismMissing,
				fmt.Sprintf("Invariant '%s' references non-existent morphism %s", inv.Name, inv.MorphismG)))
		}
		if !fok || !gok {
			continue
		}
		if f.Source != g.Source || f.Target != g.Target {
			result.Add(NewError(CodeInvariantNotParallel,
				fmt.Sprintf("Invariant '%s' equalizes '%s' and '%s', which do not share source and target",
					inv.Name, f.Name, g.Name)).
				WithSuggestion("Both morphisms of an equalizer must be parallel"))
		}
	}

	return result
}
