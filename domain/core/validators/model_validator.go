package validators

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"sketchddd/domain/core/aggregates"
)

// ValidateModel checks a set of contexts and the maps between them.
// Context diagnostics are prefixed with "[ContextName] ". With
// ParallelValidation set, contexts are validated concurrently; results are
// merged in input order so the output matches the sequential run.
func (v *Validator) ValidateModel(contexts []*aggregates.BoundedContext, maps []*aggregates.ContextMap) *ValidationResult {
	result := NewValidationResult()

	lookup := make(map[string]*aggregates.BoundedContext, len(contexts))
	for _, ctx := range contexts {
		if _, dup := lookup[ctx.Name()]; dup {
			result.Add(NewError(CodeDuplicateContextName,
				fmt.Sprintf("Duplicate context name: '%s'", ctx.Name())))
			continue
		}
		lookup[ctx.Name()] = ctx
	}

	seenMaps := make(map[string]bool, len(maps))
	for _, cm := range maps {
		if seenMaps[cm.Name()] {
			result.Add(NewError(CodeDuplicateMapName,
				fmt.Sprintf("Duplicate context map name: '%s'", cm.Name())))
			continue
		}
		seenMaps[cm.Name()] = true
	}

	for i, ctxResult := range v.validateContexts(contexts) {
		result.MergePrefixed(ctxResult, "["+contexts[i].Name()+"] ")
	}

	for _, cm := range maps {
		result.Merge(v.ValidateContextMap(cm, lookup))
	}

	return result
}

// ValidateModelAggregate validates every context and map held by a model
func (v *Validator) ValidateModelAggregate(model *aggregates.Model) *ValidationResult {
	return v.ValidateModel(model.Contexts(), model.ContextMaps())
}

func (v *Validator) validateContexts(contexts []*aggregates.BoundedContext) []*ValidationResult {
	results := make([]*ValidationResult, len(contexts))

	if !v.config.ParallelValidation || len(contexts) < 2 {
		for i, ctx := range contexts {
			results[i] = v.ValidateContext(ctx)
		}
		return results
	}

	// a non-positive limit means unbounded; SetLimit(0) would block every Go
	limit := v.config.MaxParallelism
	if limit < 1 {
		limit = -1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, ctx := range contexts {
		g.Go(func() error {
			results[i] = v.ValidateContext(ctx)
			return nil
		})
	}
	// validation never fails; Wait only joins the goroutines
	_ = g.Wait()

	return results
}
