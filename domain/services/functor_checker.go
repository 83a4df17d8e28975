package services

import (
	"fmt"

	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
)

// FunctorErrorKind names the functor law a mapping violates
type FunctorErrorKind string

const (
	UnmappedSource       FunctorErrorKind = "UnmappedSource"
	UnmappedTarget       FunctorErrorKind = "UnmappedTarget"
	InconsistentSource   FunctorErrorKind = "InconsistentSource"
	InconsistentTarget   FunctorErrorKind = "InconsistentTarget"
	IdentityNotPreserved FunctorErrorKind = "IdentityNotPreserved"
)

// FunctorError describes one violation found by CheckFunctorialConsistency.
// Object holds the unmapped endpoint for the Unmapped kinds; Expected and
// Actual hold the endpoint images for the Inconsistent kinds.
type FunctorError struct {
	Kind           FunctorErrorKind
	SourceMorphism valueobjects.MorphismID
	TargetMorphism valueobjects.MorphismID
	Object         valueobjects.ObjectID
	Expected       valueobjects.ObjectID
	Actual         valueobjects.ObjectID
}

func (e FunctorError) Error() string {
	switch e.Kind {
	case UnmappedSource:
		return fmt.Sprintf("morphism %s has source object %s which is not mapped", e.SourceMorphism, e.Object)
	case UnmappedTarget:
		return fmt.Sprintf("morphism %s has target object %s which is not mapped", e.SourceMorphism, e.Object)
	case InconsistentSource:
		return fmt.Sprintf("mapped morphism for %s has source %s but expected %s", e.SourceMorphism, e.Actual, e.Expected)
	case InconsistentTarget:
		return fmt.Sprintf("mapped morphism for %s has target %s but expected %s", e.SourceMorphism, e.Actual, e.Expected)
	case IdentityNotPreserved:
		return fmt.Sprintf("identity morphism %s is mapped to non-identity %s", e.SourceMorphism, e.TargetMorphism)
	default:
		return fmt.Sprintf("functor error %s on %s", e.Kind, e.SourceMorphism)
	}
}

// FunctorCheckResult is the outcome of a functorial consistency check
type FunctorCheckResult struct {
	IsValid bool
	Errors  []FunctorError
}

// CheckFunctorialConsistency verifies a context map against the graphs of
// its two contexts. For every morphism mapping f -> Ff where both morphisms
// exist, the endpoints of f must be mapped and their images must be the
// endpoints of Ff, and an identity must map to an identity.
// Composition is not checked because composites are never materialized.
func CheckFunctorialConsistency(cm *aggregates.ContextMap, source, target *aggregates.Graph) FunctorCheckResult {
	var errs []FunctorError

	for _, mapping := range cm.MorphismMappings() {
		f, ok := source.Morphism(mapping.Source)
		if !ok {
			continue
		}
		ff, ok := target.Morphism(mapping.Target)
		if !ok {
			continue
		}

		mappedSource, hasSource := cm.ObjectMapping(f.Source)
		if !hasSource {
			errs = append(errs, FunctorError{
				Kind:           UnmappedSource,
				SourceMorphism: mapping.Source,
				TargetMorphism: mapping.Target,
				Object:         f.Source,
			})
		}

		mappedTarget, hasTarget := cm.ObjectMapping(f.Target)
		if !hasTarget {
			errs = append(errs, FunctorError{
				Kind:           UnmappedTarget,
				SourceMorphism: mapping.Source,
				TargetMorphism: mapping.Target,
				Object:         f.Target,
			})
		}

		if hasSource && ff.Source != mappedSource {
			errs = append(errs, FunctorError{
				Kind:           InconsistentSource,
				SourceMorphism: mapping.Source,
				TargetMorphism: mapping.Target,
				Expected:       mappedSource,
				Actual:         ff.Source,
			})
		}

		if hasTarget && ff.Target != mappedTarget {
			errs = append(errs, FunctorError{
				Kind:           InconsistentTarget,
				SourceMorphism: mapping.Source,
				TargetMorphism: mapping.Target,
				Expected:       mappedTarget,
				Actual:         ff.Target,
			})
		}

		if f.IsIdentity && !ff.IsIdentity {
			errs = append(errs, FunctorError{
				Kind:           IdentityNotPreserved,
				SourceMorphism: mapping.Source,
				TargetMorphism: mapping.Target,
			})
		}
	}

	return FunctorCheckResult{IsValid: len(errs) == 0, Errors: errs}
}

// CheckModelContextMaps runs the functor check for every map of a model
// whose source and target contexts both resolve. Results are keyed by map
// name; maps with unresolved contexts are left to the map validator.
func CheckModelContextMaps(model *aggregates.Model) map[string]FunctorCheckResult {
	results := make(map[string]FunctorCheckResult)
	for _, cm := range model.ContextMaps() {
		src, ok := model.Context(cm.SourceContext())
		if !ok {
			continue
		}
		tgt, ok := model.Context(cm.TargetContext())
		if !ok {
			continue
		}
		if _, seen := results[cm.Name()]; seen {
			continue
		}
		results[cm.Name()] = CheckFunctorialConsistency(cm, src.Graph(), tgt.Graph())
	}
	return results
}
