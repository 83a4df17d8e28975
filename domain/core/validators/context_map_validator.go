package validators

import (
	"fmt"
	"slices"

	"sketchddd/domain/core/aggregates"
	"sketchddd/pkg/utils"
)

// ValidateContextMap checks that a map's contexts resolve in contexts and
// that every mapped object and morphism exists in its context. Structural
// preservation is checked separately by services.CheckFunctorialConsistency.
func (v *Validator) ValidateContextMap(cm *aggregates.ContextMap, contexts map[string]*aggregates.BoundedContext) *ValidationResult {
	result := NewValidationResult()
	names := sortedNames(contexts)

	source, sourceOK := contexts[cm.SourceContext()]
	if !sourceOK {
		result.Add(v.unknownContext(CodeUnknownSourceContext, "source", cm, cm.SourceContext(), names))
	}
	target, targetOK := contexts[cm.TargetContext()]
	if !targetOK {
		result.Add(v.unknownContext(CodeUnknownTargetContext, "target", cm, cm.TargetContext(), names))
	}
	if !sourceOK || !targetOK {
		return result
	}

	sg, tg := source.Graph(), target.Graph()
	for _, om := range cm.ObjectMappings() {
		if !sg.HasObject(om.Source) {
			result.Add(NewError(CodeMappedSourceObjectMissing,
				fmt.Sprintf("Context map '%s' maps object %s which does not exist in context '%s'",
					cm.Name(), om.Source, source.Name())))
		}
		if !tg.HasObject(om.Target) {
			result.Add(NewError(CodeMappedTargetObjectMissing,
				fmt.Sprintf("Context map '%s' maps to object %s which does not exist in context '%s'",
					cm.Name(), om.Target, target.Name())))
		}
	}
	for _, mm := range cm.MorphismMappings() {
		if !sg.HasMorphism(mm.Source) {
			result.Add(NewError(CodeMappedSourceMorphismMissing,
				fmt.Sprintf("Context map '%s' maps morphism %s which does not exist in context '%s'",
					cm.Name(), mm.Source, source.Name())))
		}
		if !tg.HasMorphism(mm.Target) {
			result.Add(NewError(CodeMappedTargetMorphismMissing,
				fmt.Sprintf("Context map '%s' maps to morphism %s which does not exist in context '%s'",
					cm.Name(), mm.Target, target.Name())))
		}
	}

	return result
}

func (v *Validator) unknownContext(code, role string, cm *aggregates.ContextMap, name string, known []string) ValidationError {
	issue := NewError(code,
		fmt.Sprintf("Context map '%s' references unknown %s context '%s'", cm.Name(), role, name))
	opts := v.suggestionOptions()
	if s := utils.DidYouMean(name, known, opts); s != "" {
		issue = issue.WithSuggestion(fmt.Sprintf("did you mean '%s'?", s))
	}
	if note := utils.AvailableOptions(known, opts); note != "" {
		issue = issue.WithNote(note)
	}
	return issue
}

func sortedNames(contexts map[string]*aggregates.BoundedContext) []string {
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
