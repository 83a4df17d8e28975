package validators

import (
	"sketchddd/domain/config"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/pkg/utils"
)

// Validator checks models against the thresholds of a DomainConfig.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	config *config.DomainConfig
}

// NewValidator creates a validator; a nil config selects the defaults
func NewValidator(cfg *config.DomainConfig) *Validator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Validator{config: cfg}
}

func (v *Validator) suggestionOptions() utils.SuggestionOptions {
	return utils.SuggestionOptions{
		MinDistance: v.config.SuggestionDistance,
		Ratio:       v.config.SuggestionRatio,
		MaxListed:   v.config.MaxListedOptions,
	}
}

var defaultValidator = NewValidator(nil)

// ValidatePath checks a path with default thresholds
func ValidatePath(path valueobjects.Path, graph *aggregates.Graph, name string) *ValidationResult {
	return defaultValidator.ValidatePath(path, graph, name)
}

// ValidateEquation checks one equation with default thresholds
func ValidateEquation(eq entities.PathEquation, graph *aggregates.Graph) *ValidationResult {
	return defaultValidator.ValidateEquation(eq, graph)
}

// ValidateEquations checks every equation of a sketch with default thresholds
func ValidateEquations(sketch *aggregates.Sketch) *ValidationResult {
	return defaultValidator.ValidateEquations(sketch)
}

// ValidateSketch checks a sketch with default thresholds
func ValidateSketch(sketch *aggregates.Sketch) *ValidationResult {
	return defaultValidator.ValidateSketch(sketch)
}

// ValidateContext checks a bounded context with default thresholds
func ValidateContext(ctx *aggregates.BoundedContext) *ValidationResult {
	return defaultValidator.ValidateContext(ctx)
}

// ValidateContextMap checks a context map with default thresholds
func ValidateContextMap(cm *aggregates.ContextMap, contexts map[string]*aggregates.BoundedContext) *ValidationResult {
	return defaultValidator.ValidateContextMap(cm, contexts)
}

// ValidateModel checks contexts and maps together with default thresholds
func ValidateModel(contexts []*aggregates.BoundedContext, maps []*aggregates.ContextMap) *ValidationResult {
	return defaultValidator.ValidateModel(contexts, maps)
}
