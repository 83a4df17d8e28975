package config

import "fmt"

// DomainConfig holds the configurable thresholds of model validation
type DomainConfig struct {
	// Aggregate constraints
	MaxAggregateSize int // W0001 fires above this many projections

	// Equation constraints
	MaxPathLength int // W0101 fires when either side is longer

	// Suggestions
	SuggestionDistance int     // minimum edit distance accepted for did-you-mean
	SuggestionRatio    float64 // fraction of the name length accepted as distance
	MaxListedOptions   int     // names listed in "available: ..." notes

	// Performance
	ParallelValidation bool // validate contexts of a model concurrently
	MaxParallelism     int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxAggregateSize: 5,
		MaxPathLength:    5,

		SuggestionDistance: 3,
		SuggestionRatio:    0.3,
		MaxListedOptions:   5,

		ParallelValidation: false,
		MaxParallelism:     4,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Large models are validated in production
	config.ParallelValidation = true
	config.MaxParallelism = 8

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Sequential runs keep diagnostics easy to follow
	config.ParallelValidation = false
	config.MaxListedOptions = 10

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxAggregateSize < 0 {
		return fmt.Errorf("MaxAggregateSize must not be negative, got %d", c.MaxAggregateSize)
	}
	if c.MaxPathLength < 0 {
		return fmt.Errorf("MaxPathLength must not be negative, got %d", c.MaxPathLength)
	}
	if c.SuggestionDistance < 0 {
		return fmt.Errorf("SuggestionDistance must not be negative, got %d", c.SuggestionDistance)
	}
	if c.SuggestionRatio < 0 || c.SuggestionRatio > 1 {
		return fmt.Errorf("SuggestionRatio must be within [0, 1], got %v", c.SuggestionRatio)
	}
	if c.ParallelValidation && c.MaxParallelism < 1 {
		return fmt.Errorf("MaxParallelism must be at least 1 when ParallelValidation is set")
	}
	return nil
}
