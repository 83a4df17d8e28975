package valueobjects

import "fmt"

// RelationshipPattern is the DDD integration pattern between two bounded contexts
type RelationshipPattern string

const (
	// PatternPartnership: both teams evolve their models together
	PatternPartnership RelationshipPattern = "Partnership"
	// PatternCustomerSupplier: upstream provides, downstream consumes
	PatternCustomerSupplier RelationshipPattern = "CustomerSupplier"
	// PatternConformist: downstream adopts the upstream model as is
	PatternConformist RelationshipPattern = "Conformist"
	// PatternAntiCorruptionLayer: downstream translates through a layer
	PatternAntiCorruptionLayer RelationshipPattern = "AntiCorruptionLayer"
	// PatternSeparateWays: no integration
	PatternSeparateWays RelationshipPattern = "SeparateWays"
	// PatternPublishedLanguage: integration via a shared formal language
	PatternPublishedLanguage RelationshipPattern = "PublishedLanguage"
	// PatternOpenHostService: upstream exposes services for consumers
	PatternOpenHostService RelationshipPattern = "OpenHostService"
	// PatternSharedKernel: both contexts share a common subset
	PatternSharedKernel RelationshipPattern = "SharedKernel"
)

// AllRelationshipPatterns lists every pattern in declaration order
var AllRelationshipPatterns = []RelationshipPattern{
	PatternPartnership,
	PatternCustomerSupplier,
	PatternConformist,
	PatternAntiCorruptionLayer,
	PatternSeparateWays,
	PatternPublishedLanguage,
	PatternOpenHostService,
	PatternSharedKernel,
}

// ParseRelationshipPattern converts a pattern name into a RelationshipPattern
func ParseRelationshipPattern(s string) (RelationshipPattern, error) {
	p := RelationshipPattern(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown relationship pattern %q", s)
	}
	return p, nil
}

// IsValid reports whether the pattern is one of the known variants
func (p RelationshipPattern) IsValid() bool {
	switch p {
	case PatternPartnership, PatternCustomerSupplier, PatternConformist,
		PatternAntiCorruptionLayer, PatternSeparateWays, PatternPublishedLanguage,
		PatternOpenHostService, PatternSharedKernel:
		return true
	}
	return false
}

// String returns the pattern name
func (p RelationshipPattern) String() string {
	return string(p)
}

// SourceIsUpstream reports whether the source context acts as the provider
func (p RelationshipPattern) SourceIsUpstream() bool {
	switch p {
	case PatternCustomerSupplier, PatternConformist, PatternAntiCorruptionLayer, PatternOpenHostService:
		return true
	}
	return false
}

// IsSymmetric reports whether neither side dominates the relationship
func (p RelationshipPattern) IsSymmetric() bool {
	return p == PatternPartnership || p == PatternSharedKernel
}

// RequiresTranslation reports whether a translation layer sits between the contexts
func (p RelationshipPattern) RequiresTranslation() bool {
	return p == PatternAntiCorruptionLayer
}

// HasIntegration reports whether the contexts integrate at all
func (p RelationshipPattern) HasIntegration() bool {
	return p != PatternSeparateWays
}

// Directionality returns a fixed human-readable label for the data flow
func (p RelationshipPattern) Directionality() string {
	switch p {
	case PatternPartnership:
		return "bidirectional"
	case PatternCustomerSupplier, PatternConformist:
		return "upstream → downstream"
	case PatternAntiCorruptionLayer:
		return "upstream → downstream (translated)"
	case PatternSeparateWays:
		return "none"
	case PatternPublishedLanguage:
		return "upstream → downstream (via shared language)"
	case PatternOpenHostService:
		return "upstream → downstream (via services)"
	case PatternSharedKernel:
		return "bidirectional (shared)"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p RelationshipPattern) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *RelationshipPattern) UnmarshalText(data []byte) error {
	parsed, err := ParseRelationshipPattern(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
