package validators

// Diagnostic codes. These are durable identifiers; never renumber them.
const (
	// Sketch structure
	CodeMorphismSourceMissing = "E0001"
	CodeMorphismTargetMissing = "E0002"
	CodeDuplicateObjectName   = "E0020"
	CodeAggregateTooLarge     = "W0001"

	// Bounded context
	CodeAggregateRootMissing     = "E0030"
	CodeAggregateConeRootMissing = "E0031"
	CodeAggregateMemberMissing   = "E0032"
	CodeEntityIdentityMissing    = "E0040"
	CodeInvariantMorphismMissing = "E0044"
	CodeInvariantNotParallel     = "E0045"
	CodeValueObjectLimitMissing  = "W0010"
	CodeDuplicateVariantName     = "E0050"

	// Context maps
	CodeUnknownSourceContext        = "E0060"
	CodeUnknownTargetContext        = "E0061"
	CodeMappedSourceObjectMissing   = "E0062"
	CodeMappedTargetObjectMissing   = "E0063"
	CodeMappedSourceMorphismMissing = "E0064"
	CodeMappedTargetMorphismMissing = "E0065"

	// Model
	CodeDuplicateContextName = "E0070"
	CodeDuplicateMapName     = "E0071"

	// Paths
	CodePathSourceMissing   = "E0100"
	CodePathTargetMissing   = "E0101"
	CodePathMorphismMissing = "E0102"
	CodePathNotComposable   = "E0103"
	CodePathStartMismatch   = "E0104"
	CodePathEndMismatch     = "E0105"
	CodeEmptyPathEndpoints  = "E0106"

	// Equations
	CodeEquationSourceMismatch = "E0107"
	CodeEquationTargetMismatch = "E0108"
	CodeTrivialEquation        = "W0100"
	CodeLongEquationPath       = "W0101"
	CodeDuplicateEquationName  = "W0102"
)
