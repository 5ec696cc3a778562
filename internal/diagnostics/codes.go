package diagnostics

// Diagnostic codes
const (
	// Annotation errors (A prefix)
	ErrUnresolvedAnnotation   = "A0001"
	ErrNoPrimaryConstructor   = "A0002"
	WarnExcessAnnotationArg   = "A0003"
	ErrAnnotationNotClassLike = "A0004"
	WarnUnknownNamedArgument  = "A0005"

	// Contract errors (C prefix)
	ErrUnresolvedContractParameter = "C0001"
	ErrErroneousContractPredicate  = "C0002"
	ErrUnresolvedContractType      = "C0003"

	// Resolution errors (R prefix)
	ErrCyclicResolution = "R0001"
	ErrUnresolvedType   = "R0002"
	ErrCyclicTypeAlias  = "R0003"
)
