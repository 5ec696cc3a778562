package phase

// ResolvePhase tracks how far a single declaration has been resolved.
//
// Phase progression is sequential:
// - Raw -> Imports -> SuperTypes -> Types -> Status -> Contracts
// - Contracts -> AnnotationArgumentsMapping -> BodyResolve
//
// A declaration's phase only increases. Annotation data may be read only at
// Types or later; annotation argument mappings are stored at
// AnnotationArgumentsMapping.
type ResolvePhase int32

const (
	Raw                        ResolvePhase = iota // Built by the loader, nothing resolved
	Imports                                        // Import scopes known
	SuperTypes                                     // Super type refs resolved
	Types                                          // All type refs, including annotation types, resolved
	Status                                         // Modifiers and visibility resolved
	Contracts                                      // Contract descriptions resolved
	AnnotationArgumentsMapping                     // Annotation arguments bound to parameters
	BodyResolve                                    // Bodies resolved
)

// First and Last bound the valid phases.
const (
	First = Raw
	Last  = BodyResolve
)

// Prerequisites maps each phase to its required predecessor phase
var Prerequisites = map[ResolvePhase]ResolvePhase{
	Imports:                    Raw,
	SuperTypes:                 Imports,
	Types:                      SuperTypes,
	Status:                     Types,
	Contracts:                  Status,
	AnnotationArgumentsMapping: Contracts,
	BodyResolve:                AnnotationArgumentsMapping,
}

func (p ResolvePhase) String() string {
	switch p {
	case Raw:
		return "RAW"
	case Imports:
		return "IMPORTS"
	case SuperTypes:
		return "SUPER_TYPES"
	case Types:
		return "TYPES"
	case Status:
		return "STATUS"
	case Contracts:
		return "CONTRACTS"
	case AnnotationArgumentsMapping:
		return "ANNOTATION_ARGUMENTS_MAPPING"
	case BodyResolve:
		return "BODY_RESOLVE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether p is a known phase.
func (p ResolvePhase) Valid() bool {
	return p >= First && p <= Last
}

// Next returns the phase following p, or p itself for the last phase.
func (p ResolvePhase) Next() ResolvePhase {
	if p >= Last {
		return Last
	}
	return p + 1
}

// Parse converts a phase name as printed by String back to a phase.
func Parse(name string) (ResolvePhase, bool) {
	for p := First; p <= Last; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return Raw, false
}
