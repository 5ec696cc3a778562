package diagnostics

import (
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Common diagnostic builders for the resolution phases and checkers

// UnresolvedAnnotation creates a diagnostic for an annotation whose type
// could not be resolved to a class.
func UnresolvedAnnotation(loc *source.Location, name string) *Diagnostic {
	return NewError("unresolved annotation: "+name).
		WithCode(ErrUnresolvedAnnotation).
		WithPrimaryLabel(loc, "no annotation class with this name").
		WithHelp("check the import or the spelling of the annotation")
}

// UnresolvedType creates a diagnostic for a type reference that names no
// known class, alias or type parameter.
func UnresolvedType(loc *source.Location, name string) *Diagnostic {
	return NewError("unresolved reference: "+name).
		WithCode(ErrUnresolvedType).
		WithPrimaryLabel(loc, "not found")
}

// CyclicTypeAlias reports an alias whose expansion reaches itself.
func CyclicTypeAlias(loc *source.Location, alias string) *Diagnostic {
	return NewError("recursive type alias expansion: "+alias).
		WithCode(ErrCyclicTypeAlias).
		WithPrimaryLabel(loc, "alias expands to itself")
}

// ExcessAnnotationArgument reports a positional argument left without a
// matching constructor parameter.
func ExcessAnnotationArgument(loc *source.Location, annotation string, index int) *Diagnostic {
	return NewWarning(fmt.Sprintf("positional argument #%d of @%s has no matching parameter", index+1, annotation)).
		WithCode(WarnExcessAnnotationArg).
		WithPrimaryLabel(loc, "argument is ignored")
}

// UnknownNamedArgument reports a named argument that matches no formal
// parameter of the annotation's primary constructor.
func UnknownNamedArgument(loc *source.Location, annotation, name string) *Diagnostic {
	return NewWarning(fmt.Sprintf("@%s has no parameter named %s", annotation, name)).
		WithCode(WarnUnknownNamedArgument).
		WithPrimaryLabel(loc, "unknown parameter")
}

// NoPrimaryConstructor reports an annotation class without a primary
// constructor applied with arguments.
func NoPrimaryConstructor(loc *source.Location, annotation string) *Diagnostic {
	return NewWarning("annotation class " + annotation + " has no primary constructor").
		WithCode(ErrNoPrimaryConstructor).
		WithPrimaryLabel(loc, "positional arguments cannot be bound")
}

// UnresolvedContractParameter reports a contract that references a name that
// is not a value parameter of the owning function.
func UnresolvedContractParameter(loc *source.Location, function, name string) *Diagnostic {
	return NewError(fmt.Sprintf("%s is not a parameter of %s", name, function)).
		WithCode(ErrUnresolvedContractParameter).
		WithPrimaryLabel(loc, "contract refers to an unknown parameter")
}

// ErroneousContractPredicate wraps the payload of an erroneous predicate for
// reporting.
func ErroneousContractPredicate(loc *source.Location, rendered string, cause *Diagnostic) *Diagnostic {
	d := NewError("erroneous contract predicate: " + rendered).
		WithCode(ErrErroneousContractPredicate).
		WithPrimaryLabel(loc, "predicate cannot be evaluated")
	if cause != nil {
		d.WithNote(cause.Message)
	}
	return d
}

// CyclicResolution reports a declaration whose resolution depends on itself.
func CyclicResolution(loc *source.Location, cycle string) *Diagnostic {
	return NewError("cyclic resolution: " + cycle).
		WithCode(ErrCyclicResolution).
		WithPrimaryLabel(loc, "resolution of this declaration depends on itself")
}
