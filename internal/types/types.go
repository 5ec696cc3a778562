package types

import (
	"strings"

	"github.com/AmrAfifiy/kotlin/internal/names"
)

// ConeType is the resolved representation of a type.
//
// Design principles:
// - Types are immutable after creation
// - Equality is structural
// - A class-like type may name a type alias; only full expansion through the
//   session yields the underlying class
type ConeType interface {
	// String returns a human-readable representation of the type
	String() string

	// Equals checks structural equality with another type
	Equals(other ConeType) bool

	// IsNullable reports whether the type admits null
	IsNullable() bool

	// isType is a marker method to prevent external implementation
	isType()
}

// ClassLikeType references a class, interface or type alias by lookup tag.
type ClassLikeType struct {
	LookupTag names.ClassId
	Arguments []ConeType
	Nullable  bool
}

func NewClassLike(id names.ClassId, args ...ConeType) *ClassLikeType {
	return &ClassLikeType{LookupTag: id, Arguments: args}
}

func (c *ClassLikeType) String() string {
	var b strings.Builder
	b.WriteString(c.LookupTag.String())
	if len(c.Arguments) > 0 {
		args := make([]string, len(c.Arguments))
		for i, a := range c.Arguments {
			args[i] = a.String()
		}
		b.WriteByte('<')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte('>')
	}
	if c.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

func (c *ClassLikeType) IsNullable() bool { return c.Nullable }
func (c *ClassLikeType) isType()          {}

func (c *ClassLikeType) Equals(other ConeType) bool {
	o, ok := other.(*ClassLikeType)
	if !ok {
		return false
	}
	if c.LookupTag != o.LookupTag || c.Nullable != o.Nullable || len(c.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range c.Arguments {
		if !c.Arguments[i].Equals(o.Arguments[i]) {
			return false
		}
	}
	return true
}

// TypeParameterType references a type parameter in scope.
type TypeParameterType struct {
	Name     names.Name
	Nullable bool
}

func NewTypeParameter(name names.Name) *TypeParameterType {
	return &TypeParameterType{Name: name}
}

func (t *TypeParameterType) String() string {
	if t.Nullable {
		return string(t.Name) + "?"
	}
	return string(t.Name)
}

func (t *TypeParameterType) IsNullable() bool { return t.Nullable }
func (t *TypeParameterType) isType()          {}

func (t *TypeParameterType) Equals(other ConeType) bool {
	o, ok := other.(*TypeParameterType)
	return ok && t.Name == o.Name && t.Nullable == o.Nullable
}

// ErrorType stands in for a type that could not be resolved. It is never
// class-like and never equal to another error type.
type ErrorType struct {
	Reason string
}

func NewError(reason string) *ErrorType {
	return &ErrorType{Reason: reason}
}

func (e *ErrorType) String() string             { return "<ERROR: " + e.Reason + ">" }
func (e *ErrorType) IsNullable() bool           { return false }
func (e *ErrorType) isType()                    {}
func (e *ErrorType) Equals(other ConeType) bool { return false }

// WithNullability returns t with the requested nullability.
func WithNullability(t ConeType, nullable bool) ConeType {
	switch tt := t.(type) {
	case *ClassLikeType:
		if tt.Nullable == nullable {
			return tt
		}
		cp := *tt
		cp.Nullable = nullable
		return &cp
	case *TypeParameterType:
		if tt.Nullable == nullable {
			return tt
		}
		return &TypeParameterType{Name: tt.Name, Nullable: nullable}
	default:
		return t
	}
}

// AsClassLike returns t as a class-like type, if it is one.
func AsClassLike(t ConeType) (*ClassLikeType, bool) {
	c, ok := t.(*ClassLikeType)
	return c, ok
}

// IsError reports whether t is nil or an error type.
func IsError(t ConeType) bool {
	if t == nil {
		return true
	}
	_, ok := t.(*ErrorType)
	return ok
}
