package fir

import (
	"sync/atomic"

	"github.com/AmrAfifiy/kotlin/internal/contracts"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Declaration is a node that owns annotations and, for top-level
// declarations, a symbol.
type Declaration interface {
	// Symbol is nil for declarations resolved as part of their owner, such
	// as constructors and value parameters.
	Symbol() *Symbol
	Annotations() []AnnotationUse
	Source() *source.Location
	DisplayName() string
	declaration()
}

type declarationBase struct {
	symbol      *Symbol
	annotations []AnnotationUse
	Location    *source.Location
}

func (d *declarationBase) Symbol() *Symbol              { return d.symbol }
func (d *declarationBase) Annotations() []AnnotationUse { return d.annotations }
func (d *declarationBase) Source() *source.Location     { return d.Location }
func (d *declarationBase) declaration()                 {}

// AddAnnotations appends annotations to the declaration. Only used while
// building the tree.
func (d *declarationBase) AddAnnotations(annos ...AnnotationUse) {
	d.annotations = append(d.annotations, annos...)
}

// ClassKind is the flavour of a class declaration
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnumClass
	KindAnnotationClass
	KindObject
)

var classKindNames = map[ClassKind]string{
	KindClass:           "class",
	KindInterface:       "interface",
	KindEnumClass:       "enum class",
	KindAnnotationClass: "annotation class",
	KindObject:          "object",
}

func (k ClassKind) String() string {
	if s, ok := classKindNames[k]; ok {
		return s
	}
	return "class"
}

// ParseClassKind is the inverse of ClassKind.String.
func ParseClassKind(s string) (ClassKind, bool) {
	for k, name := range classKindNames {
		if name == s {
			return k, true
		}
	}
	return KindClass, false
}

// RegularClass is a class, interface, enum, annotation class or object.
type RegularClass struct {
	declarationBase
	ClassId      names.ClassId
	Kind         ClassKind
	SuperTypes   []*TypeRef
	Constructors []*Constructor
	Members      []Declaration
}

// NewRegularClass creates a class and its symbol.
func NewRegularClass(id names.ClassId, kind ClassKind) *RegularClass {
	c := &RegularClass{ClassId: id, Kind: kind}
	c.symbol = newSymbol(ClassSymbol, c)
	return c
}

func (c *RegularClass) DisplayName() string { return c.ClassId.String() }

// PrimaryConstructor returns the constructor flagged as primary, or nil.
func (c *RegularClass) PrimaryConstructor() *Constructor {
	for _, ctor := range c.Constructors {
		if ctor.IsPrimary {
			return ctor
		}
	}
	return nil
}

// AddConstructor attaches ctor to c.
func (c *RegularClass) AddConstructor(ctor *Constructor) {
	ctor.Owner = c.ClassId
	c.Constructors = append(c.Constructors, ctor)
}

// TypeAlias is `typealias Name = Expanded`.
type TypeAlias struct {
	declarationBase
	ClassId  names.ClassId
	Expanded *TypeRef
}

func NewTypeAlias(id names.ClassId, expanded *TypeRef) *TypeAlias {
	a := &TypeAlias{ClassId: id, Expanded: expanded}
	a.symbol = newSymbol(TypeAliasSymbol, a)
	return a
}

func (a *TypeAlias) DisplayName() string { return a.ClassId.String() }

// Constructor of a class. It is resolved together with its owner.
type Constructor struct {
	declarationBase
	Owner           names.ClassId
	IsPrimary       bool
	ValueParameters []*ValueParameter
}

func (c *Constructor) DisplayName() string {
	return c.Owner.String() + ".<init>"
}

// ParameterNames returns the value parameter names in declaration order.
func (c *Constructor) ParameterNames() []names.Name {
	out := make([]names.Name, len(c.ValueParameters))
	for i, p := range c.ValueParameters {
		out[i] = p.Name
	}
	return out
}

// ValueParameter of a function or constructor.
type ValueParameter struct {
	declarationBase
	Name         names.Name
	Type         *TypeRef
	DefaultValue Expression
	IsVararg     bool
}

func (p *ValueParameter) DisplayName() string { return string(p.Name) }

// SimpleFunction is a named top-level function. Its contract is resolved
// during the CONTRACTS phase.
type SimpleFunction struct {
	declarationBase
	Package         names.FqName
	Name            names.Name
	Receiver        *TypeRef
	ValueParameters []*ValueParameter
	ReturnType      *TypeRef
	RawContract     *RawContract

	contract atomic.Pointer[contracts.Description]
}

func NewSimpleFunction(pkg names.FqName, name names.Name) *SimpleFunction {
	f := &SimpleFunction{Package: pkg, Name: name}
	f.symbol = newSymbol(FunctionSymbol, f)
	return f
}

func (f *SimpleFunction) DisplayName() string {
	if f.Package.IsRoot() {
		return string(f.Name)
	}
	return string(f.Package.Child(f.Name))
}

// Contract returns the resolved contract, or nil when the function has none
// or it has not been resolved yet.
func (f *SimpleFunction) Contract() *contracts.Description { return f.contract.Load() }

// SetContract stores the resolved contract.
func (f *SimpleFunction) SetContract(d *contracts.Description) { f.contract.Store(d) }

// Property is a top-level property.
type Property struct {
	declarationBase
	Package    names.FqName
	Name       names.Name
	ReturnType *TypeRef
}

func NewProperty(pkg names.FqName, name names.Name, typ *TypeRef) *Property {
	p := &Property{Package: pkg, Name: name, ReturnType: typ}
	p.symbol = newSymbol(PropertySymbol, p)
	return p
}

func (p *Property) DisplayName() string {
	if p.Package.IsRoot() {
		return string(p.Name)
	}
	return string(p.Package.Child(p.Name))
}
