// Package contracts models resolved contract descriptions: effects such as
// returns(true) and callsInPlace, and the boolean conditions they depend on.
//
// Every node is immutable. Erroneous nodes are structurally present but carry
// a diagnostic payload; the taint is data for the consumer to report, never a
// control-flow signal.
package contracts

import (
	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// Element is any node of a contract description.
type Element interface {
	// Erroneous reports whether the node, or an operand it depends on, is
	// semantically invalid.
	Erroneous() bool

	contractElement()
}

// BooleanExpression is a condition over value parameters.
type BooleanExpression interface {
	Element
	booleanExpression()
}

// Effect is a fact a contract states about a call.
type Effect interface {
	Element
	effect()
}

// ReceiverIndex is the parameter index used for the extension receiver.
const ReceiverIndex = -1

// ValueParameterReference is a symbolic handle to a parameter of the function
// owning the contract.
type ValueParameterReference struct {
	Index      int
	Name       string
	Diagnostic *diagnostics.Diagnostic
}

func NewValueParameterReference(index int, name string) *ValueParameterReference {
	return &ValueParameterReference{Index: index, Name: name}
}

// NewErroneousValueParameterReference builds a reference to a parameter that
// could not be resolved.
func NewErroneousValueParameterReference(index int, name string, diag *diagnostics.Diagnostic) *ValueParameterReference {
	return &ValueParameterReference{Index: index, Name: name, Diagnostic: diag}
}

func (r *ValueParameterReference) Erroneous() bool { return r.Diagnostic != nil }

// IsReceiver reports whether r refers to the extension receiver.
func (r *ValueParameterReference) IsReceiver() bool { return r.Index == ReceiverIndex }

// BooleanConstant is the literal true or false.
type BooleanConstant struct {
	Value bool
}

var (
	True  = &BooleanConstant{Value: true}
	False = &BooleanConstant{Value: false}
)

func (c *BooleanConstant) Erroneous() bool    { return false }
func (c *BooleanConstant) contractElement()   {}
func (c *BooleanConstant) booleanExpression() {}

// BooleanValueParameterReference uses a Boolean parameter directly as a
// condition.
type BooleanValueParameterReference struct {
	Ref *ValueParameterReference
}

func (b *BooleanValueParameterReference) Erroneous() bool    { return b.Ref.Erroneous() }
func (b *BooleanValueParameterReference) contractElement()   {}
func (b *BooleanValueParameterReference) booleanExpression() {}

// IsInstancePredicate is `arg is Type`, or `arg !is Type` when negated.
type IsInstancePredicate struct {
	Arg        *ValueParameterReference
	Type       types.ConeType
	IsNegated  bool
	Diagnostic *diagnostics.Diagnostic // non-nil for the erroneous variant
}

// NewIsInstance builds a type-check predicate whose taint follows its operand.
func NewIsInstance(arg *ValueParameterReference, typ types.ConeType, negated bool) *IsInstancePredicate {
	return &IsInstancePredicate{Arg: arg, Type: typ, IsNegated: negated}
}

// NewErroneousIsInstance builds a type-check predicate that is erroneous
// regardless of its operand.
func NewErroneousIsInstance(arg *ValueParameterReference, typ types.ConeType, negated bool, diag *diagnostics.Diagnostic) *IsInstancePredicate {
	return &IsInstancePredicate{Arg: arg, Type: typ, IsNegated: negated, Diagnostic: diag}
}

func (p *IsInstancePredicate) Erroneous() bool {
	return p.Diagnostic != nil || p.Arg.Erroneous()
}

// HasPayload reports whether p was built as the erroneous variant.
func (p *IsInstancePredicate) HasPayload() bool { return p.Diagnostic != nil }

// Negated returns a new predicate with the negation flag flipped. The
// diagnostic payload is carried over; p is unchanged.
func (p *IsInstancePredicate) Negated() *IsInstancePredicate {
	return &IsInstancePredicate{Arg: p.Arg, Type: p.Type, IsNegated: !p.IsNegated, Diagnostic: p.Diagnostic}
}

func (p *IsInstancePredicate) contractElement()   {}
func (p *IsInstancePredicate) booleanExpression() {}

// IsNullPredicate is `arg == null`, or `arg != null` when negated.
type IsNullPredicate struct {
	Arg        *ValueParameterReference
	IsNegated  bool
	Diagnostic *diagnostics.Diagnostic
}

func NewIsNull(arg *ValueParameterReference, negated bool) *IsNullPredicate {
	return &IsNullPredicate{Arg: arg, IsNegated: negated}
}

func NewErroneousIsNull(arg *ValueParameterReference, negated bool, diag *diagnostics.Diagnostic) *IsNullPredicate {
	return &IsNullPredicate{Arg: arg, IsNegated: negated, Diagnostic: diag}
}

func (p *IsNullPredicate) Erroneous() bool {
	return p.Diagnostic != nil || p.Arg.Erroneous()
}

func (p *IsNullPredicate) HasPayload() bool { return p.Diagnostic != nil }

// Negated returns a new predicate with the negation flag flipped, keeping the
// diagnostic payload.
func (p *IsNullPredicate) Negated() *IsNullPredicate {
	return &IsNullPredicate{Arg: p.Arg, IsNegated: !p.IsNegated, Diagnostic: p.Diagnostic}
}

func (p *IsNullPredicate) contractElement()   {}
func (p *IsNullPredicate) booleanExpression() {}

// LogicalNot is `!arg`.
type LogicalNot struct {
	Arg BooleanExpression
}

func (n *LogicalNot) Erroneous() bool    { return n.Arg.Erroneous() }
func (n *LogicalNot) contractElement()   {}
func (n *LogicalNot) booleanExpression() {}

// LogicOperationKind is the operator of a BinaryLogicExpression.
type LogicOperationKind int

const (
	And LogicOperationKind = iota
	Or
)

func (k LogicOperationKind) String() string {
	if k == And {
		return "&&"
	}
	return "||"
}

// BinaryLogicExpression is `left && right` or `left || right`.
type BinaryLogicExpression struct {
	Left  BooleanExpression
	Right BooleanExpression
	Kind  LogicOperationKind
}

func (b *BinaryLogicExpression) Erroneous() bool {
	return b.Left.Erroneous() || b.Right.Erroneous()
}
func (b *BinaryLogicExpression) contractElement()   {}
func (b *BinaryLogicExpression) booleanExpression() {}

// ConstantKind is the value a function is stated to return.
type ConstantKind int

const (
	Wildcard ConstantKind = iota // returns()
	ReturnsTrue
	ReturnsFalse
	ReturnsNull
	ReturnsNotNull
)

func (k ConstantKind) String() string {
	switch k {
	case ReturnsTrue:
		return "true"
	case ReturnsFalse:
		return "false"
	case ReturnsNull:
		return "null"
	case ReturnsNotNull:
		return "not-null"
	default:
		return ""
	}
}

// ReturnsEffect states that the function returns normally with Value.
type ReturnsEffect struct {
	Value ConstantKind
}

func (r *ReturnsEffect) Erroneous() bool  { return false }
func (r *ReturnsEffect) contractElement() {}
func (r *ReturnsEffect) effect()          {}

// InvocationKind bounds how often a lambda parameter is invoked.
type InvocationKind int

const (
	Unknown InvocationKind = iota
	AtMostOnce
	ExactlyOnce
	AtLeastOnce
)

func (k InvocationKind) String() string {
	switch k {
	case AtMostOnce:
		return "AT_MOST_ONCE"
	case ExactlyOnce:
		return "EXACTLY_ONCE"
	case AtLeastOnce:
		return "AT_LEAST_ONCE"
	default:
		return "UNKNOWN"
	}
}

// CallsInPlaceEffect states that Arg is invoked in place Kind times.
type CallsInPlaceEffect struct {
	Arg  *ValueParameterReference
	Kind InvocationKind
}

func (c *CallsInPlaceEffect) Erroneous() bool  { return c.Arg.Erroneous() }
func (c *CallsInPlaceEffect) contractElement() {}
func (c *CallsInPlaceEffect) effect()          {}

// ConditionalEffect is `effect implies condition`.
type ConditionalEffect struct {
	Effect    Effect
	Condition BooleanExpression
}

func (c *ConditionalEffect) Erroneous() bool {
	return c.Effect.Erroneous() || c.Condition.Erroneous()
}
func (c *ConditionalEffect) contractElement() {}
func (c *ConditionalEffect) effect()          {}

// Description is the resolved contract of one function.
type Description struct {
	Effects []Effect
}

// Erroneous reports whether any effect is erroneous.
func (d *Description) Erroneous() bool {
	for _, e := range d.Effects {
		if e.Erroneous() {
			return true
		}
	}
	return false
}
