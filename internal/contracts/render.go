package contracts

import (
	"fmt"
	"strings"
)

type renderer struct{}

// Render prints a contract node in the notation used by diagnostics and the
// CLI, e.g. `returns(true) implies x is kotlin/String`.
func Render(e Element) string {
	return Accept[string, struct{}](e, renderer{}, struct{}{})
}

// RenderDescription prints every effect of d, separated by "; ".
func RenderDescription(d *Description) string {
	if d == nil {
		return ""
	}
	parts := make([]string, len(d.Effects))
	for i, e := range d.Effects {
		parts[i] = Render(e)
	}
	return strings.Join(parts, "; ")
}

func paramName(r *ValueParameterReference) string {
	switch {
	case r.IsReceiver():
		return "this"
	case r.Name != "":
		return r.Name
	default:
		return fmt.Sprintf("$%d", r.Index)
	}
}

func (renderer) VisitBooleanConstant(c *BooleanConstant, _ struct{}) string {
	if c.Value {
		return "true"
	}
	return "false"
}

func (renderer) VisitBooleanValueParameterReference(r *BooleanValueParameterReference, _ struct{}) string {
	return paramName(r.Ref)
}

func (renderer) VisitIsInstancePredicate(p *IsInstancePredicate, _ struct{}) string {
	op := " is "
	if p.IsNegated {
		op = " !is "
	}
	typ := "<no type>"
	if p.Type != nil {
		typ = p.Type.String()
	}
	return paramName(p.Arg) + op + typ
}

func (r renderer) VisitErroneousIsInstancePredicate(p *IsInstancePredicate, data struct{}) string {
	return "ERROR(" + r.VisitIsInstancePredicate(p, data) + ")"
}

func (renderer) VisitIsNullPredicate(p *IsNullPredicate, _ struct{}) string {
	op := " == null"
	if p.IsNegated {
		op = " != null"
	}
	s := paramName(p.Arg) + op
	if p.HasPayload() {
		return "ERROR(" + s + ")"
	}
	return s
}

func (r renderer) VisitLogicalNot(n *LogicalNot, data struct{}) string {
	return "!(" + Accept[string, struct{}](n.Arg, r, data) + ")"
}

func (r renderer) VisitBinaryLogicExpression(b *BinaryLogicExpression, data struct{}) string {
	return "(" + Accept[string, struct{}](b.Left, r, data) + " " + b.Kind.String() + " " +
		Accept[string, struct{}](b.Right, r, data) + ")"
}

func (renderer) VisitReturnsEffect(e *ReturnsEffect, _ struct{}) string {
	switch e.Value {
	case Wildcard:
		return "returns()"
	case ReturnsNotNull:
		return "returnsNotNull()"
	default:
		return "returns(" + e.Value.String() + ")"
	}
}

func (renderer) VisitCallsInPlaceEffect(c *CallsInPlaceEffect, _ struct{}) string {
	return "callsInPlace(" + paramName(c.Arg) + ", " + c.Kind.String() + ")"
}

func (r renderer) VisitConditionalEffect(c *ConditionalEffect, data struct{}) string {
	return Accept[string, struct{}](c.Effect, r, data) + " implies " + Accept[string, struct{}](c.Condition, r, data)
}
