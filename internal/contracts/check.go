package contracts

import (
	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Problem is one erroneous node found in a description, with the diagnostic
// that made it erroneous.
type Problem struct {
	Node  Element
	Cause *diagnostics.Diagnostic
}

type problemCollector struct {
	DefaultVisitor[struct{}, *[]Problem]
}

// Problems walks d and returns every erroneous leaf in traversal order. A
// predicate with its own payload is reported once, even when its operand is
// erroneous as well.
func Problems(d *Description) []Problem {
	if d == nil {
		return nil
	}
	var out []Problem
	c := &problemCollector{}
	for _, e := range d.Effects {
		Accept[struct{}, *[]Problem](e, c, &out)
	}
	return out
}

func (c *problemCollector) reference(node Element, r *ValueParameterReference, out *[]Problem) struct{} {
	if r.Erroneous() {
		*out = append(*out, Problem{Node: node, Cause: r.Diagnostic})
	}
	return struct{}{}
}

func (c *problemCollector) VisitBooleanValueParameterReference(r *BooleanValueParameterReference, out *[]Problem) struct{} {
	return c.reference(r, r.Ref, out)
}

func (c *problemCollector) VisitIsInstancePredicate(p *IsInstancePredicate, out *[]Problem) struct{} {
	return c.reference(p, p.Arg, out)
}

func (c *problemCollector) VisitErroneousIsInstancePredicate(p *IsInstancePredicate, out *[]Problem) struct{} {
	*out = append(*out, Problem{Node: p, Cause: p.Diagnostic})
	return struct{}{}
}

func (c *problemCollector) VisitIsNullPredicate(p *IsNullPredicate, out *[]Problem) struct{} {
	if p.HasPayload() {
		*out = append(*out, Problem{Node: p, Cause: p.Diagnostic})
		return struct{}{}
	}
	return c.reference(p, p.Arg, out)
}

func (c *problemCollector) VisitLogicalNot(n *LogicalNot, out *[]Problem) struct{} {
	return Accept[struct{}, *[]Problem](n.Arg, c, out)
}

func (c *problemCollector) VisitBinaryLogicExpression(b *BinaryLogicExpression, out *[]Problem) struct{} {
	Accept[struct{}, *[]Problem](b.Left, c, out)
	return Accept[struct{}, *[]Problem](b.Right, c, out)
}

func (c *problemCollector) VisitCallsInPlaceEffect(e *CallsInPlaceEffect, out *[]Problem) struct{} {
	return c.reference(e, e.Arg, out)
}

func (c *problemCollector) VisitConditionalEffect(e *ConditionalEffect, out *[]Problem) struct{} {
	Accept[struct{}, *[]Problem](e.Effect, c, out)
	return Accept[struct{}, *[]Problem](e.Condition, c, out)
}

// Check reports every problem of d into bag, labelled at loc.
func Check(d *Description, loc *source.Location, bag *diagnostics.Bag) int {
	problems := Problems(d)
	for _, p := range problems {
		bag.Add(diagnostics.ErroneousContractPredicate(loc, Render(p.Node), p.Cause))
	}
	return len(problems)
}
