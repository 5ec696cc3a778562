package contracts

import "fmt"

// Visitor is a consumer of contract nodes. Accept selects the method for the
// node's variant; an IsInstancePredicate carrying a diagnostic payload goes to
// VisitErroneousIsInstancePredicate.
type Visitor[R, D any] interface {
	VisitBooleanConstant(c *BooleanConstant, data D) R
	VisitBooleanValueParameterReference(r *BooleanValueParameterReference, data D) R
	VisitIsInstancePredicate(p *IsInstancePredicate, data D) R
	VisitErroneousIsInstancePredicate(p *IsInstancePredicate, data D) R
	VisitIsNullPredicate(p *IsNullPredicate, data D) R
	VisitLogicalNot(n *LogicalNot, data D) R
	VisitBinaryLogicExpression(b *BinaryLogicExpression, data D) R
	VisitReturnsEffect(r *ReturnsEffect, data D) R
	VisitCallsInPlaceEffect(c *CallsInPlaceEffect, data D) R
	VisitConditionalEffect(c *ConditionalEffect, data D) R
}

// Accept dispatches e to the matching method of v.
func Accept[R, D any](e Element, v Visitor[R, D], data D) R {
	switch n := e.(type) {
	case *BooleanConstant:
		return v.VisitBooleanConstant(n, data)
	case *BooleanValueParameterReference:
		return v.VisitBooleanValueParameterReference(n, data)
	case *IsInstancePredicate:
		if n.HasPayload() {
			return v.VisitErroneousIsInstancePredicate(n, data)
		}
		return v.VisitIsInstancePredicate(n, data)
	case *IsNullPredicate:
		return v.VisitIsNullPredicate(n, data)
	case *LogicalNot:
		return v.VisitLogicalNot(n, data)
	case *BinaryLogicExpression:
		return v.VisitBinaryLogicExpression(n, data)
	case *ReturnsEffect:
		return v.VisitReturnsEffect(n, data)
	case *CallsInPlaceEffect:
		return v.VisitCallsInPlaceEffect(n, data)
	case *ConditionalEffect:
		return v.VisitConditionalEffect(n, data)
	default:
		panic(fmt.Sprintf("contracts: unknown element %T", e))
	}
}

// DefaultVisitor routes every variant to Default. Embed it in a consumer and
// override only the methods that matter.
type DefaultVisitor[R, D any] struct {
	Default func(e Element, data D) R
}

func (v DefaultVisitor[R, D]) fallback(e Element, data D) R {
	if v.Default == nil {
		var zero R
		return zero
	}
	return v.Default(e, data)
}

func (v DefaultVisitor[R, D]) VisitBooleanConstant(c *BooleanConstant, data D) R {
	return v.fallback(c, data)
}

func (v DefaultVisitor[R, D]) VisitBooleanValueParameterReference(r *BooleanValueParameterReference, data D) R {
	return v.fallback(r, data)
}

func (v DefaultVisitor[R, D]) VisitIsInstancePredicate(p *IsInstancePredicate, data D) R {
	return v.fallback(p, data)
}

func (v DefaultVisitor[R, D]) VisitErroneousIsInstancePredicate(p *IsInstancePredicate, data D) R {
	return v.fallback(p, data)
}

func (v DefaultVisitor[R, D]) VisitIsNullPredicate(p *IsNullPredicate, data D) R {
	return v.fallback(p, data)
}

func (v DefaultVisitor[R, D]) VisitLogicalNot(n *LogicalNot, data D) R {
	return v.fallback(n, data)
}

func (v DefaultVisitor[R, D]) VisitBinaryLogicExpression(b *BinaryLogicExpression, data D) R {
	return v.fallback(b, data)
}

func (v DefaultVisitor[R, D]) VisitReturnsEffect(r *ReturnsEffect, data D) R {
	return v.fallback(r, data)
}

func (v DefaultVisitor[R, D]) VisitCallsInPlaceEffect(c *CallsInPlaceEffect, data D) R {
	return v.fallback(c, data)
}

func (v DefaultVisitor[R, D]) VisitConditionalEffect(c *ConditionalEffect, data D) R {
	return v.fallback(c, data)
}
