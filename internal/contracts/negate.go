package contracts

type negator struct{}

// Negate returns the logical negation of e as a new tree. Predicates flip
// their negation flag, constants flip their value, `!x` unwraps to x and
// binary expressions follow De Morgan. Erroneous payloads are kept.
func Negate(e BooleanExpression) BooleanExpression {
	return Accept[BooleanExpression, struct{}](e, negator{}, struct{}{})
}

func (negator) VisitBooleanConstant(c *BooleanConstant, _ struct{}) BooleanExpression {
	if c.Value {
		return False
	}
	return True
}

func (negator) VisitBooleanValueParameterReference(r *BooleanValueParameterReference, _ struct{}) BooleanExpression {
	return &LogicalNot{Arg: r}
}

func (negator) VisitIsInstancePredicate(p *IsInstancePredicate, _ struct{}) BooleanExpression {
	return p.Negated()
}

func (negator) VisitErroneousIsInstancePredicate(p *IsInstancePredicate, _ struct{}) BooleanExpression {
	return p.Negated()
}

func (negator) VisitIsNullPredicate(p *IsNullPredicate, _ struct{}) BooleanExpression {
	return p.Negated()
}

func (negator) VisitLogicalNot(n *LogicalNot, _ struct{}) BooleanExpression {
	return n.Arg
}

func (negator) VisitBinaryLogicExpression(b *BinaryLogicExpression, _ struct{}) BooleanExpression {
	kind := Or
	if b.Kind == Or {
		kind = And
	}
	return &BinaryLogicExpression{Left: Negate(b.Left), Right: Negate(b.Right), Kind: kind}
}

// Effects are not boolean expressions; Accept never routes them here.

func (negator) VisitReturnsEffect(*ReturnsEffect, struct{}) BooleanExpression { return nil }

func (negator) VisitCallsInPlaceEffect(*CallsInPlaceEffect, struct{}) BooleanExpression { return nil }

func (negator) VisitConditionalEffect(*ConditionalEffect, struct{}) BooleanExpression { return nil }
