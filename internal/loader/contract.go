package loader

import (
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/fir"
)

func (b *builder) effect(spec *effectSpec) (*fir.RawEffect, error) {
	eff := &fir.RawEffect{Location: b.loc(spec.Pos)}
	set := 0
	if spec.Returns != nil {
		eff.Kind = fir.RawReturns
		eff.Value = *spec.Returns
		set++
	}
	if spec.ReturnsNotNull {
		eff.Kind = fir.RawReturnsNotNull
		set++
	}
	if spec.CallsInPlace != nil {
		eff.Kind = fir.RawCallsInPlace
		eff.Param = spec.CallsInPlace.Param
		eff.Invocation = spec.CallsInPlace.Kind
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("line %d: an effect needs exactly one of returns, returnsNotNull, callsInPlace", spec.Pos.Line)
	}
	if spec.Implies != nil {
		cond, err := b.condition(spec.Implies)
		if err != nil {
			return nil, err
		}
		eff.Implies = cond
	}
	return eff, nil
}

func (b *builder) condition(spec *conditionSpec) (*fir.RawCondition, error) {
	c := &fir.RawCondition{Location: b.loc(spec.Pos)}
	set := 0

	isCheck := func(is *isSpec, negated bool) error {
		ref, err := b.typeRef(is.Type, spec.Pos)
		if err != nil {
			return err
		}
		c.Kind, c.Param, c.Type, c.Negated = fir.CondIs, is.Param, ref, negated
		set++
		return nil
	}
	if spec.Is != nil {
		if err := isCheck(spec.Is, false); err != nil {
			return nil, err
		}
	}
	if spec.IsNot != nil {
		if err := isCheck(spec.IsNot, true); err != nil {
			return nil, err
		}
	}
	if spec.IsNull != "" {
		c.Kind, c.Param = fir.CondIsNull, spec.IsNull
		set++
	}
	if spec.NotNull != "" {
		c.Kind, c.Param, c.Negated = fir.CondIsNull, spec.NotNull, true
		set++
	}
	if spec.Param != "" {
		c.Kind, c.Param = fir.CondParam, spec.Param
		set++
	}
	if spec.Constant != nil {
		c.Kind, c.Value = fir.CondConst, *spec.Constant
		set++
	}
	if spec.Not != nil {
		inner, err := b.condition(spec.Not)
		if err != nil {
			return nil, err
		}
		c.Kind, c.Operands = fir.CondNot, []*fir.RawCondition{inner}
		set++
	}
	for _, group := range []struct {
		kind fir.RawConditionKind
		ops  []*conditionSpec
	}{{fir.CondAnd, spec.And}, {fir.CondOr, spec.Or}} {
		if group.ops == nil {
			continue
		}
		c.Kind = group.kind
		for _, op := range group.ops {
			inner, err := b.condition(op)
			if err != nil {
				return nil, err
			}
			c.Operands = append(c.Operands, inner)
		}
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("line %d: a condition needs exactly one operator", spec.Pos.Line)
	}
	return c, nil
}
