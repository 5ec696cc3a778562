package resolve

import (
	"context"
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/contracts"
	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/source"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

const (
	receiverName = "this"
	// unresolvedIndex marks a reference to a name that is not a parameter.
	unresolvedIndex = -2
)

var invocationKinds = map[string]contracts.InvocationKind{
	"":              contracts.Unknown,
	"UNKNOWN":       contracts.Unknown,
	"AT_MOST_ONCE":  contracts.AtMostOnce,
	"EXACTLY_ONCE":  contracts.ExactlyOnce,
	"AT_LEAST_ONCE": contracts.AtLeastOnce,
}

var returnsValues = map[string]contracts.ConstantKind{
	"":      contracts.Wildcard,
	"true":  contracts.ReturnsTrue,
	"false": contracts.ReturnsFalse,
	"null":  contracts.ReturnsNull,
}

// resolveContract turns the raw contract of a function into a description.
// Problems never fail the phase: they become erroneous references and
// predicates carrying a diagnostic.
func resolveContract(_ context.Context, _ *session.Session, decl fir.Declaration) error {
	fn, ok := decl.(*fir.SimpleFunction)
	if !ok || fn.RawContract == nil {
		return nil
	}
	b := contractBuilder{fn: fn}
	desc := &contracts.Description{}
	for _, raw := range fn.RawContract.Effects {
		desc.Effects = append(desc.Effects, b.effect(raw))
	}
	fn.SetContract(desc)
	return nil
}

type contractBuilder struct {
	fn *fir.SimpleFunction
}

// parameter resolves a name used in a contract. "this" is the receiver of
// an extension function.
func (b contractBuilder) parameter(name string, loc *source.Location) *contracts.ValueParameterReference {
	if name == receiverName && b.fn.Receiver != nil {
		return contracts.NewValueParameterReference(contracts.ReceiverIndex, name)
	}
	for i, p := range b.fn.ValueParameters {
		if string(p.Name) == name {
			return contracts.NewValueParameterReference(i, name)
		}
	}
	if loc == nil {
		loc = b.fn.Source()
	}
	diag := diagnostics.UnresolvedContractParameter(loc, b.fn.DisplayName(), name)
	return contracts.NewErroneousValueParameterReference(unresolvedIndex, name, diag)
}

func (b contractBuilder) effect(raw *fir.RawEffect) contracts.Effect {
	var eff contracts.Effect
	switch raw.Kind {
	case fir.RawReturnsNotNull:
		eff = &contracts.ReturnsEffect{Value: contracts.ReturnsNotNull}
	case fir.RawCallsInPlace:
		kind, ok := invocationKinds[raw.Invocation]
		if !ok {
			kind = contracts.Unknown
		}
		eff = &contracts.CallsInPlaceEffect{Arg: b.parameter(raw.Param, raw.Location), Kind: kind}
	default:
		value, ok := returnsValues[raw.Value]
		if !ok {
			value = contracts.Wildcard
		}
		eff = &contracts.ReturnsEffect{Value: value}
	}
	if raw.Implies == nil {
		return eff
	}
	return &contracts.ConditionalEffect{Effect: eff, Condition: b.condition(raw.Implies)}
}

func (b contractBuilder) condition(raw *fir.RawCondition) contracts.BooleanExpression {
	switch raw.Kind {
	case fir.CondIs:
		ref := b.parameter(raw.Param, raw.Location)
		t := raw.Type.Cone()
		if types.IsError(t) {
			diag := diagnostics.NewError(fmt.Sprintf("unresolved type %s in contract of %s", raw.Type, b.fn.DisplayName())).
				WithCode(diagnostics.ErrUnresolvedContractType).
				WithPrimaryLabel(raw.Location, "type cannot be checked")
			if t == nil {
				t = types.NewError("missing type")
			}
			return contracts.NewErroneousIsInstance(ref, t, raw.Negated, diag)
		}
		return contracts.NewIsInstance(ref, t, raw.Negated)
	case fir.CondIsNull:
		return contracts.NewIsNull(b.parameter(raw.Param, raw.Location), raw.Negated)
	case fir.CondParam:
		return &contracts.BooleanValueParameterReference{Ref: b.parameter(raw.Param, raw.Location)}
	case fir.CondConst:
		if raw.Value {
			return contracts.True
		}
		return contracts.False
	case fir.CondNot:
		if len(raw.Operands) == 0 {
			return contracts.False
		}
		return &contracts.LogicalNot{Arg: b.condition(raw.Operands[0])}
	case fir.CondAnd:
		return b.fold(raw.Operands, contracts.And, contracts.True)
	case fir.CondOr:
		return b.fold(raw.Operands, contracts.Or, contracts.False)
	default:
		return contracts.False
	}
}

// fold combines operands left to right. An empty operand list yields the
// neutral element of the operation.
func (b contractBuilder) fold(ops []*fir.RawCondition, kind contracts.LogicOperationKind, neutral contracts.BooleanExpression) contracts.BooleanExpression {
	if len(ops) == 0 {
		return neutral
	}
	acc := b.condition(ops[0])
	for _, op := range ops[1:] {
		acc = &contracts.BinaryLogicExpression{Left: acc, Right: b.condition(op), Kind: kind}
	}
	return acc
}
