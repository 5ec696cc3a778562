package fir

import (
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// RawEffectKind identifies an effect as written in a contract block
type RawEffectKind int

const (
	RawReturns RawEffectKind = iota
	RawReturnsNotNull
	RawCallsInPlace
)

// RawEffect is an unresolved effect. Value is "", "true", "false" or "null"
// for returns effects; Param and Invocation apply to callsInPlace.
type RawEffect struct {
	Kind       RawEffectKind
	Value      string
	Param      string
	Invocation string
	Implies    *RawCondition
	Location   *source.Location
}

// RawConditionKind identifies a condition shape
type RawConditionKind int

const (
	CondIs RawConditionKind = iota
	CondIsNull
	CondParam
	CondConst
	CondNot
	CondAnd
	CondOr
)

// RawCondition is an unresolved boolean expression of a contract.
type RawCondition struct {
	Kind     RawConditionKind
	Param    string
	Type     *TypeRef
	Negated  bool
	Value    bool
	Operands []*RawCondition
	Location *source.Location
}

// RawContract is the contract block of a function before resolution.
type RawContract struct {
	Effects  []*RawEffect
	Location *source.Location
}
