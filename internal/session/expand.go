package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// FullyExpand follows type alias chains until t no longer names an alias.
// Aliases are resolved to TYPES on the way. A chain that revisits an alias,
// or an alias whose expansion cannot be resolved, expands to an error type.
// Nullability of the written type is kept.
func (s *Session) FullyExpand(ctx context.Context, t types.ConeType) types.ConeType {
	seen := make(map[names.ClassId]bool)
	for {
		cls, ok := types.AsClassLike(t)
		if !ok {
			return t
		}
		sym := s.ClassLikeSymbol(cls.LookupTag)
		if sym == nil {
			return t
		}
		alias, ok := sym.Fir().(*fir.TypeAlias)
		if !ok {
			return t
		}
		if seen[cls.LookupTag] {
			s.tracer.Warn("type alias cycle through %s", cls.LookupTag)
			return types.NewError(cycleReason + cls.LookupTag.String())
		}
		seen[cls.LookupTag] = true

		if err := s.EnsureResolved(ctx, sym, phase.Types); err != nil {
			return types.NewError(fmt.Sprintf("cannot expand %s: %v", cls.LookupTag, err))
		}
		expanded := alias.Expanded.Cone()
		if expanded == nil {
			return types.NewError(fmt.Sprintf("unresolved expansion of %s", cls.LookupTag))
		}
		if cls.Nullable {
			expanded = types.WithNullability(expanded, true)
		}
		t = expanded
	}
}

const cycleReason = "cyclic type alias "

// IsCyclicExpansion reports whether t is the error FullyExpand returns for
// an alias chain that revisits an alias.
func IsCyclicExpansion(t types.ConeType) bool {
	e, ok := t.(*types.ErrorType)
	return ok && strings.HasPrefix(e.Reason, cycleReason)
}

// ExpandedClassLike fully expands t and returns it when the result is a
// class-like type.
func (s *Session) ExpandedClassLike(ctx context.Context, t types.ConeType) (*types.ClassLikeType, bool) {
	if t == nil {
		return nil, false
	}
	return types.AsClassLike(s.FullyExpand(ctx, t))
}

// ExpandedClass returns the class declaration t refers to after alias
// expansion, or nil.
func (s *Session) ExpandedClass(ctx context.Context, t types.ConeType) *fir.RegularClass {
	cls, ok := s.ExpandedClassLike(ctx, t)
	if !ok {
		return nil
	}
	sym := s.ClassLikeSymbol(cls.LookupTag)
	if sym == nil {
		return nil
	}
	class, _ := sym.Fir().(*fir.RegularClass)
	return class
}
