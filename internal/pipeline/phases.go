package pipeline

import (
	"context"
	"sort"

	"github.com/AmrAfifiy/kotlin/internal/annotations"
	"github.com/AmrAfifiy/kotlin/internal/contracts"
	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/source"
	"github.com/AmrAfifiy/kotlin/internal/storage"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// owner is a declaration that carries annotations, with the name it is
// indexed under.
type owner struct {
	name string
	decl fir.Declaration
}

// owners lists decl and the constructors and parameters resolved with it.
func owners(decl fir.Declaration) []owner {
	out := []owner{{name: decl.DisplayName(), decl: decl}}
	params := func(prefix string, ps []*fir.ValueParameter) {
		for _, p := range ps {
			out = append(out, owner{name: prefix + ":" + string(p.Name), decl: p})
		}
	}
	switch d := decl.(type) {
	case *fir.RegularClass:
		for _, ctor := range d.Constructors {
			out = append(out, owner{name: ctor.DisplayName(), decl: ctor})
			params(ctor.DisplayName(), ctor.ValueParameters)
		}
	case *fir.SimpleFunction:
		params(d.DisplayName(), d.ValueParameters)
	}
	return out
}

func (p *Pipeline) runIndexPhase(ctx context.Context, syms []*fir.Symbol) error {
	p.records = p.records[:0]
	for _, sym := range syms {
		for _, o := range owners(sym.Fir()) {
			for i, use := range o.decl.Annotations() {
				if err := ctx.Err(); err != nil {
					return err
				}
				id, known := annotations.ClassIdOf(ctx, use, p.sess)
				rec := storage.AnnotationRecord{
					Declaration:   o.name,
					Position:      i,
					UseSiteTarget: use.Base().UseSiteTarget,
					Arguments:     RenderArguments(p.cache.Get(ctx, use)),
				}
				if known {
					rec.ClassId = id.String()
					p.checkArguments(ctx, use, id)
				}
				p.records = append(p.records, rec)
			}
		}
	}
	p.sess.Tracer().Info("%d annotation(s) indexed, %d cached binding(s)", len(p.records), p.cache.Len())
	return nil
}

// checkArguments reports what the binder silently ignores: positional
// arguments left without a parameter and named arguments that match none.
func (p *Pipeline) checkArguments(ctx context.Context, use fir.AnnotationUse, id names.ClassId) {
	call, ok := use.(*fir.AnnotationCall)
	if !ok || len(call.ArgumentList) == 0 {
		return
	}
	bag := p.sess.Diagnostics()
	b := annotations.BindCall(ctx, call, p.sess)

	if b.Formals == nil {
		if class := p.sess.ExpandedClass(ctx, call.TypeRef.Cone()); class != nil {
			bag.Add(diagnostics.NoPrimaryConstructor(call.Source(), id.String()))
		}
		return
	}

	indexes := make([]int, 0, len(b.Dropped))
	for i := range b.Dropped {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		bag.Add(diagnostics.ExcessAnnotationArgument(sourceOf(b.Dropped[i], call), id.String(), i))
	}

	formals := make(map[names.Name]bool, len(b.Formals))
	for _, f := range b.Formals {
		formals[f] = true
	}
	for _, arg := range call.ArgumentList {
		if named, ok := arg.(*fir.NamedArgumentExpression); ok && !formals[named.Name] {
			bag.Add(diagnostics.UnknownNamedArgument(sourceOf(named, call), id.String(), string(named.Name)))
		}
	}
}

func sourceOf(e fir.Expression, call *fir.AnnotationCall) *source.Location {
	if loc := e.Source(); loc != nil {
		return loc
	}
	return call.Source()
}

func (p *Pipeline) runContractPhase(syms []*fir.Symbol) {
	for _, sym := range syms {
		fn, ok := sym.Fir().(*fir.SimpleFunction)
		if !ok {
			continue
		}
		d := fn.Contract()
		if d == nil {
			continue
		}
		if n := contracts.Check(d, fn.Source(), p.sess.Diagnostics()); n > 0 {
			p.sess.Tracer().Warn("%s: %d erroneous contract predicate(s)", fn.DisplayName(), n)
		}
	}
}

func (p *Pipeline) runAliasPhase(ctx context.Context, syms []*fir.Symbol) {
	for _, sym := range syms {
		alias, ok := sym.Fir().(*fir.TypeAlias)
		if !ok {
			continue
		}
		if session.IsCyclicExpansion(p.sess.FullyExpand(ctx, types.NewClassLike(alias.ClassId))) {
			p.sess.Diagnostics().Add(diagnostics.CyclicTypeAlias(alias.Source(), alias.DisplayName()))
		}
	}
}

// RenderArguments renders a binding sorted by parameter name.
func RenderArguments(m map[string]fir.Expression) []storage.Argument {
	if len(m) == 0 {
		return nil
	}
	out := make([]storage.Argument, 0, len(m))
	for name, e := range m {
		out = append(out, storage.Argument{Name: name, Rendered: e.String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
