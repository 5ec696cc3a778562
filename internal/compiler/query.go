package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmrAfifiy/kotlin/internal/annotations"
	"github.com/AmrAfifiy/kotlin/internal/contracts"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/pipeline"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

func lookup(sess *session.Session, decl string) (*fir.Symbol, error) {
	sym, ok := sess.Registry().Find(decl)
	if !ok {
		return nil, fmt.Errorf("no declaration named %s", decl)
	}
	return sym, nil
}

// ClassIds lists the distinct annotation classes of decl.
func ClassIds(ctx context.Context, sess *session.Session, decl string) ([]string, error) {
	sym, err := lookup(sess, decl)
	if err != nil {
		return nil, err
	}
	ids, err := annotations.AnnotationClassIds(ctx, sess, sym)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out, nil
}

// Bindings renders every annotation of decl as `@classId(name = value)`
// with arguments sorted by name. An undeterminable class prints as `?`.
func Bindings(ctx context.Context, sess *session.Session, decl string) ([]string, error) {
	sym, err := lookup(sess, decl)
	if err != nil {
		return nil, err
	}
	views, err := annotations.Annotations(ctx, sess, sym, sess.Token())
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(views))
	for _, v := range views {
		id, known, err := v.ClassId()
		if err != nil {
			return nil, err
		}
		args, err := v.Arguments(ctx)
		if err != nil {
			return nil, err
		}
		name := "?"
		if known {
			name = id.String()
		}
		var rendered []string
		for _, a := range pipeline.RenderArguments(args) {
			rendered = append(rendered, a.Name+" = "+a.Rendered)
		}
		line := "@" + name + "(" + strings.Join(rendered, ", ") + ")"
		if target, _ := v.UseSiteTarget(); target != "" {
			line = target + ":" + line
		}
		out = append(out, line)
	}
	return out, nil
}

// Contracts describes the resolved contract of every function in syms.
func Contracts(syms []*fir.Symbol) []string {
	var out []string
	for _, sym := range syms {
		fn, ok := sym.Fir().(*fir.SimpleFunction)
		if !ok || fn.Contract() == nil {
			continue
		}
		out = append(out, fn.DisplayName()+": "+contracts.RenderDescription(fn.Contract()))
	}
	return out
}
