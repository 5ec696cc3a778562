package fir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AmrAfifiy/kotlin/internal/diagnostics"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Expression is a value appearing in an annotation argument list or a
// parameter default.
type Expression interface {
	Source() *source.Location
	String() string
	expression()
}

// ConstKind is the literal kind of a ConstExpression
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstLong
	ConstDouble
	ConstString
	ConstBoolean
	ConstNull
)

// ConstExpression is a literal.
type ConstExpression struct {
	Kind     ConstKind
	Value    any
	Location *source.Location
}

func NewConst(kind ConstKind, value any) *ConstExpression {
	return &ConstExpression{Kind: kind, Value: value}
}

func (c *ConstExpression) Source() *source.Location { return c.Location }
func (c *ConstExpression) expression()              {}

func (c *ConstExpression) String() string {
	switch c.Kind {
	case ConstString:
		return strconv.Quote(fmt.Sprint(c.Value))
	case ConstNull:
		return "null"
	case ConstLong:
		return fmt.Sprintf("%vL", c.Value)
	default:
		return fmt.Sprint(c.Value)
	}
}

// NamedArgumentExpression is `name = expression` in an argument list.
type NamedArgumentExpression struct {
	Name       names.Name
	Expression Expression
	IsSpread   bool
	Location   *source.Location
}

func (n *NamedArgumentExpression) Source() *source.Location { return n.Location }
func (n *NamedArgumentExpression) expression()              {}

func (n *NamedArgumentExpression) String() string {
	spread := ""
	if n.IsSpread {
		spread = "*"
	}
	return string(n.Name) + " = " + spread + n.Expression.String()
}

// PropertyAccessExpression is a qualified reference such as an enum entry,
// `AnnotationTarget.CLASS`.
type PropertyAccessExpression struct {
	Qualifier names.FqName
	Callee    names.Name
	Location  *source.Location
}

func (p *PropertyAccessExpression) Source() *source.Location { return p.Location }
func (p *PropertyAccessExpression) expression()              {}

func (p *PropertyAccessExpression) String() string {
	if p.Qualifier.IsRoot() {
		return string(p.Callee)
	}
	return string(p.Qualifier) + "." + string(p.Callee)
}

// GetClassCall is `Type::class`.
type GetClassCall struct {
	Type     *TypeRef
	Location *source.Location
}

func (g *GetClassCall) Source() *source.Location { return g.Location }
func (g *GetClassCall) expression()              {}
func (g *GetClassCall) String() string           { return g.Type.String() + "::class" }

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	Elements []Expression
	Location *source.Location
}

func (a *ArrayLiteral) Source() *source.Location { return a.Location }
func (a *ArrayLiteral) expression()              {}

func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// AnnotationExpression is an annotation used as an argument of another
// annotation.
type AnnotationExpression struct {
	Annotation AnnotationUse
}

func (a *AnnotationExpression) Source() *source.Location { return a.Annotation.Source() }
func (a *AnnotationExpression) expression()              {}
func (a *AnnotationExpression) String() string           { return "@" + a.Annotation.Base().TypeRef.String() }

// ErrorExpression marks an argument that could not be built.
type ErrorExpression struct {
	Diagnostic *diagnostics.Diagnostic
	Location   *source.Location
}

func (e *ErrorExpression) Source() *source.Location { return e.Location }
func (e *ErrorExpression) expression()              {}

func (e *ErrorExpression) String() string {
	if e.Diagnostic == nil {
		return "<error>"
	}
	return "<error: " + e.Diagnostic.Message + ">"
}
