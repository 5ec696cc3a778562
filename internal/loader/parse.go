package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// parser reads the small expression language used inside fixtures: type
// references such as `List<String?>` and annotation arguments such as
// `tag = "q"`, `5`, `[1, 2]`, `Level.HIGH`, `Foo::class` or `@Inner(1)`.
type parser struct {
	src string
	pos int
	loc *source.Location
}

func newParser(src string, loc *source.Location) *parser {
	return &parser{src: src, loc: loc}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) accept(s string) bool {
	p.skipSpaces()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.accept(s) {
		return p.errorf("expected %q", s)
	}
	return nil
}

func (p *parser) done() error {
	p.skipSpaces()
	if p.pos != len(p.src) {
		return p.errorf("unexpected trailing text")
	}
	return nil
}

func isIdentByte(b byte, first bool) bool {
	if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
		return true
	}
	return !first && b >= '0' && b <= '9'
}

func (p *parser) ident() (string, bool) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos], p.pos > start
}

// qualified reads `a.b.C`. It stops before a dot that is not followed by an
// identifier.
func (p *parser) qualified() (names.FqName, error) {
	first, ok := p.ident()
	if !ok {
		return "", p.errorf("expected a name")
	}
	parts := []string{first}
	for {
		save := p.pos
		if p.pos < len(p.src) && p.src[p.pos] == '.' {
			p.pos++
			if next, ok := p.ident(); ok {
				parts = append(parts, next)
				continue
			}
		}
		p.pos = save
		return names.NewFqName(parts...), nil
	}
}

// ParseType parses a written type.
func ParseType(text string) (*fir.UserType, error) {
	p := newParser(text, nil)
	t, err := p.userType()
	if err != nil {
		return nil, err
	}
	if err := p.done(); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) userType() (*fir.UserType, error) {
	if p.accept("*") {
		return &fir.UserType{Qualifier: "Any", Nullable: true}, nil
	}
	q, err := p.qualified()
	if err != nil {
		return nil, err
	}
	t := &fir.UserType{Qualifier: q}
	if p.accept("<") {
		for {
			arg, err := p.userType()
			if err != nil {
				return nil, err
			}
			t.Arguments = append(t.Arguments, arg)
			if p.accept(">") {
				break
			}
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	t.Nullable = p.accept("?")
	return t, nil
}

// ParseArgument parses one annotation argument, named or positional.
func ParseArgument(text string, loc *source.Location) (fir.Expression, error) {
	p := newParser(text, loc)
	e, err := p.argument()
	if err != nil {
		return nil, err
	}
	if err := p.done(); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseAnnotation parses `Name` or `Name(args...)` into an annotation call.
func ParseAnnotation(text string, loc *source.Location) (*fir.AnnotationCall, error) {
	p := newParser(strings.TrimPrefix(strings.TrimSpace(text), "@"), loc)
	call, err := p.annotation()
	if err != nil {
		return nil, err
	}
	if err := p.done(); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *parser) annotation() (*fir.AnnotationCall, error) {
	t, err := p.userType()
	if err != nil {
		return nil, err
	}
	var args []fir.Expression
	if p.accept("(") && !p.accept(")") {
		for {
			arg, err := p.argument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.accept(")") {
				break
			}
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	call := fir.NewAnnotationCall(fir.NewUserTypeRef(t, p.loc), args...)
	call.Location = p.loc
	return call, nil
}

func (p *parser) argument() (fir.Expression, error) {
	save := p.pos
	if name, ok := p.ident(); ok {
		p.skipSpaces()
		if p.pos < len(p.src) && p.src[p.pos] == '=' && !strings.HasPrefix(p.src[p.pos:], "==") {
			p.pos++
			spread := p.accept("*")
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			return &fir.NamedArgumentExpression{Name: names.Name(name), Expression: value, IsSpread: spread, Location: p.loc}, nil
		}
	}
	p.pos = save
	return p.expression()
}

func (p *parser) expression() (fir.Expression, error) {
	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("expected an expression")
	case c == '"':
		return p.stringLiteral()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '[':
		return p.array()
	case c == '@':
		p.pos++
		call, err := p.annotation()
		if err != nil {
			return nil, err
		}
		return &fir.AnnotationExpression{Annotation: call}, nil
	}
	return p.reference()
}

func (p *parser) stringLiteral() (fir.Expression, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, p.errorf("unterminated string")
	}
	p.pos++
	value, err := strconv.Unquote(p.src[start:p.pos])
	if err != nil {
		return nil, p.errorf("bad string literal: %v", err)
	}
	return &fir.ConstExpression{Kind: fir.ConstString, Value: value, Location: p.loc}, nil
}

func (p *parser) number() (fir.Expression, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	lit := p.src[start:p.pos]
	if p.pos < len(p.src) && p.src[p.pos] == 'L' {
		p.pos++
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, p.errorf("bad long literal %s", lit)
		}
		return &fir.ConstExpression{Kind: fir.ConstLong, Value: v, Location: p.loc}, nil
	}
	if strings.Contains(lit, ".") {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errorf("bad double literal %s", lit)
		}
		return &fir.ConstExpression{Kind: fir.ConstDouble, Value: v, Location: p.loc}, nil
	}
	v, err := strconv.Atoi(lit)
	if err != nil {
		return nil, p.errorf("bad int literal %s", lit)
	}
	return &fir.ConstExpression{Kind: fir.ConstInt, Value: v, Location: p.loc}, nil
}

func (p *parser) array() (fir.Expression, error) {
	p.pos++
	arr := &fir.ArrayLiteral{Location: p.loc}
	if p.accept("]") {
		return arr, nil
	}
	for {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, e)
		if p.accept("]") {
			return arr, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

// reference handles keywords, `Type::class` and qualified property access.
func (p *parser) reference() (fir.Expression, error) {
	save := p.pos
	q, err := p.qualified()
	if err != nil {
		return nil, err
	}
	switch q {
	case "true", "false":
		return &fir.ConstExpression{Kind: fir.ConstBoolean, Value: q == "true", Location: p.loc}, nil
	case "null":
		return &fir.ConstExpression{Kind: fir.ConstNull, Location: p.loc}, nil
	}
	after := p.pos
	p.pos = save
	if t, err := p.userType(); err == nil && p.accept("::class") {
		return &fir.GetClassCall{Type: fir.NewUserTypeRef(t, p.loc), Location: p.loc}, nil
	}
	p.pos = after
	return &fir.PropertyAccessExpression{Qualifier: q.Parent(), Callee: q.ShortName(), Location: p.loc}, nil
}
