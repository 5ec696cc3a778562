// Package mdcase extracts resolution scenarios from Markdown documents.
//
// A scenario starts at a heading "Test: <name>" and owns the fenced code
// blocks that follow it: exactly one `fixture` block holding a YAML fixture
// and one or more assertion blocks. The info string of an assertion block
// may carry an argument after the language, e.g. "binding lib/Foo".
package mdcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const InputFixture = "fixture"

// AssertionType is the language of an assertion fence
type AssertionType string

const (
	AssertionBinding     AssertionType = "binding"
	AssertionClassIds    AssertionType = "classids"
	AssertionContract    AssertionType = "contract"
	AssertionDiagnostics AssertionType = "diagnostics"
)

// Assertion is one assertion fence of a scenario.
type Assertion struct {
	Type    AssertionType
	Arg     string // text after the language in the info string
	Content string
	Line    int
}

// TestCase is one scenario.
type TestCase struct {
	Name       string
	Fixture    string
	Assertions []Assertion
}

// Lines splits the assertion content into trimmed, non-empty lines.
func (a Assertion) Lines() []string {
	var out []string
	for _, l := range strings.Split(a.Content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ExtractTestCases parses markdown and returns its scenarios in document
// order.
func ExtractTestCases(markdown []byte) ([]TestCase, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := textOf(n, markdown)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdown))
			line := lineOf(n, markdown)
			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
				}
				return ast.WalkContinue, nil
			}

			content := strings.TrimRight(blockContent(n, markdown), "\n")
			switch {
			case language == InputFixture:
				if current.Fixture != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple fixture fences in test '%s'", line, current.Name)
				}
				current.Fixture = content
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Arg:     infoArg(n, markdown),
					Content: content,
					Line:    line,
				})
			case language != "":
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func isAssertion(language string) bool {
	switch AssertionType(language) {
	case AssertionBinding, AssertionClassIds, AssertionContract, AssertionDiagnostics:
		return true
	}
	return false
}

func validate(tc *TestCase) error {
	if tc.Fixture == "" {
		return fmt.Errorf("test '%s' has no fixture fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

func textOf(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// infoArg returns the info string without its leading language word.
func infoArg(block *ast.FencedCodeBlock, source []byte) string {
	if block.Info == nil {
		return ""
	}
	info := strings.TrimSpace(string(block.Info.Segment.Value(source)))
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		return strings.TrimSpace(info[i+1:])
	}
	return ""
}

func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	line := 1
	for i := 0; i < start && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}
