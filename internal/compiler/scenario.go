package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/config"
	"github.com/AmrAfifiy/kotlin/internal/contracts"
	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/mdcase"
	"github.com/AmrAfifiy/kotlin/internal/session"
)

// Mismatch is an assertion whose expected lines differ from the run.
type Mismatch struct {
	Assertion mdcase.Assertion
	Got       []string
}

// ScenarioResult is the outcome of one scenario. Err is set when the
// fixture could not be loaded or an assertion could not be evaluated.
type ScenarioResult struct {
	Name       string
	Mismatches []Mismatch
	Err        error
}

func (r ScenarioResult) Passed() bool { return r.Err == nil && len(r.Mismatches) == 0 }

// RunScenarios extracts the scenarios of a Markdown document and runs each
// in its own session.
func RunScenarios(ctx context.Context, markdown []byte, cfg *config.Config) ([]ScenarioResult, error) {
	cases, err := mdcase.ExtractTestCases(markdown)
	if err != nil {
		return nil, err
	}
	results := make([]ScenarioResult, 0, len(cases))
	for _, tc := range cases {
		results = append(results, RunScenario(ctx, tc, cfg))
	}
	return results, nil
}

// RunScenario resolves the scenario fixture and checks every assertion.
func RunScenario(ctx context.Context, tc mdcase.TestCase, cfg *config.Config) ScenarioResult {
	res := ScenarioResult{Name: tc.Name}
	result := Compile(ctx, &Options{Code: tc.Fixture, Config: cfg, LogFormat: PLAIN})
	sess := result.Session()
	if sess == nil {
		res.Err = errors.New(strings.TrimSpace(result.Output))
		return res
	}

	for _, a := range tc.Assertions {
		got, err := evaluate(ctx, sess, a)
		if err != nil {
			res.Err = fmt.Errorf("line %d: %w", a.Line, err)
			return res
		}
		if !slices.Equal(a.Lines(), got) {
			res.Mismatches = append(res.Mismatches, Mismatch{Assertion: a, Got: got})
		}
	}
	return res
}

func evaluate(ctx context.Context, sess *session.Session, a mdcase.Assertion) ([]string, error) {
	switch a.Type {
	case mdcase.AssertionBinding:
		return Bindings(ctx, sess, a.Arg)
	case mdcase.AssertionClassIds:
		return ClassIds(ctx, sess, a.Arg)
	case mdcase.AssertionContract:
		return Contract(sess, a.Arg)
	case mdcase.AssertionDiagnostics:
		return DiagnosticCodes(sess), nil
	default:
		return nil, fmt.Errorf("unknown assertion %q", a.Type)
	}
}

// Contract renders the resolved contract of one function, or nothing when
// it has none.
func Contract(sess *session.Session, decl string) ([]string, error) {
	sym, err := lookup(sess, decl)
	if err != nil {
		return nil, err
	}
	fn, ok := sym.Fir().(*fir.SimpleFunction)
	if !ok {
		return nil, fmt.Errorf("%s is not a function", decl)
	}
	if fn.Contract() == nil {
		return nil, nil
	}
	return []string{contracts.RenderDescription(fn.Contract())}, nil
}

// DiagnosticCodes lists the code of every reported diagnostic, sorted.
func DiagnosticCodes(sess *session.Session) []string {
	var out []string
	for _, d := range sess.Diagnostics().Diagnostics() {
		out = append(out, d.Code)
	}
	sort.Strings(out)
	return out
}

// Report prints one line per scenario and the differing assertions of
// failed ones. It returns the number of failures.
func Report(results []ScenarioResult, w io.Writer) int {
	failed := 0
	for _, r := range results {
		if r.Passed() {
			colors.GREEN.Fprintf(w, "PASS %s\n", r.Name)
			continue
		}
		failed++
		colors.RED.Fprintf(w, "FAIL %s\n", r.Name)
		if r.Err != nil {
			fmt.Fprintf(w, "  %v\n", r.Err)
		}
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "  %s %s (line %d)\n", m.Assertion.Type, m.Assertion.Arg, m.Assertion.Line)
			fmt.Fprintf(w, "    want: %s\n", strings.Join(m.Assertion.Lines(), " | "))
			fmt.Fprintf(w, "    got:  %s\n", strings.Join(m.Got, " | "))
		}
	}
	return failed
}
