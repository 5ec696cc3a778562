// Package colors wraps ANSI escape sequences used by the debug tracer, the
// diagnostic emitter and the CLI.
package colors

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// COLOR is an ANSI SGR escape sequence.
type COLOR string

const (
	RESET  COLOR = "\033[0m"
	BOLD   COLOR = "\033[1m"
	RED    COLOR = "\033[31m"
	GREEN  COLOR = "\033[32m"
	YELLOW COLOR = "\033[33m"
	BLUE   COLOR = "\033[34m"
	PURPLE COLOR = "\033[35m"
	CYAN   COLOR = "\033[36m"
	GREY   COLOR = "\033[90m"
	ORANGE COLOR = "\033[38;5;208m"
)

var disabled atomic.Bool

// SetEnabled toggles color output process-wide. Disabled colors print the
// text unchanged, which is what tests and piped output want.
func SetEnabled(enabled bool) {
	disabled.Store(!enabled)
}

// Enabled reports whether escape sequences are emitted.
func Enabled() bool {
	return !disabled.Load()
}

func (c COLOR) wrap(s string) string {
	if disabled.Load() {
		return s
	}
	return string(c) + s + string(RESET)
}

func (c COLOR) Sprintf(format string, args ...any) string {
	return c.wrap(fmt.Sprintf(format, args...))
}

func (c COLOR) Sprint(args ...any) string {
	return c.wrap(fmt.Sprint(args...))
}

func (c COLOR) Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, c.Sprintf(format, args...))
}

func (c COLOR) Fprintln(w io.Writer, args ...any) {
	fmt.Fprintln(w, c.wrap(strings.TrimSuffix(fmt.Sprintln(args...), "\n")))
}

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z') {
				inEscape = false
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
