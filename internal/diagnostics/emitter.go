package diagnostics

import (
	"fmt"
	"io"

	"github.com/AmrAfifiy/kotlin/colors"
)

const (
	analysisFailedMsg   = "\nAnalysis failed with %d error(s)"
	andWarningMsg       = " and %d warning(s)"
	succeededWithWarn   = "\nAnalysis succeeded with %d warning(s)\n"
	locationArrowFormat = "  --> %s\n"
)

// Emitter renders diagnostics as colored text.
type Emitter struct {
	writer io.Writer
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

func severityColor(s Severity) colors.COLOR {
	switch s {
	case Error:
		return colors.RED
	case Warning:
		return colors.YELLOW
	case Info:
		return colors.BLUE
	default:
		return colors.GREY
	}
}

// Emit writes one diagnostic:
//
//	error[A0001]: unresolved annotation: Foo
//	  --> lib.yaml:4:7 no annotation class with this name
//	  = note: ...
//	  = help: ...
func (e *Emitter) Emit(d *Diagnostic) {
	header := d.Severity.String()
	if d.Code != "" {
		header += "[" + d.Code + "]"
	}
	fmt.Fprintf(e.writer, "%s: %s\n", severityColor(d.Severity).Sprint(header), d.Message)

	for _, label := range d.Labels {
		where := label.Location.String()
		if label.Message != "" {
			where += " " + label.Message
		}
		if label.Style == Primary {
			fmt.Fprintf(e.writer, locationArrowFormat, where)
		} else {
			fmt.Fprintf(e.writer, "  %s %s\n", colors.GREY.Sprint("---"), where)
		}
	}
	for _, note := range d.Notes {
		fmt.Fprintf(e.writer, "  = %s %s\n", colors.CYAN.Sprint("note:"), note.Message)
	}
	if d.Help != "" {
		fmt.Fprintf(e.writer, "  = %s %s\n", colors.GREEN.Sprint("help:"), d.Help)
	}
}

// Summary writes the closing error/warning count line.
func (e *Emitter) Summary(errors, warnings int) {
	if errors > 0 {
		colors.RED.Fprintf(e.writer, analysisFailedMsg, errors)
		if warnings > 0 {
			colors.RED.Fprintf(e.writer, andWarningMsg, warnings)
		}
		fmt.Fprintln(e.writer)
	} else if warnings > 0 {
		colors.ORANGE.Fprintf(e.writer, succeededWithWarn, warnings)
	}
}
