package diagnostics

import (
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Label represents a labeled section of code in a diagnostic
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main error location
	Secondary                   // Additional context
)

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic is a reportable problem. Diagnostics double as the payload of
// erroneous FIR nodes and contract predicates, so they must stay immutable
// once attached to a node.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // e.g. "A0001"
	Labels   []Label
	Notes    []Note
	Help     string
}

func newDiagnostic(severity Severity, message string) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return newDiagnostic(Error, message)
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return newDiagnostic(Warning, message)
}

// NewInfo creates a new info diagnostic
func NewInfo(message string) *Diagnostic {
	return newDiagnostic(Info, message)
}

// WithCode sets the diagnostic code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithPrimaryLabel adds the primary location. A second primary label is
// ignored; the primary label is always kept first.
func (d *Diagnostic) WithPrimaryLabel(loc *source.Location, message string) *Diagnostic {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return d
		}
	}
	d.Labels = append([]Label{{Location: loc, Message: message, Style: Primary}}, d.Labels...)
	return d
}

// WithSecondaryLabel adds a context label. Panics without a primary label,
// which is a programming error in the builder chain.
func (d *Diagnostic) WithSecondaryLabel(loc *source.Location, message string) *Diagnostic {
	if !d.hasPrimary() {
		panic("cannot add secondary label without primary label; call WithPrimaryLabel first")
	}
	d.Labels = append(d.Labels, Label{Location: loc, Message: message, Style: Secondary})
	return d
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets a suggestion for fixing the problem
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// PrimaryLocation returns the location of the primary label, if any.
func (d *Diagnostic) PrimaryLocation() *source.Location {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label.Location
		}
	}
	return nil
}

func (d *Diagnostic) hasPrimary() bool {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return true
		}
	}
	return false
}

func (d *Diagnostic) String() string {
	if d.Code != "" {
		return d.Severity.String() + "[" + d.Code + "]: " + d.Message
	}
	return d.Severity.String() + ": " + d.Message
}
