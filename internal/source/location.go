package source

import "fmt"

// Position is a 1-based line/column point in a fixture or source file.
type Position struct {
	Line   int
	Column int
}

// Location represents a span of source with start and end positions.
type Location struct {
	Filename string
	Start    Position
	End      Position
}

// NewLocation creates a single-line location of the given width.
func NewLocation(filename string, line, column, width int) *Location {
	return &Location{
		Filename: filename,
		Start:    Position{Line: line, Column: column},
		End:      Position{Line: line, Column: column + width},
	}
}

// IsValid reports whether the location points at a real line.
func (l *Location) IsValid() bool {
	return l != nil && l.Start.Line > 0
}

// Contains checks if pos is within this location.
func (l *Location) Contains(pos Position) bool {
	if l.Start.Line > pos.Line || (l.Start.Line == pos.Line && l.Start.Column > pos.Column) {
		return false
	}
	if l.End.Line < pos.Line || (l.End.Line == pos.Line && l.End.Column < pos.Column) {
		return false
	}
	return true
}

func (l *Location) String() string {
	if !l.IsValid() {
		return "location(unknown)"
	}
	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Start.Line, l.Start.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Start.Line, l.Start.Column)
}
