// Package names holds identifiers and fully qualified class identities.
package names

import (
	"strings"
)

// Name is a single identifier. Special names are enclosed in angle brackets.
type Name string

const (
	Init   Name = "<init>"
	NoName Name = "<no name>"
)

// IsSpecial reports whether n is a compiler-generated name.
func (n Name) IsSpecial() bool {
	return strings.HasPrefix(string(n), "<")
}

func (n Name) String() string { return string(n) }

// FqName is a dot-separated qualified name. The zero value is the root.
type FqName string

// Root is the empty package.
const Root FqName = ""

// NewFqName joins segments with dots.
func NewFqName(segments ...string) FqName {
	return FqName(strings.Join(segments, "."))
}

// IsRoot reports whether f is the root package.
func (f FqName) IsRoot() bool { return f == Root }

// Segments splits f into its identifiers.
func (f FqName) Segments() []Name {
	if f.IsRoot() {
		return nil
	}
	parts := strings.Split(string(f), ".")
	out := make([]Name, len(parts))
	for i, p := range parts {
		out[i] = Name(p)
	}
	return out
}

// Child appends one segment.
func (f FqName) Child(name Name) FqName {
	if f.IsRoot() {
		return FqName(name)
	}
	return FqName(string(f) + "." + string(name))
}

// ShortName returns the last segment.
func (f FqName) ShortName() Name {
	if i := strings.LastIndexByte(string(f), '.'); i >= 0 {
		return Name(f[i+1:])
	}
	return Name(f)
}

// Parent drops the last segment.
func (f FqName) Parent() FqName {
	if i := strings.LastIndexByte(string(f), '.'); i >= 0 {
		return f[:i]
	}
	return Root
}

func (f FqName) String() string { return string(f) }

// ClassId identifies a class independently of type aliases and imports.
// It is comparable, so it can be used as a map key and compared with ==.
type ClassId struct {
	Package  FqName
	Relative FqName // Outer.Inner
	Local    bool
}

// NewClassId builds a top-level or nested class id.
func NewClassId(pkg FqName, relative FqName) ClassId {
	return ClassId{Package: pkg, Relative: relative}
}

// TopLevel builds a class id for a top-level class in pkg.
func TopLevel(pkg FqName, name Name) ClassId {
	return ClassId{Package: pkg, Relative: FqName(name)}
}

// ParseClassId parses the canonical form "a/b/Outer.Inner". A leading "."
// marks a local class.
func ParseClassId(s string) ClassId {
	local := strings.HasPrefix(s, ".")
	s = strings.TrimPrefix(s, ".")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return ClassId{
			Package:  FqName(strings.ReplaceAll(s[:i], "/", ".")),
			Relative: FqName(s[i+1:]),
			Local:    local,
		}
	}
	return ClassId{Relative: FqName(s), Local: local}
}

// IsZero reports whether id is the zero value.
func (id ClassId) IsZero() bool {
	return id.Package.IsRoot() && id.Relative.IsRoot()
}

// ShortClassName is the simple name of the innermost class.
func (id ClassId) ShortClassName() Name {
	return id.Relative.ShortName()
}

// IsNested reports whether the class is nested in another class.
func (id ClassId) IsNested() bool {
	return strings.Contains(string(id.Relative), ".")
}

// Outer returns the id of the enclosing class of a nested class.
func (id ClassId) Outer() (ClassId, bool) {
	if !id.IsNested() {
		return ClassId{}, false
	}
	return ClassId{Package: id.Package, Relative: id.Relative.Parent(), Local: id.Local}, true
}

// Nested returns the id of a class nested in id.
func (id ClassId) Nested(name Name) ClassId {
	return ClassId{Package: id.Package, Relative: id.Relative.Child(name), Local: id.Local}
}

// FqName returns the dot-separated fully qualified name.
func (id ClassId) FqName() FqName {
	if id.Package.IsRoot() {
		return id.Relative
	}
	return FqName(string(id.Package) + "." + string(id.Relative))
}

// String returns the canonical "a/b/Outer.Inner" form.
func (id ClassId) String() string {
	var b strings.Builder
	if id.Local {
		b.WriteByte('.')
	}
	if !id.Package.IsRoot() {
		b.WriteString(strings.ReplaceAll(string(id.Package), ".", "/"))
		b.WriteByte('/')
	}
	b.WriteString(string(id.Relative))
	return b.String()
}
