package fir

import (
	"strings"
	"sync/atomic"

	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/source"
	"github.com/AmrAfifiy/kotlin/internal/types"
)

// UserType is a type as written: a possibly qualified name with type
// arguments and a nullability mark.
type UserType struct {
	Qualifier names.FqName
	Arguments []*UserType
	Nullable  bool
}

func (u *UserType) String() string {
	var b strings.Builder
	b.WriteString(string(u.Qualifier))
	if len(u.Arguments) > 0 {
		args := make([]string, len(u.Arguments))
		for i, a := range u.Arguments {
			args[i] = a.String()
		}
		b.WriteByte('<')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte('>')
	}
	if u.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

type coneHolder struct {
	t types.ConeType
}

// TypeRef is a reference to a type from a declaration. It starts out as a
// UserType and receives its cone type during the TYPES phase.
type TypeRef struct {
	User     *UserType
	Location *source.Location

	cone atomic.Value // coneHolder
}

// NewUserTypeRef creates an unresolved reference.
func NewUserTypeRef(user *UserType, loc *source.Location) *TypeRef {
	return &TypeRef{User: user, Location: loc}
}

// NewResolvedTypeRef creates a reference that is already resolved.
func NewResolvedTypeRef(t types.ConeType) *TypeRef {
	r := &TypeRef{}
	r.SetCone(t)
	return r
}

// Cone returns the resolved type, or nil if the reference has not been
// resolved.
func (r *TypeRef) Cone() types.ConeType {
	if r == nil {
		return nil
	}
	h, ok := r.cone.Load().(coneHolder)
	if !ok {
		return nil
	}
	return h.t
}

// SetCone records the resolved type.
func (r *TypeRef) SetCone(t types.ConeType) {
	r.cone.Store(coneHolder{t: t})
}

// IsResolved reports whether SetCone has been called.
func (r *TypeRef) IsResolved() bool {
	if r == nil {
		return false
	}
	_, ok := r.cone.Load().(coneHolder)
	return ok
}

func (r *TypeRef) String() string {
	if r == nil {
		return "<no type>"
	}
	if t := r.Cone(); t != nil {
		return t.String()
	}
	if r.User != nil {
		return r.User.String()
	}
	return "<no type>"
}
