package annotations

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/phase"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// ErrInvalidToken is returned by a View used after its token was
// invalidated.
var ErrInvalidToken = errors.New("annotation view used after its validity token was invalidated")

// View is a read-only handle on one annotation of a declaration. It is only
// usable while the token it was created with stays valid.
type View struct {
	ann     fir.AnnotationUse
	sess    *session.Session
	token   *session.ValidityToken
	classId names.ClassId
	known   bool
}

// Annotations returns views over sym's annotations in declaration order.
// The symbol is resolved to TYPES first.
func Annotations(ctx context.Context, sess *session.Session, sym *fir.Symbol, token *session.ValidityToken) ([]*View, error) {
	if !token.IsValid() {
		return nil, ErrInvalidToken
	}
	if err := sess.EnsureResolved(ctx, sym, phase.Types); err != nil {
		return nil, fmt.Errorf("listing annotations of %s: %w", sym, err)
	}
	uses := sym.Fir().Annotations()
	views := make([]*View, 0, len(uses))
	for _, ann := range uses {
		id, ok := ClassIdOf(ctx, ann, sess)
		views = append(views, &View{ann: ann, sess: sess, token: token, classId: id, known: ok})
	}
	return views, nil
}

// ClassId is the annotation class, absent when it cannot be determined.
func (v *View) ClassId() (names.ClassId, bool, error) {
	if !v.token.IsValid() {
		return names.ClassId{}, false, ErrInvalidToken
	}
	return v.classId, v.known, nil
}

// Arguments binds the annotation's arguments.
func (v *View) Arguments(ctx context.Context) (map[string]fir.Expression, error) {
	if !v.token.IsValid() {
		return nil, ErrInvalidToken
	}
	return BindArguments(ctx, v.ann, v.sess), nil
}

// UseSiteTarget is the explicit target such as "field" or "get", if any.
func (v *View) UseSiteTarget() (string, error) {
	if !v.token.IsValid() {
		return "", ErrInvalidToken
	}
	return v.ann.Base().UseSiteTarget, nil
}

func (v *View) Source() *source.Location { return v.ann.Source() }
