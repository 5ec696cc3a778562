package session

import "sync/atomic"

// ValidityToken guards views handed out over a session's declarations.
// Once invalidated it stays invalid.
type ValidityToken struct {
	invalid atomic.Bool
}

func NewValidityToken() *ValidityToken {
	return &ValidityToken{}
}

// IsValid is false for a nil token.
func (t *ValidityToken) IsValid() bool {
	return t != nil && !t.invalid.Load()
}

func (t *ValidityToken) Invalidate() {
	t.invalid.Store(true)
}
