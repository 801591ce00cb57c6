// internal/infrastructure/state/store.go
package state

import (
	"context"
	"errors"
)

// Kinds of session state. Each kind is persisted under its own key so that
// clearing one never touches the other.
const (
	KindCart     = "cart"
	KindIdentity = "auth"
)

// ErrNoSession is returned when a session id is missing
var ErrNoSession = errors.New("session ID required")

// Store persists opaque per-session state documents
type Store interface {
	// Get returns the stored payload; found is false when nothing is stored
	Get(ctx context.Context, sessionID, kind string) (payload []byte, found bool, err error)
	Put(ctx context.Context, sessionID, kind string, payload []byte) error
	Delete(ctx context.Context, sessionID, kind string) error
}
