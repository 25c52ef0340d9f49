package bridge

import (
	"fmt"
	"sync"
)

// Registry is the process-wide mapping from client-socket session id to its
// live bridge. It guarantees at most one bridge per session and
// exactly-once removal.
type Registry struct {
	mu      sync.RWMutex
	bridges map[string]*Bridge
}

func NewRegistry() *Registry {
	return &Registry{bridges: make(map[string]*Bridge)}
}

// Insert stores a bridge under its session id. A live entry for the same
// session is an invariant violation and is reported as an error rather
// than silently replaced.
func (r *Registry) Insert(sessionID string, b *Bridge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bridges[sessionID]; exists {
		return fmt.Errorf("bridge already registered for session %q", sessionID)
	}
	r.bridges[sessionID] = b
	return nil
}

// Lookup returns the bridge for the given session id, if any.
func (r *Registry) Lookup(sessionID string) (*Bridge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bridges[sessionID]
	return b, ok
}

// Remove deletes the entry for the session id and reports whether an entry
// was actually removed. Removing an absent session is a no-op, so the
// reader path and the socket-close path can both call it safely.
func (r *Registry) Remove(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bridges[sessionID]; !ok {
		return false
	}
	delete(r.bridges, sessionID)
	return true
}

// List returns a snapshot of all live bridges.
func (r *Registry) List() []*Bridge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Bridge, 0, len(r.bridges))
	for _, b := range r.bridges {
		out = append(out, b)
	}
	return out
}

// Len returns the number of live bridges.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bridges)
}

// CloseAll closes every live bridge. Used on shutdown.
func (r *Registry) CloseAll() {
	for _, b := range r.List() {
		b.Close()
	}
}
