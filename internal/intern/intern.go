// Package intern provides a generic, concurrency-safe bidirectional map
// from hashable values to compact integer handles (§4.1). Every intern
// table in the core (strings, entities, types, permissions) is an
// instance of Table[V, H] rather than a hand-written copy, following the
// generic-arena style already used by the teacher compiler's ast.Arena.
package intern

import (
	"fortio.org/safecast"
	"sync"
)

// Handle is the underlying representation of every interned ID. Callers
// define a distinct named type (e.g. `type StringID intern.Handle`) so
// that handles from different tables cannot be confused at compile time.
type Handle = uint32

// Table interns values of type V, handing out handles of type H (a named
// type whose underlying representation is uint32). Handle 0 is always
// reserved so the zero value of H means "no handle".
type Table[V comparable, H ~uint32] struct {
	mu    sync.RWMutex
	byID  []V
	index map[V]H
}

// New creates an empty table. zero is the value stored at handle 0
// (never returned by Intern, but needed so byID[0] is well-formed).
func New[V comparable, H ~uint32](zero V) *Table[V, H] {
	return &Table[V, H]{
		byID:  []V{zero},
		index: map[V]H{zero: 0},
	}
}

// Intern assigns (or reuses) a stable handle for v. Concurrency-safe.
func (t *Table[V, H]) Intern(v V) H {
	t.mu.RLock()
	if id, ok := t.index[v]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[v]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(t.byID))
	if err != nil {
		panic("intern: table overflow")
	}
	id := H(n)
	t.byID = append(t.byID, v)
	t.index[v] = id
	return id
}

// Untern returns the value for a handle. Total: an out-of-range handle
// returns the zero value and false.
func (t *Table[V, H]) Untern(h H) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(h) < 0 || int(h) >= len(t.byID) {
		var zero V
		return zero, false
	}
	return t.byID[h], true
}

// MustUntern panics on an invalid handle.
func (t *Table[V, H]) MustUntern(h H) V {
	v, ok := t.Untern(h)
	if !ok {
		panic("intern: invalid handle")
	}
	return v
}

// Len returns the number of entries, including the reserved zero handle.
func (t *Table[V, H]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Handles returns a snapshot of every handle in insertion order
// (excluding the reserved zero handle).
func (t *Table[V, H]) Handles() []H {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]H, 0, len(t.byID)-1)
	for i := 1; i < len(t.byID); i++ {
		out = append(out, H(i))
	}
	return out
}
