// Package registry tracks the set of mesh entries currently in the scene.
// The registry is the single source of truth for what is drawn: renderers
// iterate it per frame, visibility toggles address entries by name, and a
// patient switch clears it wholesale.
package registry

import (
	"sort"
	"sync"

	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/viewer/mesh"
)

// registry is the implementation of the Registry interface.
type registry struct {
	mu      sync.RWMutex
	entries map[string]*mesh.Entry
	order   []string
}

// Registry owns the named mesh entries of the active scene.
type Registry interface {
	// Register inserts an entry under its name, replacing and releasing any
	// previous entry with the same name. Once Register returns the entry is
	// visible to concurrent iteration; there is no intermediate state.
	//
	// Parameters:
	//   - e: the entry to insert
	Register(e *mesh.Entry)

	// Get retrieves an entry by name.
	//
	// Parameters:
	//   - name: the entity name
	//
	// Returns:
	//   - *mesh.Entry: the entry or nil
	//   - bool: true if the name is registered
	Get(name string) (*mesh.Entry, bool)

	// SetVisible sets the visibility of a named entry. Unknown names are
	// ignored so UI toggles need not track which entities loaded.
	//
	// Parameters:
	//   - name: the entity name
	//   - v: the new visibility
	SetVisible(name string, v bool)

	// ForEachHandle calls fn for every mesh handle of every entry in
	// registration order. The registry lock is held for the duration, so fn
	// must not call back into the registry.
	//
	// Parameters:
	//   - fn: the callback receiving the owning entry name and the handle
	ForEachHandle(fn func(name string, h mesh.Handle))

	// Bounds retrieves the union of every entry's world-space bounds.
	//
	// Returns:
	//   - common.Bounds: the combined bounds, empty when nothing is registered
	Bounds() common.Bounds

	// Names retrieves the registered entity names in registration order.
	//
	// Returns:
	//   - []string: a fresh slice of names
	Names() []string

	// Len retrieves the number of registered entries.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// Clear removes every entry and releases its GPU resources. Clearing an
	// empty registry is a no-op.
	Clear()
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry: the constructed registry
func NewRegistry() Registry {
	return &registry{
		entries: make(map[string]*mesh.Entry),
	}
}

func (r *registry) Register(e *mesh.Entry) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[e.Name()]; ok {
		prev.Release()
		r.entries[e.Name()] = e
		return
	}
	r.entries[e.Name()] = e
	r.order = append(r.order, e.Name())
}

func (r *registry) Get(name string) (*mesh.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

func (r *registry) SetVisible(name string, v bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		e.SetVisible(v)
	}
}

func (r *registry) ForEachHandle(fn func(name string, h mesh.Handle)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		e := r.entries[name]
		for _, h := range e.Handles() {
			fn(name, h)
		}
	}
}

func (r *registry) Bounds() common.Bounds {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b := common.EmptyBounds()
	for _, e := range r.entries {
		b.Union(e.Bounds())
	}
	return b
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.entries[name].Release()
		delete(r.entries, name)
	}
	r.order = r.order[:0]
}
