package mesh

import (
	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/viewer/provider"
)

// Handle pairs a mesh with the difference part it represents. Part is empty
// for single-mesh entries.
type Handle struct {
	Part provider.Part
	Mesh Mesh
}

// Entry is the registry unit: one named entity owning one mesh in raw and
// cleaned modes, or up to two part meshes in difference mode. All display
// operations fan out to every owned mesh so an entity toggles as a unit.
type Entry struct {
	name    string
	handles []Handle
}

// NewSingleEntry creates an entry owning one mesh. Panics if m is nil.
//
// Parameters:
//   - name: the entity name
//   - m: the entity's mesh
//
// Returns:
//   - *Entry: the constructed entry
func NewSingleEntry(name string, m Mesh) *Entry {
	if m == nil {
		panic("mesh: entry mesh is required")
	}
	return &Entry{
		name:    name,
		handles: []Handle{{Mesh: m}},
	}
}

// NewPartsEntry creates a difference-mode entry from its part meshes. Either
// part may be nil when the entity had no geometry change of that kind, but
// at least one must be present. Parts are ordered removed before added.
//
// Parameters:
//   - name: the entity name
//   - removed: the removed-geometry mesh, or nil
//   - added: the added-geometry mesh, or nil
//
// Returns:
//   - *Entry: the constructed entry
func NewPartsEntry(name string, removed, added Mesh) *Entry {
	e := &Entry{name: name}
	if removed != nil {
		e.handles = append(e.handles, Handle{Part: provider.PartRemoved, Mesh: removed})
	}
	if added != nil {
		e.handles = append(e.handles, Handle{Part: provider.PartAdded, Mesh: added})
	}
	if len(e.handles) == 0 {
		panic("mesh: parts entry requires at least one part")
	}
	return e
}

// Name retrieves the entity name.
//
// Returns:
//   - string: the entity name
func (e *Entry) Name() string {
	return e.name
}

// Handles retrieves the entry's meshes in stable order.
//
// Returns:
//   - []Handle: the owned mesh handles
func (e *Entry) Handles() []Handle {
	return e.handles
}

// SetVisible applies one visibility flag to every owned mesh.
//
// Parameters:
//   - v: the new visibility
func (e *Entry) SetVisible(v bool) {
	for _, h := range e.handles {
		h.Mesh.SetVisible(v)
	}
}

// Visible reports whether the entry is shown. Parts always share a flag, so
// the first mesh answers for all.
//
// Returns:
//   - bool: the visibility flag
func (e *Entry) Visible() bool {
	return e.handles[0].Mesh.Visible()
}

// Bounds retrieves the union of all owned mesh bounds in world space.
//
// Returns:
//   - common.Bounds: the combined bounds
func (e *Entry) Bounds() common.Bounds {
	b := common.EmptyBounds()
	for _, h := range e.handles {
		b.Union(h.Mesh.Bounds())
	}
	return b
}

// Translate shifts every owned mesh by the same delta.
//
// Parameters:
//   - delta: the translation to add
func (e *Entry) Translate(delta common.Vec3) {
	for _, h := range e.handles {
		h.Mesh.Translate(delta)
	}
}

// Release frees the GPU resources of every owned mesh.
func (e *Entry) Release() {
	for _, h := range e.handles {
		h.Mesh.Release()
	}
}
