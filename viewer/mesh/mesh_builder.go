package mesh

import "github.com/spinelab/vertview/common"

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithVisible is an option builder that sets the initial visibility flag.
// Meshes are visible by default.
//
// Parameters:
//   - v: the initial visibility
//
// Returns:
//   - MeshBuilderOption: a function that applies the visibility option to a mesh
func WithVisible(v bool) MeshBuilderOption {
	return func(m *mesh) {
		m.visible = v
	}
}

// WithOffset is an option builder that sets the initial world-space offset.
//
// Parameters:
//   - offset: the initial translation
//
// Returns:
//   - MeshBuilderOption: a function that applies the offset option to a mesh
func WithOffset(offset common.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.offset = offset
	}
}
