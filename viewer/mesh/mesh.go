// Package mesh holds CPU-side mesh state for the viewer: geometry converted
// into GPU-ready vertex streams, per-mesh display attributes, and the handle
// to the GPU buffers once uploaded. Meshes are value holders; uploading and
// drawing is the renderer's job.
package mesh

import (
	"sync"

	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/render"
	"github.com/spinelab/vertview/viewer/provider"
)

// Shared surface material constants. Every mesh in the scene renders with
// the same lighting response; only the base color differs.
const (
	// SpecularIntensity is the strength of the specular highlight.
	SpecularIntensity float32 = 0.3
	// Shininess is the specular exponent.
	Shininess float32 = 30.0
)

// VertexStride is the byte size of one interleaved vertex: position (3x f32)
// followed by normal (3x f32).
const VertexStride = 24

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu sync.RWMutex

	name       string
	color      [3]float32
	visible    bool
	offset     common.Vec3
	bounds     common.Bounds
	vertexData []byte
	indexData  []byte
	indexCount int
	gpu        render.MeshBuffers
	released   bool
}

// Mesh is a single renderable surface with its display state.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Color retrieves the base RGB color in linear [0,1] components.
	//
	// Returns:
	//   - [3]float32: the base color
	Color() [3]float32

	// Visible reports whether the mesh should be drawn.
	//
	// Returns:
	//   - bool: the visibility flag
	Visible() bool

	// SetVisible sets the visibility flag. Hidden meshes keep their GPU
	// resources and geometry.
	//
	// Parameters:
	//   - v: the new visibility
	SetVisible(v bool)

	// Offset retrieves the accumulated world-space translation applied on
	// top of the source geometry.
	//
	// Returns:
	//   - common.Vec3: the current offset
	Offset() common.Vec3

	// Translate adds a delta to the mesh offset. Geometry data is never
	// rewritten; the offset is applied per draw.
	//
	// Parameters:
	//   - delta: the translation to add
	Translate(delta common.Vec3)

	// Bounds retrieves the axis-aligned bounds of the mesh in world space,
	// with the current offset applied.
	//
	// Returns:
	//   - common.Bounds: the world-space bounds
	Bounds() common.Bounds

	// VertexData retrieves the interleaved position+normal vertex stream.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData retrieves the uint32 triangle index stream.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount retrieves the number of indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// GPU retrieves the uploaded GPU buffers, or nil before upload.
	//
	// Returns:
	//   - render.MeshBuffers: the GPU buffer handle or nil
	GPU() render.MeshBuffers

	// SetGPU associates uploaded GPU buffers with this mesh. Setting buffers
	// on a released mesh releases them immediately.
	//
	// Parameters:
	//   - b: the GPU buffer handle
	SetGPU(b render.MeshBuffers)

	// Release frees the GPU buffers. Safe to call more than once; only the
	// first call releases.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from a validated payload, computing smooth vertex
// normals and the interleaved GPU vertex stream up front. Panics if name is
// empty or payload is nil.
//
// Parameters:
//   - name: the mesh identifier
//   - payload: the validated source geometry
//   - color: the base RGB color
//   - opts: optional configuration such as WithVisible
//
// Returns:
//   - Mesh: the constructed mesh
func NewMesh(name string, payload *provider.MeshPayload, color [3]float32, opts ...MeshBuilderOption) Mesh {
	if name == "" {
		panic("mesh: name is required")
	}
	if payload == nil {
		panic("mesh: payload is required")
	}

	normals := ComputeVertexNormals(payload.Vertices, payload.Faces)

	interleaved := make([]float32, 0, len(payload.Vertices)*6)
	bounds := common.EmptyBounds()
	for i, v := range payload.Vertices {
		interleaved = append(interleaved, v[0], v[1], v[2])
		interleaved = append(interleaved, normals[i][0], normals[i][1], normals[i][2])
		bounds.ExtendPoint(common.Vec3{v[0], v[1], v[2]})
	}

	indices := make([]uint32, 0, len(payload.Faces)*3)
	for _, f := range payload.Faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	m := &mesh{
		name:       name,
		color:      color,
		visible:    true,
		bounds:     bounds,
		vertexData: common.SliceToBytes(interleaved),
		indexData:  common.SliceToBytes(indices),
		indexCount: len(indices),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Color() [3]float32 {
	return m.color
}

func (m *mesh) Visible() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible
}

func (m *mesh) SetVisible(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = v
}

func (m *mesh) Offset() common.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offset
}

func (m *mesh) Translate(delta common.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = m.offset.Add(delta)
}

func (m *mesh) Bounds() common.Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds.Translated(m.offset)
}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) IndexData() []byte {
	return m.indexData
}

func (m *mesh) IndexCount() int {
	return m.indexCount
}

func (m *mesh) GPU() render.MeshBuffers {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gpu
}

func (m *mesh) SetGPU(b render.MeshBuffers) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		if b != nil {
			b.Release()
		}
		return
	}
	m.gpu = b
}

func (m *mesh) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	m.released = true
	if m.gpu != nil {
		m.gpu.Release()
		m.gpu = nil
	}
}
