// Package render is the GPU collaborator for the viewer: one fixed mesh
// pipeline over a WebGPU backend. The scene layer owns what to draw; this
// package owns how a mesh reaches the screen.
package render

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spinelab/vertview/common"
)

// MeshBuffers is the releasable handle to one mesh's GPU resources.
type MeshBuffers interface {
	// IndexCount retrieves the number of indices in the index buffer.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Release frees the GPU buffers and bind group. Safe to call more than
	// once; only the first call releases.
	Release()
}

// wgpuMeshBuffers is the WebGPU implementation of MeshBuffers.
type wgpuMeshBuffers struct {
	mu sync.Mutex

	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	indexCount    int
	released      bool
}

var _ MeshBuffers = &wgpuMeshBuffers{}

func (m *wgpuMeshBuffers) IndexCount() int {
	return m.indexCount
}

func (m *wgpuMeshBuffers) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	m.released = true
	m.bindGroup.Release()
	m.uniformBuffer.Release()
	m.indexBuffer.Release()
	m.vertexBuffer.Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
}

// Renderer is the drawing surface consumed by the scene layer. It owns the
// GPU device, the surface configuration and the single mesh pipeline, and
// exposes a per-frame begin/draw/end/present cycle.
type Renderer interface {
	// Resize reconfigures the surface and its attachments for a new size.
	// Must be called once before the first frame and on every window resize.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// InitMeshBuffers uploads mesh geometry and creates the per-mesh GPU
	// resources. Safe to call from loader goroutines.
	//
	// Parameters:
	//   - label: the debug label for the created resources
	//   - vertexData: the interleaved position+normal vertex bytes
	//   - indexData: the uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - MeshBuffers: the releasable GPU resource handle
	//   - error: an error if buffer creation fails
	InitMeshBuffers(label string, vertexData, indexData []byte, indexCount int) (MeshBuffers, error)

	// SetCamera uploads the camera state used by every draw of the next
	// frame.
	//
	// Parameters:
	//   - viewProjection: the combined view-projection matrix (column-major)
	//   - position: the world-space camera position
	SetCamera(viewProjection [16]float32, position common.Vec3)

	// BeginFrame starts a new frame's render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawMesh encodes one mesh draw in the current frame.
	//
	// Parameters:
	//   - buffers: the mesh's GPU resources
	//   - offset: the world-space offset applied in the vertex stage
	//   - color: the base RGB color
	//   - specularIntensity: the specular highlight strength
	//   - shininess: the specular exponent
	DrawMesh(buffers MeshBuffers, offset common.Vec3, color [3]float32, specularIntensity, shininess float32)

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present shows the submitted frame on the surface.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface. The surface must
// outlive the renderer. Panics if surfaceDescriptor is nil or GPU setup
// fails; a viewer cannot run without a device.
//
// Parameters:
//   - surfaceDescriptor: the windowing system's surface descriptor
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - opts: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if pipeline creation fails
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, opts ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		panic("render: surface descriptor is required")
	}
	r := &renderer{
		backendType: BackendTypeWGPU,
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.backend = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.sampleCount)
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(width, height)
	if err := r.backend.InitPipeline(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) InitMeshBuffers(label string, vertexData, indexData []byte, indexCount int) (MeshBuffers, error) {
	return r.backend.InitMeshBuffers(label, vertexData, indexData, indexCount)
}

func (r *renderer) SetCamera(viewProjection [16]float32, position common.Vec3) {
	r.backend.WriteCamera(cameraUniform{
		ViewProjection: viewProjection,
		Position:       position,
	})
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawMesh(buffers MeshBuffers, offset common.Vec3, color [3]float32, specularIntensity, shininess float32) {
	r.backend.DrawCall(buffers, meshUniform{
		Offset: offset,
		Color:  [4]float32{color[0], color[1], color[2], specularIntensity},
		Params: [4]float32{shininess, 0, 0, 0},
	})
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
