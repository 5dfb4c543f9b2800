package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/spinelab/vertview/common"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller Controller
}

// Camera holds perspective settings and computes view/projection matrices
// from the attached Controller. Update should be called once per frame
// before the matrices are read.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes matrices. Called on
	// window resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Position retrieves the controller's current camera position.
	//
	// Returns:
	//   - common.Vec3: the world-space camera position
	Position() common.Vec3

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix
	// as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the attached view controller.
	//
	// Returns:
	//   - Controller: the attached controller
	Controller() Controller

	// Update reads position/target from the controller and recomputes all
	// matrices. Should be called once per frame.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with default perspective settings and the given
// options. A controller is created automatically unless one is supplied via
// WithController.
//
// Parameters:
//   - opts: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    45.0 * (math32.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    5000.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.controller == nil {
		c.controller = NewController()
	}
	c.updateMatrices()
	return c
}

// updateMatrices recomputes view, projection and view-projection from the
// current controller and perspective state. Caller must hold the mutex (or
// own the camera exclusively, as in the constructor).
func (c *cameraImpl) updateMatrices() {
	pos := c.controller.Position()
	target := c.controller.Target()

	common.LookAt(c.viewMatrix[:],
		pos[0], pos[1], pos[2],
		target[0], target[1], target[2],
		0, 1, 0)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
		c.updateMatrices()
	}
}

func (c *cameraImpl) Position() common.Vec3 {
	return c.controller.Position()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() Controller {
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}
