// Package camera holds the viewer's camera state: perspective settings, the
// view controller with its discrete presets and continuous orbit/pan/zoom,
// and the matrices the renderer consumes. Nothing here touches the scene
// registry; the controller operates purely on camera state.
package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/spinelab/vertview/common"
)

// Preset identifies one of the discrete camera viewpoints.
type Preset int

const (
	// Preset3D is the default isometric three-quarter view.
	Preset3D Preset = iota
	// PresetFront looks down the +Z axis.
	PresetFront
	// PresetSide looks down the +X axis.
	PresetSide
	// PresetTop looks down the +Y axis.
	PresetTop
)

// String returns the preset name as shown on UI buttons.
func (p Preset) String() string {
	switch p {
	case Preset3D:
		return "3d"
	case PresetFront:
		return "front"
	case PresetSide:
		return "side"
	case PresetTop:
		return "top"
	default:
		return "unknown"
	}
}

// topElevationMargin keeps the top preset slightly off the pole so the
// look-at basis with a world-up of +Y stays well defined.
const topElevationMargin = 0.05

// controller is the implementation of the Controller interface.
type controller struct {
	mu *sync.Mutex

	target common.Vec3

	// Spherical coordinates of the orbit position around the target.
	radius    float32
	azimuth   float32
	elevation float32

	// panOffset is applied on top of the orbit position. Presets clear it.
	panOffset common.Vec3

	defaultRadius float32
	minRadius     float32
	maxRadius     float32

	orbitSensitivity float32
	panSpeed         float32
	zoomSpeed        float32
}

// Controller is the view controller: discrete presets plus continuous
// orbit, pan and zoom driven by raw pointer deltas.
type Controller interface {
	// Position retrieves the current camera position.
	//
	// Returns:
	//   - common.Vec3: the world-space camera position
	Position() common.Vec3

	// Target retrieves the current look-at target.
	//
	// Returns:
	//   - common.Vec3: the world-space target
	Target() common.Vec3

	// ApplyPreset snaps the camera to a discrete viewpoint at the default
	// distance, looking at the origin. Any accumulated pan is cleared.
	//
	// Parameters:
	//   - p: the preset to apply
	ApplyPreset(p Preset)

	// Orbit accumulates angular deltas and recomputes the position on a
	// sphere of constant radius around the target. Elevation is clamped
	// short of the poles.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta
	Orbit(dx, dy float32)

	// Pan offsets the camera position directly along its local right and up
	// axes. The target is left in place.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta
	Pan(dx, dy float32)

	// Zoom scales the camera position along its own direction from the
	// target. Positive deltas move closer. The resulting distance is
	// clamped to the configured range.
	//
	// Parameters:
	//   - delta: scroll delta
	Zoom(delta float32)
}

var _ Controller = &controller{}

// NewController creates a view controller positioned at the default 3d
// preset.
//
// Parameters:
//   - opts: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(opts ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:               &sync.Mutex{},
		defaultRadius:    400.0,
		minRadius:        20.0,
		maxRadius:        2000.0,
		orbitSensitivity: 0.005,
		panSpeed:         0.5,
		zoomSpeed:        0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.applyPreset(Preset3D)
	return c
}

// applyPreset resets the spherical state for a preset. Caller must hold the
// mutex (or own the controller exclusively, as in the constructor).
func (c *controller) applyPreset(p Preset) {
	c.target = common.Vec3{}
	c.panOffset = common.Vec3{}
	c.radius = c.defaultRadius
	switch p {
	case PresetFront:
		c.azimuth = 0
		c.elevation = 0
	case PresetSide:
		c.azimuth = math32.Pi / 2
		c.elevation = 0
	case PresetTop:
		c.azimuth = 0
		c.elevation = math32.Pi/2 - topElevationMargin
	default:
		c.azimuth = math32.Pi / 4
		c.elevation = math32.Pi / 6
	}
}

// orbitPosition computes the position on the orbit sphere from the current
// spherical coordinates, before the pan offset. Caller must hold the mutex.
func (c *controller) orbitPosition() common.Vec3 {
	cosElev := math32.Cos(c.elevation)
	sinElev := math32.Sin(c.elevation)
	return common.Vec3{
		c.target[0] + c.radius*cosElev*math32.Sin(c.azimuth),
		c.target[1] + c.radius*sinElev,
		c.target[2] + c.radius*cosElev*math32.Cos(c.azimuth),
	}
}

// localAxes computes the camera's right and up axes consistent with a
// look-at view using a world up of +Y. Caller must hold the mutex.
func (c *controller) localAxes() (right, up common.Vec3) {
	backward := c.orbitPosition().Add(c.panOffset).Sub(c.target).Normalized()
	if backward == (common.Vec3{}) {
		return
	}
	right = common.Vec3{backward[2], 0, -backward[0]}.Normalized()
	if right == (common.Vec3{}) {
		return
	}
	up = backward.Cross(right)
	return
}

func (c *controller) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbitPosition().Add(c.panOffset)
}

func (c *controller) Target() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *controller) ApplyPreset(p Preset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyPreset(p)
}

func (c *controller) Orbit(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth -= dx * c.orbitSensitivity
	c.elevation += dy * c.orbitSensitivity
	limit := math32.Pi/2 - topElevationMargin
	if c.elevation > limit {
		c.elevation = limit
	}
	if c.elevation < -limit {
		c.elevation = -limit
	}
}

func (c *controller) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	right, up := c.localAxes()
	c.panOffset = c.panOffset.
		Add(right.Scale(-dx * c.panSpeed)).
		Add(up.Scale(dy * c.panSpeed))
}

func (c *controller) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	factor := 1.0 - delta*c.zoomSpeed
	if factor < 0.1 {
		factor = 0.1
	}
	radius := c.radius * factor
	if radius < c.minRadius {
		factor = c.minRadius / c.radius
	}
	if radius > c.maxRadius {
		factor = c.maxRadius / c.radius
	}
	c.radius *= factor
	c.panOffset = c.panOffset.Scale(factor)
}
