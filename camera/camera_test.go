package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/spinelab/vertview/common"
)

func TestPresets(t *testing.T) {
	c := NewController(WithDefaultDistance(100))

	c.ApplyPreset(PresetFront)
	assert.InDelta(t, 0, c.Position()[0], 1e-4)
	assert.InDelta(t, 0, c.Position()[1], 1e-4)
	assert.InDelta(t, 100, c.Position()[2], 1e-4)
	assert.Equal(t, common.Vec3{}, c.Target())

	c.ApplyPreset(PresetSide)
	assert.InDelta(t, 100, c.Position()[0], 1e-4)
	assert.InDelta(t, 0, c.Position()[2], 1e-4)

	c.ApplyPreset(PresetTop)
	assert.Greater(t, c.Position()[1], float32(99))
	assert.InDelta(t, 100, c.Position().Length(), 1e-3)

	c.ApplyPreset(Preset3D)
	assert.InDelta(t, 100, c.Position().Length(), 1e-3)
	assert.Greater(t, c.Position()[1], float32(0))
}

func TestOrbitKeepsRadius(t *testing.T) {
	c := NewController(WithDefaultDistance(100))

	for i := 0; i < 50; i++ {
		c.Orbit(7, -3)
	}
	assert.InDelta(t, 100, c.Position().Length(), 1e-3)
}

func TestOrbitElevationClamped(t *testing.T) {
	c := NewController(WithDefaultDistance(100))

	// Drive elevation far past the pole; position must never flip over.
	for i := 0; i < 5000; i++ {
		c.Orbit(0, 10)
	}
	pos := c.Position()
	assert.Less(t, pos[1], float32(100))
	assert.Greater(t, pos[1], float32(90))
}

func TestPanOffsetsPositionOnly(t *testing.T) {
	c := NewController(WithDefaultDistance(100))
	c.ApplyPreset(PresetFront)

	before := c.Position()
	c.Pan(10, 0)
	after := c.Position()

	assert.NotEqual(t, before, after)
	assert.Equal(t, common.Vec3{}, c.Target())
	// Front view pans only in the screen plane.
	assert.InDelta(t, before[2], after[2], 1e-4)
}

func TestZoomScalesAlongDirection(t *testing.T) {
	c := NewController(WithDefaultDistance(100), WithDistanceRange(10, 1000))
	c.ApplyPreset(PresetFront)

	c.Zoom(1)
	pos := c.Position()
	assert.InDelta(t, 0, pos[0], 1e-4)
	assert.Less(t, pos[2], float32(100))

	// Zooming out far past the clamp stops at the max distance.
	for i := 0; i < 200; i++ {
		c.Zoom(-1)
	}
	assert.InDelta(t, 1000, c.Position().Length(), 1e-2)

	// Zooming in far past the clamp stops at the min distance.
	for i := 0; i < 200; i++ {
		c.Zoom(1)
	}
	assert.InDelta(t, 10, c.Position().Length(), 1e-2)
}

func TestPresetClearsPan(t *testing.T) {
	c := NewController(WithDefaultDistance(100))
	c.Pan(50, 20)
	c.ApplyPreset(PresetFront)
	assert.InDelta(t, 100, c.Position().Length(), 1e-3)
}

func TestCameraMatrices(t *testing.T) {
	ctrl := NewController(WithDefaultDistance(100))
	ctrl.ApplyPreset(PresetFront)
	cam := NewCamera(
		WithController(ctrl),
		WithAspect(16.0/9.0),
		WithFov(math32.Pi/4),
	)
	cam.Update()

	view := cam.ViewMatrix()
	pos := cam.Position()
	// The view matrix must map the camera position to the view-space origin.
	x := view[0]*pos[0] + view[4]*pos[1] + view[8]*pos[2] + view[12]
	y := view[1]*pos[0] + view[5]*pos[1] + view[9]*pos[2] + view[13]
	z := view[2]*pos[0] + view[6]*pos[1] + view[10]*pos[2] + view[14]
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 0, y, 1e-3)
	assert.InDelta(t, 0, z, 1e-3)

	proj := cam.ProjectionMatrix()
	assert.Equal(t, float32(-1), proj[11])

	vp := cam.ViewProjectionMatrix()
	var want [16]float32
	common.Mul4(want[:], proj[:], view[:])
	assert.Equal(t, want, vp)
}

func TestCameraSetAspect(t *testing.T) {
	cam := NewCamera()
	before := cam.ProjectionMatrix()
	cam.SetAspect(2.0)
	assert.NotEqual(t, before, cam.ProjectionMatrix())
	assert.Equal(t, float32(2.0), cam.Aspect())
}

func TestPresetString(t *testing.T) {
	assert.Equal(t, "3d", Preset3D.String())
	assert.Equal(t, "front", PresetFront.String())
	assert.Equal(t, "side", PresetSide.String())
	assert.Equal(t, "top", PresetTop.String())
}
