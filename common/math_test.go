package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtTransformsEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := Vec3{10, 20, 30}
	LookAt(view[:], eye[0], eye[1], eye[2], 0, 0, 0, 0, 1, 0)

	// The view matrix must map the eye position to the view-space origin.
	x := view[0]*eye[0] + view[4]*eye[1] + view[8]*eye[2] + view[12]
	y := view[1]*eye[0] + view[5]*eye[1] + view[9]*eye[2] + view[13]
	z := view[2]*eye[0] + view[6]*eye[1] + view[10]*eye[2] + view[14]
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
	assert.InDelta(t, 0, z, 1e-4)
}

func TestPerspectiveClipSpace(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math32.Pi/4, 16.0/9.0, 0.1, 100)

	assert.Equal(t, float32(-1), proj[11])
	assert.Equal(t, float32(0), proj[15])
	assert.Less(t, proj[10], float32(0))
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalized()
	assert.InDelta(t, 1, n.Length(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
}
