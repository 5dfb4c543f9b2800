package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/viewer/mesh"
	"github.com/spinelab/vertview/viewer/provider"
	"github.com/spinelab/vertview/viewer/registry"
)

func newEntry(name string, lo, hi [3]float32) *mesh.Entry {
	payload := &provider.MeshPayload{
		Vertices: [][3]float32{lo, hi, {lo[0], hi[1], lo[2]}},
		Faces:    [][3]uint32{{0, 1, 2}},
	}
	m := mesh.NewMesh(name, payload, [3]float32{0.5, 0.5, 0.5})
	return mesh.NewSingleEntry(name, m)
}

func TestCenterAll(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(newEntry("L1", [3]float32{2, 2, 2}, [3]float32{4, 4, 4}))
	reg.Register(newEntry("L2", [3]float32{4, 2, 2}, [3]float32{6, 4, 4}))

	// Combined bounds [2,6]x[2,4]x[2,4], center (4,3,3).
	shift := CenterAll(reg)
	assert.Equal(t, common.Vec3{-4, -3, -3}, shift)

	b := reg.Bounds()
	assert.Equal(t, common.Vec3{-2, -1, -1}, b.Min)
	assert.Equal(t, common.Vec3{2, 1, 1}, b.Max)
	assert.Equal(t, common.Vec3{}, b.Center())
}

func TestCenterAllIdempotent(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(newEntry("T1", [3]float32{10, 10, 10}, [3]float32{12, 12, 12}))

	CenterAll(reg)
	shift := CenterAll(reg)
	assert.Equal(t, common.Vec3{}, shift)
	assert.Equal(t, common.Vec3{}, reg.Bounds().Center())
}

func TestCenterAllEmpty(t *testing.T) {
	reg := registry.NewRegistry()
	assert.Equal(t, common.Vec3{}, CenterAll(reg))
}
