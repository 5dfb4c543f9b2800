package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/viewer/mesh"
	"github.com/spinelab/vertview/viewer/provider"
)

type fakeBuffers struct {
	released int
}

func (f *fakeBuffers) IndexCount() int {
	return 3
}

func (f *fakeBuffers) Release() {
	f.released++
}

func newEntry(t *testing.T, name string, origin [3]float32) (*mesh.Entry, *fakeBuffers) {
	t.Helper()
	payload := &provider.MeshPayload{
		Vertices: [][3]float32{
			origin,
			{origin[0] + 1, origin[1], origin[2]},
			{origin[0], origin[1] + 1, origin[2]},
		},
		Faces: [][3]uint32{{0, 1, 2}},
	}
	m := mesh.NewMesh(name, payload, [3]float32{0.5, 0.5, 0.5})
	buf := &fakeBuffers{}
	m.SetGPU(buf)
	return mesh.NewSingleEntry(name, m), buf
}

func TestRegisterAndIterate(t *testing.T) {
	r := NewRegistry()
	e1, _ := newEntry(t, "L1", [3]float32{0, 0, 0})
	e2, _ := newEntry(t, "L2", [3]float32{0, 2, 0})
	r.Register(e1)
	r.Register(e2)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"L1", "L2"}, r.Names())

	var seen []string
	r.ForEachHandle(func(name string, h mesh.Handle) {
		seen = append(seen, name)
		assert.NotNil(t, h.Mesh.GPU())
	})
	assert.Equal(t, []string{"L1", "L2"}, seen)

	got, ok := r.Get("L1")
	require.True(t, ok)
	assert.Equal(t, "L1", got.Name())
	_, ok = r.Get("C1")
	assert.False(t, ok)
}

func TestRegisterReplacesAndReleases(t *testing.T) {
	r := NewRegistry()
	e1, buf1 := newEntry(t, "L1", [3]float32{0, 0, 0})
	e2, buf2 := newEntry(t, "L1", [3]float32{5, 5, 5})
	r.Register(e1)
	r.Register(e2)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, buf1.released)
	assert.Equal(t, 0, buf2.released)

	got, _ := r.Get("L1")
	assert.Equal(t, common.Vec3{5, 5, 5}, got.Bounds().Min)
}

func TestSetVisible(t *testing.T) {
	r := NewRegistry()
	e, _ := newEntry(t, "T3", [3]float32{0, 0, 0})
	r.Register(e)

	r.SetVisible("T3", false)
	assert.False(t, e.Visible())
	r.SetVisible("T3", true)
	assert.True(t, e.Visible())

	// Unknown names are ignored.
	r.SetVisible("T4", false)
}

func TestBounds(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Bounds().IsEmpty())

	e1, _ := newEntry(t, "L1", [3]float32{0, 0, 0})
	e2, _ := newEntry(t, "L2", [3]float32{-3, 4, 0})
	r.Register(e1)
	r.Register(e2)

	b := r.Bounds()
	assert.Equal(t, common.Vec3{-3, 0, 0}, b.Min)
	assert.Equal(t, common.Vec3{1, 5, 0}, b.Max)
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	e1, buf1 := newEntry(t, "L1", [3]float32{0, 0, 0})
	e2, buf2 := newEntry(t, "L2", [3]float32{0, 2, 0})
	r.Register(e1)
	r.Register(e2)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())
	assert.Equal(t, 1, buf1.released)
	assert.Equal(t, 1, buf2.released)

	// Clearing again must not double-release.
	r.Clear()
	assert.Equal(t, 1, buf1.released)
}
