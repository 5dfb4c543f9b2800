package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/render"
	"github.com/spinelab/vertview/viewer/provider"
)

// fakeRenderer records GPU buffer lifecycles and draw calls without a device.
type fakeRenderer struct {
	mu       sync.Mutex
	created  []*fakeBuffers
	draws    int
	frames   int
	presents int
}

type fakeBuffers struct {
	mu       sync.Mutex
	label    string
	count    int
	released int
}

func (f *fakeBuffers) IndexCount() int {
	return f.count
}

func (f *fakeBuffers) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
}

func (r *fakeRenderer) InitMeshBuffers(label string, vertexData, indexData []byte, indexCount int) (render.MeshBuffers, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := &fakeBuffers{label: label, count: indexCount}
	r.created = append(r.created, b)
	return b, nil
}

func (r *fakeRenderer) SetCamera(viewProjection [16]float32, position common.Vec3) {}

func (r *fakeRenderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	return nil
}

func (r *fakeRenderer) DrawMesh(buffers render.MeshBuffers, offset common.Vec3, color [3]float32, specularIntensity, shininess float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws++
}

func (r *fakeRenderer) EndFrame() {}

func (r *fakeRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
}

func (r *fakeRenderer) Resize(width, height int) {}

func (r *fakeRenderer) releasedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.created {
		b.mu.Lock()
		if b.released > 0 {
			n++
		}
		if b.released > 1 {
			n = -1000 // double release is always a failure
		}
		b.mu.Unlock()
	}
	return n
}

const triangle = `{"vertices": [[0,0,0],[10,0,0],[0,10,0]], "faces": [[0,1,2]]}`

// offsetTriangle keeps the combined scene off-origin so centering is observable.
const offsetTriangle = `{"vertices": [[20,20,20],[30,20,20],[20,30,20]], "faces": [[0,1,2]]}`

func newServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rawRoutes(patient string) map[string]string {
	base := "/web_data/" + patient
	return map[string]string{
		base + "/metadata.json": `{
			"vertebrae": {
				"L1": {"file": "web_data/` + patient + `/L1.json", "color": "#4682B4"},
				"L2": {"file": "web_data/` + patient + `/L2.json", "color": "#5F9EA0"},
				"L3": {"file": "web_data/` + patient + `/L3.json", "color": "#6495ED"}
			}
		}`,
		base + "/L1.json": triangle,
		base + "/L2.json": offsetTriangle,
		// L3.json intentionally missing.
	}
}

func differenceRoutes(patient string) map[string]string {
	base := "/web_data/" + patient + "_difference"
	return map[string]string{
		base + "/metadata.json": `{
			"visualization_type": "difference",
			"colors": {"removed": "#FF4444", "added": "#4444FF"},
			"vertebrae": {
				"T5": {"meshes": {
					"removed": {"file": "web_data/` + patient + `_difference/T5_removed.json", "color": "#FF4444"},
					"added": {"file": "web_data/` + patient + `_difference/T5_added.json", "color": "#4444FF"}
				}},
				"T6": {"meshes": {
					"added": {"file": "web_data/` + patient + `_difference/T6_added.json", "color": "#4444FF"}
				}}
			}
		}`,
		base + "/T5_removed.json": triangle,
		base + "/T5_added.json":   offsetTriangle,
		base + "/T6_added.json":   triangle,
	}
}

// gatedProvider blocks the listed mesh fetches until the gate opens, so a
// test can hold one load in flight while another call runs to completion.
// A send on arrived marks a blocked fetch reaching the gate, which implies
// the owning load has already torn down the prior scene and dispatched its
// entity tasks.
type gatedProvider struct {
	inner   provider.Provider
	blocked map[string]bool
	arrived chan struct{}
	gate    chan struct{}
}

var _ provider.Provider = &gatedProvider{}

func (g *gatedProvider) FetchManifest(ctx context.Context, patientID string, mode provider.Mode) (*provider.Manifest, error) {
	return g.inner.FetchManifest(ctx, patientID, mode)
}

func (g *gatedProvider) FetchMesh(ctx context.Context, file string) (*provider.MeshPayload, error) {
	if g.blocked[file] {
		g.arrived <- struct{}{}
		<-g.gate
	}
	return g.inner.FetchMesh(ctx, file)
}

func TestLoadPatientToleratesEntityFailure(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	rend := &fakeRenderer{}
	s := NewViewerSession(
		provider.NewHTTPProvider(srv.URL),
		WithRenderer(rend),
		WithWorkers(4),
	)
	defer s.Close()

	result, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)

	assert.ElementsMatch(t, []string{"L1", "L2"}, s.Registry().Names())
	_, ok := s.Registry().Get("L3")
	assert.False(t, ok)
}

func TestLoadPatientCentersScene(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	var statuses []Status
	s := NewViewerSession(
		provider.NewHTTPProvider(srv.URL),
		WithStatusCallback(func(st Status) { statuses = append(statuses, st) }),
	)
	defer s.Close()

	_, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)

	center := s.Registry().Bounds().Center()
	assert.InDelta(t, 0, center[0], 1e-3)
	assert.InDelta(t, 0, center[1], 1e-3)
	assert.InDelta(t, 0, center[2], 1e-3)

	require.Len(t, statuses, 1)
	assert.Equal(t, "p01", statuses[0].PatientID)
	assert.Equal(t, provider.ModeRaw, statuses[0].Mode)
	assert.False(t, statuses[0].ShowLegend)
}

func TestLoadPatientReplacesPriorScene(t *testing.T) {
	routes := rawRoutes("p01")
	for path, body := range differenceRoutes("p01") {
		routes[path] = body
	}
	srv := newServer(t, routes)

	rend := &fakeRenderer{}
	var statuses []Status
	s := NewViewerSession(
		provider.NewHTTPProvider(srv.URL),
		WithRenderer(rend),
		WithStatusCallback(func(st Status) { statuses = append(statuses, st) }),
	)
	defer s.Close()

	_, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)
	firstCount := len(rend.created)
	assert.Equal(t, 2, firstCount)

	result, err := s.LoadPatient(context.Background(), "p01", provider.ModeDifference)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Loaded)

	// The registry holds exactly the difference manifest's entities, never a
	// union with the prior load.
	assert.ElementsMatch(t, []string{"T5", "T6"}, s.Registry().Names())

	// Every buffer from the first load was released exactly once.
	assert.Equal(t, firstCount, rend.releasedCount())

	t5, ok := s.Registry().Get("T5")
	require.True(t, ok)
	assert.Len(t, t5.Handles(), 2)

	t6, ok := s.Registry().Get("T6")
	require.True(t, ok)
	require.Len(t, t6.Handles(), 1)
	assert.Equal(t, provider.PartAdded, t6.Handles()[0].Part)

	require.Len(t, statuses, 2)
	assert.True(t, statuses[1].ShowLegend)
}

func TestLoadPatientManifestFailurePreservesScene(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	s := NewViewerSession(provider.NewHTTPProvider(srv.URL))
	defer s.Close()

	_, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)
	before := s.Registry().Names()

	_, err = s.LoadPatient(context.Background(), "nobody", provider.ModeRaw)
	require.Error(t, err)
	var merr *provider.ManifestError
	require.ErrorAs(t, err, &merr)

	assert.ElementsMatch(t, before, s.Registry().Names())
}

func TestOverlappingFailedManifestLeavesInFlightLoadAlone(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	gp := &gatedProvider{
		inner: provider.NewHTTPProvider(srv.URL),
		blocked: map[string]bool{
			"web_data/p01/L1.json": true,
			"web_data/p01/L2.json": true,
		},
		arrived: make(chan struct{}, 2),
		gate:    make(chan struct{}),
	}
	s := NewViewerSession(gp)
	defer s.Close()

	var (
		wg      sync.WaitGroup
		resultA *LoadResult
		errA    error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		resultA, errA = s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	}()
	<-gp.arrived

	// While the first load is blocked mid-fetch, a second call fails at the
	// manifest. It must not disturb the load in flight.
	_, errB := s.LoadPatient(context.Background(), "nobody", provider.ModeRaw)
	var merr *provider.ManifestError
	require.ErrorAs(t, errB, &merr)

	close(gp.gate)
	wg.Wait()

	require.NoError(t, errA)
	assert.Equal(t, 2, resultA.Loaded)
	assert.Equal(t, 1, resultA.Failed)
	assert.Equal(t, 0, resultA.Skipped)
	assert.ElementsMatch(t, []string{"L1", "L2"}, s.Registry().Names())
}

func TestSupersedingLoadDiscardsStaleRegistrations(t *testing.T) {
	routes := rawRoutes("p01")
	for path, body := range differenceRoutes("p01") {
		routes[path] = body
	}
	srv := newServer(t, routes)

	gp := &gatedProvider{
		inner: provider.NewHTTPProvider(srv.URL),
		blocked: map[string]bool{
			"web_data/p01/L1.json": true,
			"web_data/p01/L2.json": true,
			"web_data/p01/L3.json": true,
		},
		arrived: make(chan struct{}, 3),
		gate:    make(chan struct{}),
	}
	rend := &fakeRenderer{}
	var statuses []Status
	s := NewViewerSession(gp,
		WithRenderer(rend),
		WithStatusCallback(func(st Status) { statuses = append(statuses, st) }),
	)
	defer s.Close()

	var (
		wg      sync.WaitGroup
		resultA *LoadResult
		errA    error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		resultA, errA = s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	}()
	<-gp.arrived

	// The second call completes while every mesh of the first is still in
	// flight, so the first call's registrations settle against a newer
	// generation.
	resultB, errB := s.LoadPatient(context.Background(), "p01", provider.ModeDifference)
	require.NoError(t, errB)
	assert.Equal(t, 2, resultB.Loaded)

	close(gp.gate)
	wg.Wait()

	require.NoError(t, errA)
	assert.Equal(t, 0, resultA.Loaded)
	assert.Equal(t, 3, resultA.Skipped)

	// The registry holds only the superseding call's entities.
	assert.ElementsMatch(t, []string{"T5", "T6"}, s.Registry().Names())

	// Buffers uploaded by the superseded call were released exactly once;
	// the winning call's three stay live.
	assert.Equal(t, 5, len(rend.created))
	assert.Equal(t, 2, rend.releasedCount())

	// Framing, camera reset and status ran only for the winning call.
	require.Len(t, statuses, 1)
	assert.Equal(t, provider.ModeDifference, statuses[0].Mode)
	assert.True(t, statuses[0].ShowLegend)
}

func TestDifferenceEntityWithNoPartsIsSkipped(t *testing.T) {
	srv := newServer(t, map[string]string{
		"/web_data/p02_difference/metadata.json": `{
			"vertebrae": {
				"C1": {"meshes": {}},
				"C2": {"meshes": {
					"added": {"file": "web_data/p02_difference/C2_added.json", "color": "#4444FF"}
				}}
			}
		}`,
		"/web_data/p02_difference/C2_added.json": triangle,
	})
	s := NewViewerSession(provider.NewHTTPProvider(srv.URL))
	defer s.Close()

	result, err := s.LoadPatient(context.Background(), "p02", provider.ModeDifference)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"C2"}, s.Registry().Names())
}

func TestVisibilityControls(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	toggles := make(map[string]bool)
	s := NewViewerSession(
		provider.NewHTTPProvider(srv.URL),
		WithToggleCallback(func(name string, visible bool) { toggles[name] = visible }),
	)
	defer s.Close()

	_, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)

	s.SetEntityVisible("L1", false)
	e, _ := s.Registry().Get("L1")
	assert.False(t, e.Visible())

	// Unknown names never panic.
	s.SetEntityVisible("T9", false)

	// Deselect/select iterate the full 24-entity catalog, loaded or not.
	s.DeselectAll()
	assert.Len(t, toggles, 24)
	assert.False(t, toggles["C1"])
	e, _ = s.Registry().Get("L2")
	assert.False(t, e.Visible())

	s.SelectAll()
	assert.True(t, toggles["C1"])
	assert.True(t, e.Visible())
}

func TestRenderFrameDrawsVisibleMeshes(t *testing.T) {
	srv := newServer(t, rawRoutes("p01"))
	rend := &fakeRenderer{}
	s := NewViewerSession(provider.NewHTTPProvider(srv.URL), WithRenderer(rend))
	defer s.Close()

	// Rendering before any load tolerates an empty scene.
	require.NoError(t, s.RenderFrame())
	assert.Equal(t, 0, rend.draws)

	_, err := s.LoadPatient(context.Background(), "p01", provider.ModeRaw)
	require.NoError(t, err)

	require.NoError(t, s.RenderFrame())
	assert.Equal(t, 2, rend.draws)
	assert.Equal(t, 2, rend.frames)
	assert.Equal(t, 2, rend.presents)

	s.SetEntityVisible("L1", false)
	require.NoError(t, s.RenderFrame())
	assert.Equal(t, 3, rend.draws)
}

func TestFallbackColorOnBadManifestColor(t *testing.T) {
	srv := newServer(t, map[string]string{
		"/web_data/p03/metadata.json": `{
			"vertebrae": {
				"L1": {"file": "web_data/p03/L1.json", "color": "not-a-color"}
			}
		}`,
		"/web_data/p03/L1.json": triangle,
	})
	s := NewViewerSession(provider.NewHTTPProvider(srv.URL))
	defer s.Close()

	_, err := s.LoadPatient(context.Background(), "p03", provider.ModeRaw)
	require.NoError(t, err)

	e, ok := s.Registry().Get("L1")
	require.True(t, ok)
	want, _ := common.ParseHexColor(fallbackColor)
	assert.Equal(t, want, e.Handles()[0].Mesh.Color())
}
