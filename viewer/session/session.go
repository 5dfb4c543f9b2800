// Package session is the viewer's orchestration layer: it drives patient
// loads end to end (manifest fetch, concurrent entity mesh loads, registry
// population, scene framing, camera reset), exposes the visibility controls,
// and renders frames from the registry. It is the only package that mutates
// the registry.
package session

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/spinelab/vertview/camera"
	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/render"
	"github.com/spinelab/vertview/viewer/catalog"
	"github.com/spinelab/vertview/viewer/framing"
	"github.com/spinelab/vertview/viewer/mesh"
	"github.com/spinelab/vertview/viewer/provider"
	"github.com/spinelab/vertview/viewer/registry"
)

// fallbackColor is used when a manifest color is missing or malformed.
const fallbackColor = "#CCCCCC"

// Default difference legend colors, matching the export pipeline.
const (
	defaultRemovedColor = "#FF4444"
	defaultAddedColor   = "#4444FF"
)

// LoadResult reports the per-entity outcome of one LoadPatient call.
type LoadResult struct {
	PatientID string
	Mode      provider.Mode

	// Loaded counts entities registered with at least one mesh.
	Loaded int
	// Failed counts entities whose every mesh attempt failed.
	Failed int
	// Skipped counts entities dropped because a newer load superseded this
	// one, or whose difference descriptor listed no parts.
	Skipped int
}

// Status describes the active dataset for the UI status indicator.
type Status struct {
	PatientID string
	Mode      provider.Mode
	// ShowLegend is true when the difference color legend applies.
	ShowLegend bool
}

// viewerSession is the implementation of the ViewerSession interface.
type viewerSession struct {
	provider provider.Provider
	registry registry.Registry
	camera   camera.Camera
	renderer render.Renderer

	pool    worker.DynamicWorkerPool
	workers int

	// mu serializes registry ownership handover between overlapping loads:
	// a new load's {bump generation, Clear} pair and each entity task's
	// {re-check token, Register} pair run under it, so a stale task can
	// never register into a newer load's registry.
	mu sync.Mutex

	// generation guards registry mutations against stale overlapping loads.
	// Each LoadPatient call captures the value it incremented to, only after
	// its manifest fetch succeeded; mutations are discarded once a newer
	// call has bumped it further. A call that fails at the manifest never
	// bumps, so it can never invalidate an in-flight load.
	generation atomic.Uint64
	taskID     atomic.Int64

	onStatus func(Status)
	onToggle func(name string, visible bool)
}

// ViewerSession coordinates the scene lifecycle for one viewer instance.
type ViewerSession interface {
	// LoadPatient tears down the current scene and rebuilds it from the
	// manifest for (patientID, mode). A manifest failure aborts the load and
	// leaves the previous scene untouched; per-entity failures are logged
	// and skipped. On success the scene is centered, the camera reset to the
	// default preset, and the status callback invoked. Overlapping calls are
	// safe: the registry's final state corresponds to the newest call only.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - patientID: the patient identifier
	//   - mode: the dataset variant to load
	//
	// Returns:
	//   - *LoadResult: per-entity outcome counts
	//   - error: a *provider.ManifestError if the manifest could not be loaded
	LoadPatient(ctx context.Context, patientID string, mode provider.Mode) (*LoadResult, error)

	// SetEntityVisible shows or hides one entity. Unknown or not-yet-loaded
	// names are a no-op.
	//
	// Parameters:
	//   - name: the entity name
	//   - visible: the new visibility
	SetEntityVisible(name string, visible bool)

	// SelectAll shows every entity in the static catalog, loaded or not, and
	// reflects the state through the toggle callback.
	SelectAll()

	// DeselectAll hides every entity in the static catalog, loaded or not,
	// and reflects the state through the toggle callback.
	DeselectAll()

	// Registry retrieves the scene registry.
	//
	// Returns:
	//   - registry.Registry: the scene registry
	Registry() registry.Registry

	// Camera retrieves the session camera.
	//
	// Returns:
	//   - camera.Camera: the session camera
	Camera() camera.Camera

	// RenderFrame draws one frame of the current scene: camera update, one
	// draw per visible uploaded mesh, submit, present. Tolerates transiently
	// empty or partially populated scenes during a reload.
	//
	// Returns:
	//   - error: an error if the frame could not be started
	RenderFrame() error

	// Close blocks until the session's load workers have drained and
	// idle-exited. Call after the last LoadPatient.
	Close()
}

var _ ViewerSession = &viewerSession{}

// NewViewerSession creates a ViewerSession. Panics if p is nil; a registry,
// camera and renderer are created or left nil-safe per the options.
//
// Parameters:
//   - p: the mesh data provider
//   - opts: functional options to configure the session
//
// Returns:
//   - ViewerSession: the newly created session
func NewViewerSession(p provider.Provider, opts ...SessionBuilderOption) ViewerSession {
	if p == nil {
		panic("session: provider is required")
	}
	s := &viewerSession{
		provider: p,
		workers:  8,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = registry.NewRegistry()
	}
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	// Queue size of 256 covers the 24-entity catalog with ample headroom
	// even if several loads overlap.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

// stale reports whether a newer LoadPatient call has superseded token.
func (s *viewerSession) stale(token uint64) bool {
	return s.generation.Load() != token
}

func (s *viewerSession) LoadPatient(ctx context.Context, patientID string, mode provider.Mode) (*LoadResult, error) {
	result := &LoadResult{PatientID: patientID, Mode: mode}

	manifest, err := s.provider.FetchManifest(ctx, patientID, mode)
	if err != nil {
		// The previous scene stays intact on manifest failure. No token was
		// taken yet, so an overlapping load is unaffected too.
		return nil, err
	}

	names := make([]string, 0, len(manifest.Vertebrae))
	for name := range manifest.Vertebrae {
		names = append(names, name)
	}
	sort.Strings(names)

	// The token is captured atomically with the teardown it authorizes, so
	// ownership of the registry passes to this call in one step.
	s.mu.Lock()
	token := s.generation.Add(1)
	s.registry.Clear()
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, name := range names {
		desc := manifest.Vertebrae[name]
		entityName := name

		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: int(s.taskID.Add(1)),
			Do: func() (any, error) {
				defer wg.Done()

				entry, outcome := s.loadEntity(ctx, entityName, desc, mode, manifest)

				s.mu.Lock()
				defer s.mu.Unlock()
				if s.stale(token) {
					if entry != nil {
						entry.Release()
					}
					result.Skipped++
					return nil, nil
				}
				switch {
				case entry != nil:
					s.registry.Register(entry)
					result.Loaded++
				case outcome == outcomeEmpty:
					result.Skipped++
				default:
					result.Failed++
				}
				return nil, nil
			},
		})
	}

	// All dispatched loads must settle, successful or not, before framing
	// runs against the registry.
	wg.Wait()

	s.mu.Lock()
	if s.stale(token) {
		s.mu.Unlock()
		return result, nil
	}
	framing.CenterAll(s.registry)
	s.camera.Controller().ApplyPreset(camera.Preset3D)
	s.camera.Update()
	s.mu.Unlock()

	if s.onStatus != nil {
		s.onStatus(Status{
			PatientID:  patientID,
			Mode:       mode,
			ShowLegend: mode == provider.ModeDifference,
		})
	}

	log.Printf("loaded patient %s (%s): %d loaded, %d failed, %d skipped",
		patientID, mode, result.Loaded, result.Failed, result.Skipped)
	return result, nil
}

type loadOutcome int

const (
	outcomeOK loadOutcome = iota
	outcomeFailed
	outcomeEmpty
)

// loadEntity builds the registry entry for one manifest descriptor. Returns
// a nil entry with outcomeFailed when every mesh attempt failed, and with
// outcomeEmpty when the descriptor listed nothing to load.
func (s *viewerSession) loadEntity(ctx context.Context, name string, desc provider.EntityDescriptor, mode provider.Mode, manifest *provider.Manifest) (*mesh.Entry, loadOutcome) {
	if mode != provider.ModeDifference {
		m := s.loadMesh(ctx, name, desc.File, desc.Color, fallbackColor)
		if m == nil {
			return nil, outcomeFailed
		}
		return mesh.NewSingleEntry(name, m), outcomeOK
	}

	if len(desc.Meshes) == 0 {
		return nil, outcomeEmpty
	}

	// Parts load sequentially within the entity; entities are concurrent.
	// Either part may be absent, and a part failure does not discard the
	// other part.
	var removed, added mesh.Mesh
	if pd, ok := desc.Meshes[provider.PartRemoved]; ok {
		removed = s.loadMesh(ctx, name+"_removed", pd.File, pd.Color, legendColor(manifest, provider.PartRemoved))
	}
	if pd, ok := desc.Meshes[provider.PartAdded]; ok {
		added = s.loadMesh(ctx, name+"_added", pd.File, pd.Color, legendColor(manifest, provider.PartAdded))
	}
	if removed == nil && added == nil {
		return nil, outcomeFailed
	}
	return mesh.NewPartsEntry(name, removed, added), outcomeOK
}

// loadMesh fetches one payload and builds its mesh with GPU buffers
// uploaded. Failures are logged and yield nil; a single entity's failure
// never aborts the others.
func (s *viewerSession) loadMesh(ctx context.Context, label, file, color, fallback string) mesh.Mesh {
	payload, err := s.provider.FetchMesh(ctx, file)
	if err != nil {
		log.Printf("mesh %s: %v", label, err)
		return nil
	}

	rgb, err := common.ParseHexColor(color)
	if err != nil {
		rgb, _ = common.ParseHexColor(fallback)
	}

	m := mesh.NewMesh(label, payload, rgb)
	if s.renderer != nil {
		buffers, err := s.renderer.InitMeshBuffers(label, m.VertexData(), m.IndexData(), m.IndexCount())
		if err != nil {
			log.Printf("mesh %s: gpu upload: %v", label, err)
			m.Release()
			return nil
		}
		m.SetGPU(buffers)
	}
	return m
}

// legendColor resolves a part's fallback color from the manifest legend,
// then from the built-in defaults.
func legendColor(manifest *provider.Manifest, part provider.Part) string {
	if c, ok := manifest.Colors[string(part)]; ok && c != "" {
		return c
	}
	if part == provider.PartRemoved {
		return defaultRemovedColor
	}
	return defaultAddedColor
}

func (s *viewerSession) SetEntityVisible(name string, visible bool) {
	s.registry.SetVisible(name, visible)
}

func (s *viewerSession) SelectAll() {
	s.setAll(true)
}

func (s *viewerSession) DeselectAll() {
	s.setAll(false)
}

// setAll applies one visibility to the full static catalog, loaded or not,
// and mirrors the state to the UI toggle callback.
func (s *viewerSession) setAll(visible bool) {
	for _, name := range catalog.Names() {
		s.registry.SetVisible(name, visible)
		if s.onToggle != nil {
			s.onToggle(name, visible)
		}
	}
}

func (s *viewerSession) Registry() registry.Registry {
	return s.registry
}

func (s *viewerSession) Camera() camera.Camera {
	return s.camera
}

func (s *viewerSession) RenderFrame() error {
	if s.renderer == nil {
		return nil
	}

	s.camera.Update()
	s.renderer.SetCamera(s.camera.ViewProjectionMatrix(), s.camera.Position())

	if err := s.renderer.BeginFrame(); err != nil {
		return err
	}
	s.registry.ForEachHandle(func(_ string, h mesh.Handle) {
		if !h.Mesh.Visible() {
			return
		}
		buffers := h.Mesh.GPU()
		if buffers == nil {
			return
		}
		s.renderer.DrawMesh(buffers, h.Mesh.Offset(), h.Mesh.Color(), mesh.SpecularIntensity, mesh.Shininess)
	})
	s.renderer.EndFrame()
	s.renderer.Present()
	return nil
}

func (s *viewerSession) Close() {
	s.pool.Wait()
}
