package session

import (
	"github.com/spinelab/vertview/camera"
	"github.com/spinelab/vertview/render"
	"github.com/spinelab/vertview/viewer/registry"
)

// SessionBuilderOption is a functional option for configuring a ViewerSession via NewViewerSession.
type SessionBuilderOption func(*viewerSession)

// WithRegistry is an option builder that sets the scene registry, replacing
// the default empty one.
//
// Parameters:
//   - r: the registry instance
//
// Returns:
//   - SessionBuilderOption: a function that applies the registry option to a session
func WithRegistry(r registry.Registry) SessionBuilderOption {
	return func(s *viewerSession) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithCamera is an option builder that sets the session camera, replacing
// the default one.
//
// Parameters:
//   - c: the camera instance
//
// Returns:
//   - SessionBuilderOption: a function that applies the camera option to a session
func WithCamera(c camera.Camera) SessionBuilderOption {
	return func(s *viewerSession) {
		if c != nil {
			s.camera = c
		}
	}
}

// WithRenderer is an option builder that sets the Renderer used for GPU
// uploads and frame drawing. Without a renderer the session runs headless:
// meshes load with CPU geometry only and RenderFrame is a no-op.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - SessionBuilderOption: a function that applies the renderer option to a session
func WithRenderer(r render.Renderer) SessionBuilderOption {
	return func(s *viewerSession) {
		s.renderer = r
	}
}

// WithWorkers is an option builder that sets the number of concurrent mesh
// load workers. Defaults to 8.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SessionBuilderOption: a function that applies the workers option to a session
func WithWorkers(n int) SessionBuilderOption {
	return func(s *viewerSession) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithStatusCallback is an option builder that sets the callback invoked
// after each successful load with the active dataset description.
//
// Parameters:
//   - fn: the status callback
//
// Returns:
//   - SessionBuilderOption: a function that applies the status callback option to a session
func WithStatusCallback(fn func(Status)) SessionBuilderOption {
	return func(s *viewerSession) {
		s.onStatus = fn
	}
}

// WithToggleCallback is an option builder that sets the callback mirroring
// SelectAll/DeselectAll visibility changes to a UI layer.
//
// Parameters:
//   - fn: the toggle callback receiving entity name and visibility
//
// Returns:
//   - SessionBuilderOption: a function that applies the toggle callback option to a session
func WithToggleCallback(fn func(name string, visible bool)) SessionBuilderOption {
	return func(s *viewerSession) {
		s.onToggle = fn
	}
}
