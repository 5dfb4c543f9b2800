package camera

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controller)

// WithDefaultDistance is an option builder that sets the distance presets
// place the camera at.
//
// Parameters:
//   - d: the preset distance from the origin
//
// Returns:
//   - ControllerBuilderOption: a function that applies the distance option to a controller
func WithDefaultDistance(d float32) ControllerBuilderOption {
	return func(c *controller) {
		if d > 0 {
			c.defaultRadius = d
		}
	}
}

// WithDistanceRange is an option builder that sets the zoom distance clamp.
//
// Parameters:
//   - min: the closest allowed distance
//   - max: the farthest allowed distance
//
// Returns:
//   - ControllerBuilderOption: a function that applies the range option to a controller
func WithDistanceRange(min, max float32) ControllerBuilderOption {
	return func(c *controller) {
		if min > 0 && max > min {
			c.minRadius = min
			c.maxRadius = max
		}
	}
}

// WithOrbitSensitivity is an option builder that sets the radians applied
// per pointer delta unit during orbit.
//
// Parameters:
//   - s: the orbit sensitivity
//
// Returns:
//   - ControllerBuilderOption: a function that applies the sensitivity option to a controller
func WithOrbitSensitivity(s float32) ControllerBuilderOption {
	return func(c *controller) {
		if s > 0 {
			c.orbitSensitivity = s
		}
	}
}

// WithPanSpeed is an option builder that sets the world units applied per
// pointer delta unit during pan.
//
// Parameters:
//   - s: the pan speed
//
// Returns:
//   - ControllerBuilderOption: a function that applies the pan speed option to a controller
func WithPanSpeed(s float32) ControllerBuilderOption {
	return func(c *controller) {
		if s > 0 {
			c.panSpeed = s
		}
	}
}

// WithZoomSpeed is an option builder that sets the scale factor applied per
// scroll delta unit during zoom.
//
// Parameters:
//   - s: the zoom speed
//
// Returns:
//   - ControllerBuilderOption: a function that applies the zoom speed option to a controller
func WithZoomSpeed(s float32) ControllerBuilderOption {
	return func(c *controller) {
		if s > 0 {
			c.zoomSpeed = s
		}
	}
}
