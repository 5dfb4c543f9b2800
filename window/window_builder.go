package window

// WindowBuilderOption is a functional option for configuring a Window via NewWindow.
type WindowBuilderOption func(*viewerWindow)

// WithTitle is an option builder that sets the window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - WindowBuilderOption: a function that applies the title option to a window
func WithTitle(title string) WindowBuilderOption {
	return func(w *viewerWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize is an option builder that sets the requested window size in
// screen coordinates. The actual framebuffer size may differ on high-DPI
// displays.
//
// Parameters:
//   - width: the requested width
//   - height: the requested height
//
// Returns:
//   - WindowBuilderOption: a function that applies the size option to a window
func WithSize(width, height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		if width > 0 && height > 0 {
			w.width = width
			w.height = height
		}
	}
}
