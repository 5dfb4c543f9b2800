package common

import "fmt"

// ParseHexColor parses a "#RRGGBB" string into normalized RGB components.
// The mesh metadata exporter emits colors exclusively in this form.
//
// Parameters:
//   - s: the color string, e.g. "#FF4500"
//
// Returns:
//   - [3]float32: RGB components in [0, 1]
//   - error: an error if the string is not a 7-character hex color
func ParseHexColor(s string) ([3]float32, error) {
	var rgb [3]float32
	if len(s) != 7 || s[0] != '#' {
		return rgb, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	rgb[0] = float32(r) / 255
	rgb[1] = float32(g) / 255
	rgb[2] = float32(b) / 255
	return rgb, nil
}
