// Package framing recenters a loaded scene so the camera presets, which all
// look at the world origin, frame the anatomy without per-patient tuning.
package framing

import (
	"github.com/spinelab/vertview/common"
	"github.com/spinelab/vertview/viewer/registry"
)

// CenterAll translates every registered entry so the combined bounding box
// center lands on the world origin. Bounds are read with current offsets
// applied, so repeated calls converge instead of drifting. An empty registry
// is a no-op.
//
// Parameters:
//   - reg: the registry holding the scene entries
//
// Returns:
//   - common.Vec3: the translation that was applied, zero when nothing moved
func CenterAll(reg registry.Registry) common.Vec3 {
	b := reg.Bounds()
	if b.IsEmpty() {
		return common.Vec3{}
	}
	shift := b.Center().Neg()
	if shift == (common.Vec3{}) {
		return shift
	}
	for _, name := range reg.Names() {
		if e, ok := reg.Get(name); ok {
			e.Translate(shift)
		}
	}
	return shift
}
