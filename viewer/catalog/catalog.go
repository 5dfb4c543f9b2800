// Package catalog defines the static set of vertebra entities the viewer
// knows about. The catalog is fixed at compile time and independent of any
// loaded patient data: UI toggles and select-all operations iterate it even
// when only a subset of entities loaded successfully.
package catalog

// Region identifies one of the three anatomical groups of the spine.
type Region int

const (
	// RegionCervical covers C1-C7.
	RegionCervical Region = iota
	// RegionThoracic covers T1-T12.
	RegionThoracic
	// RegionLumbar covers L1-L5.
	RegionLumbar
)

// String returns the display name of the region.
func (r Region) String() string {
	switch r {
	case RegionCervical:
		return "Cervical"
	case RegionThoracic:
		return "Thoracic"
	case RegionLumbar:
		return "Lumbar"
	default:
		return "Unknown"
	}
}

var cervical = []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7"}

var thoracic = []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8", "T9", "T10", "T11", "T12"}

var lumbar = []string{"L1", "L2", "L3", "L4", "L5"}

// Names returns all 24 vertebra labels in anatomical order (C1 down to L5).
//
// Returns:
//   - []string: a fresh slice of entity names
func Names() []string {
	out := make([]string, 0, 24)
	out = append(out, cervical...)
	out = append(out, thoracic...)
	out = append(out, lumbar...)
	return out
}

// RegionNames returns the labels belonging to a single region in
// anatomical order.
//
// Parameters:
//   - r: the region to list
//
// Returns:
//   - []string: a fresh slice of the region's entity names
func RegionNames(r Region) []string {
	var src []string
	switch r {
	case RegionCervical:
		src = cervical
	case RegionThoracic:
		src = thoracic
	case RegionLumbar:
		src = lumbar
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Regions returns the three regions in anatomical order.
//
// Returns:
//   - []Region: cervical, thoracic, lumbar
func Regions() []Region {
	return []Region{RegionCervical, RegionThoracic, RegionLumbar}
}

// Contains reports whether name is one of the 24 known vertebra labels.
//
// Parameters:
//   - name: the entity name to check
//
// Returns:
//   - bool: true if the name is in the catalog
func Contains(name string) bool {
	for _, group := range [][]string{cervical, thoracic, lumbar} {
		for _, n := range group {
			if n == name {
				return true
			}
		}
	}
	return false
}
