// Package provider is the client for the Mesh Data Provider: it fetches the
// per-patient metadata manifest and the individual mesh payload files the
// upstream export pipeline produces. It performs no geometry processing
// beyond structural validation of payloads.
package provider

import "fmt"

// Mode selects which dataset variant of a patient to load.
type Mode int

const (
	// ModeRaw loads the unprocessed segmentation meshes.
	ModeRaw Mode = iota
	// ModeCleaned loads the post-processed segmentation meshes.
	ModeCleaned
	// ModeDifference loads the added/removed geometry between raw and cleaned.
	ModeDifference
)

// String returns the short mode identifier used in logs.
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeCleaned:
		return "cleaned"
	case ModeDifference:
		return "difference"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label returns the human-readable processing label shown in the status
// indicator.
//
// Returns:
//   - string: the display label for this mode
func (m Mode) Label() string {
	switch m {
	case ModeRaw:
		return "Raw Predictions"
	case ModeCleaned:
		return "Post-Processed"
	case ModeDifference:
		return "Difference (Removed/Added)"
	default:
		return "Unknown"
	}
}

// Folder returns the data directory for a patient in this mode. The export
// pipeline writes one folder per (patient, mode) pair: the bare patient id
// for raw, and "_cleaned" / "_difference" suffixed folders otherwise.
//
// Parameters:
//   - patientID: the patient identifier
//
// Returns:
//   - string: the folder name under web_data/
func (m Mode) Folder(patientID string) string {
	switch m {
	case ModeCleaned:
		return patientID + "_cleaned"
	case ModeDifference:
		return patientID + "_difference"
	default:
		return patientID
	}
}

// Part identifies a sub-mesh of a difference-mode entity.
type Part string

const (
	// PartRemoved is geometry present in raw but absent after cleaning.
	PartRemoved Part = "removed"
	// PartAdded is geometry absent in raw but present after cleaning.
	PartAdded Part = "added"
)

// PartDescriptor locates one mesh file and its display color.
type PartDescriptor struct {
	File  string `json:"file"`
	Color string `json:"color"`
}

// EntityDescriptor is one manifest entry. Raw/cleaned manifests populate
// File/Color directly; difference manifests populate Meshes with up to two
// parts keyed "removed" and "added", either of which may be absent when the
// entity had no geometry change of that kind.
type EntityDescriptor struct {
	File   string                  `json:"file,omitempty"`
	Color  string                  `json:"color,omitempty"`
	Meshes map[Part]PartDescriptor `json:"meshes,omitempty"`
}

// Manifest is the per-patient-and-mode metadata document. Fields beyond
// Vertebrae are informational extras from the difference exporter.
type Manifest struct {
	PatientID         string                      `json:"patient_id,omitempty"`
	VisualizationType string                      `json:"visualization_type,omitempty"`
	Colors            map[string]string           `json:"colors,omitempty"`
	Vertebrae         map[string]EntityDescriptor `json:"vertebrae"`
}

// MeshPayload is the triangulated surface for a single entity or part.
type MeshPayload struct {
	Vertices [][3]float32 `json:"vertices"`
	Faces    [][3]uint32  `json:"faces"`
}

// Validate checks the payload's structural invariants: non-empty vertex and
// face arrays and every face index within the vertex range. A violation is a
// load failure for the owning entity, never a panic.
//
// Parameters:
//   - file: the source file path, used in the error
//
// Returns:
//   - error: a *ParseError describing the first violation, or nil
func (p *MeshPayload) Validate(file string) error {
	if len(p.Vertices) == 0 {
		return &ParseError{File: file, Reason: "no vertices"}
	}
	if len(p.Faces) == 0 {
		return &ParseError{File: file, Reason: "no faces"}
	}
	limit := uint32(len(p.Vertices))
	for i, f := range p.Faces {
		for _, idx := range f {
			if idx >= limit {
				return &ParseError{
					File:   file,
					Reason: fmt.Sprintf("face %d references vertex %d of %d", i, idx, limit),
				}
			}
		}
	}
	return nil
}
