package provider

import "fmt"

// ManifestError reports a failed manifest fetch or decode. A manifest failure
// aborts the whole patient load, unlike per-entity mesh failures.
type ManifestError struct {
	PatientID string
	Mode      Mode
	Err       error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest for patient %q (%s): %v", e.PatientID, e.Mode, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed HTTP retrieval of a mesh file. Status is the
// HTTP status code when the server responded, and 0 on transport errors.
type FetchError struct {
	File   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.File, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.File, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a mesh payload that was retrieved but is malformed or
// violates a structural invariant.
type ParseError struct {
	File   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.File, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
