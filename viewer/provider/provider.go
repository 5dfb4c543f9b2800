package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// dataRoot is the directory the export pipeline writes all patient folders
// under, relative to the base URL.
const dataRoot = "web_data"

// Provider fetches manifests and mesh payloads for the viewer.
type Provider interface {
	// FetchManifest retrieves and decodes the metadata manifest for a patient
	// in the given mode.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - patientID: the patient identifier
	//   - mode: the dataset variant to load
	//
	// Returns:
	//   - *Manifest: the decoded manifest
	//   - error: a *ManifestError if the manifest is missing or malformed
	FetchManifest(ctx context.Context, patientID string, mode Mode) (*Manifest, error)

	// FetchMesh retrieves, decodes and validates a single mesh payload. The
	// file path is taken verbatim from a manifest descriptor.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - file: the payload path relative to the base URL
	//
	// Returns:
	//   - *MeshPayload: the validated payload
	//   - error: a *FetchError or *ParseError on failure
	FetchMesh(ctx context.Context, file string) (*MeshPayload, error)
}

type httpProvider struct {
	baseURL string
	client  *http.Client
}

var _ Provider = &httpProvider{}

// NewHTTPProvider creates a Provider backed by an HTTP server hosting the
// exported web_data tree. Panics if baseURL is empty.
//
// Parameters:
//   - baseURL: the root URL the web_data directory is served under
//   - opts: optional configuration such as WithHTTPClient
//
// Returns:
//   - Provider: the configured provider
func NewHTTPProvider(baseURL string, opts ...ProviderBuilderOption) Provider {
	if baseURL == "" {
		panic("provider: base URL is required")
	}
	p := &httpProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *httpProvider) FetchManifest(ctx context.Context, patientID string, mode Mode) (*Manifest, error) {
	path := fmt.Sprintf("%s/%s/metadata.json", dataRoot, mode.Folder(patientID))
	body, err := p.get(ctx, path)
	if err != nil {
		return nil, &ManifestError{PatientID: patientID, Mode: mode, Err: err}
	}
	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, &ManifestError{PatientID: patientID, Mode: mode, Err: fmt.Errorf("decode: %w", err)}
	}
	if len(m.Vertebrae) == 0 {
		return nil, &ManifestError{PatientID: patientID, Mode: mode, Err: fmt.Errorf("no vertebrae entries")}
	}
	return &m, nil
}

func (p *httpProvider) FetchMesh(ctx context.Context, file string) (*MeshPayload, error) {
	body, err := p.get(ctx, file)
	if err != nil {
		return nil, err
	}
	var payload MeshPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{File: file, Reason: "decode", Err: err}
	}
	if err := payload.Validate(file); err != nil {
		return nil, err
	}
	return &payload, nil
}

// get performs one GET and returns the response body. Non-200 statuses and
// transport failures surface as *FetchError.
func (p *httpProvider) get(ctx context.Context, path string) ([]byte, error) {
	url := p.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{File: path, Err: err}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{File: path, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{File: path, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{File: path, Err: err}
	}
	return body, nil
}
