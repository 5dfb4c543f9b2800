package provider

import "net/http"

// ProviderBuilderOption is a functional option for configuring a Provider via NewHTTPProvider.
type ProviderBuilderOption func(*httpProvider)

// WithHTTPClient is an option builder that sets the HTTP client used for all
// requests, replacing the default 30 second timeout client.
//
// Parameters:
//   - c: the http client instance
//
// Returns:
//   - ProviderBuilderOption: a function that applies the client option to a provider
func WithHTTPClient(c *http.Client) ProviderBuilderOption {
	return func(p *httpProvider) {
		if c != nil {
			p.client = c
		}
	}
}
