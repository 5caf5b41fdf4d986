// package services implements HTTP clients for the two music catalogs
package services

import (
	"fmt"

	"crossfade/internal/shared"
)

// APIError describes a non-2xx response from a catalog API.
type APIError struct {
	Service string // "youtube" or "spotify"
	Status  int    // HTTP status code
	Detail  string // response detail when the API supplied one
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s API error: status %d", e.Service, e.Status)
}

// Unwrap makes APIError match [shared.ErrAPIRequest] via errors.Is.
func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// ClientFault reports whether the failure was a 4xx (client or auth) response
// rather than a 5xx or transport-level fault.
func (e *APIError) ClientFault() bool {
	return e.Status >= 400 && e.Status < 500
}
