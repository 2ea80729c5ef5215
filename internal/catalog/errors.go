package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyCollection signals that no scenes matched the spatial, temporal,
// and cloud-cover filters. A legitimate "no imagery available" outcome,
// not a failure.
var ErrEmptyCollection = errors.New("catalog: no matching scenes")

// apiError represents an error response from the catalog API.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("catalog: %s (status %d)", e.Message, e.StatusCode)
}

// AuthError is returned when the session handshake is rejected.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("catalog: authentication rejected (status %d)", e.StatusCode)
}

// ClientError wraps an internal failure for external consumers.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("catalog client: %s", e.Message)
}
