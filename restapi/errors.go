package restapi

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when the access token is rejected and the
// refresh attempt fails too. Callers are expected to force a re-login.
var ErrSessionExpired = errors.New("restapi: session expired")

// APIError is a non-2xx response from the backend. The backend sends a
// machine code plus a human message; the HTTP status is filled in by the
// client.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
