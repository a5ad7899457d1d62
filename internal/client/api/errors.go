package api

import "fmt"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d", e.Status)
}

// Temporary reports whether retrying the same request may help.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 && e.Status != 501
}
