package dokploy

import (
	"fmt"
	"net/http"
)

// AuthError reports that Dokploy rejected the API key.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("API Error: %d %s: check that the API key is valid", e.Status, http.StatusText(e.Status))
}

// HTTPError reports any other non-2xx response.
type HTTPError struct {
	Status     int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.Status, e.StatusText)
}

// NetworkError reports that the request never produced a response:
// DNS failure, refused connection, timeout or cancellation.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Status: resp.StatusCode}
	}
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		text = resp.Status
	}
	return &HTTPError{Status: resp.StatusCode, StatusText: text}
}
