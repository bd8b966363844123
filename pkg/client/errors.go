package client

import "fmt"

// APIError is the base error for failed CapyDB API requests.
type APIError struct {
	StatusCode int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("capydb: %s (code %d)", e.Message, e.StatusCode)
}

// AuthenticationError is returned for credential problems (HTTP 401).
type AuthenticationError struct {
	APIError
}

// ClientRequestError is returned for requests the server rejected as
// malformed or invalid (HTTP 4xx other than 401).
type ClientRequestError struct {
	APIError
}

// ServerError is returned for server-side failures (HTTP 5xx).
type ServerError struct {
	APIError
}

// newAPIError maps a response status code onto the error taxonomy.
func newAPIError(statusCode int, message string) error {
	base := APIError{StatusCode: statusCode, Message: message}
	switch {
	case statusCode == 401:
		return &AuthenticationError{APIError: base}
	case statusCode >= 400 && statusCode < 500:
		return &ClientRequestError{APIError: base}
	default:
		return &ServerError{APIError: base}
	}
}
