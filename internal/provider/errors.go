package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxSnippet caps how much of a response body is carried into an error.
const maxSnippet = 500

// ProviderError is a non-2xx response from the provider.
type ProviderError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *ProviderError) Error() string {
	prefix := fmt.Sprintf("HTTP %d", e.Status)
	if e.StatusText != "" {
		prefix += " " + e.StatusText
	}
	if e.Message == "" {
		return prefix
	}
	return prefix + ": " + e.Message
}

// MalformedBodyError is a 2xx response whose body is not JSON. It is kept
// apart from ProviderError: the request was accepted, the reply is unusable.
type MalformedBodyError struct {
	Status  int
	Snippet string
	Err     error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("provider returned a non-JSON response (HTTP %d): %s", e.Status, e.Snippet)
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}

// TransportError is a failure to get any HTTP response at all (DNS,
// connection refused, TLS, cancelled context).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to provider failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// newProviderError builds a ProviderError from a failed response, preferring
// the provider's own message over the raw body.
func newProviderError(status int, statusText string, body []byte) *ProviderError {
	return &ProviderError{
		Status:     status,
		StatusText: statusText,
		Message:    errorMessage(body),
	}
}

func errorMessage(body []byte) string {
	var parsed struct {
		Error   *ErrorBody `json:"error"`
		Message string     `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return snippet(body)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippet {
		s = s[:maxSnippet]
	}
	return s
}
