package classify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/image-gen-mcp/internal/provider"
)

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		contains string
		aborts   bool
	}{
		{"401", &provider.ProviderError{Status: 401, StatusText: "Unauthorized"}, KindAuth, "invalid API key", true},
		{"403", &provider.ProviderError{Status: 403}, KindForbidden, "access forbidden", true},
		{"429", &provider.ProviderError{Status: 429}, KindRateLimit, "Rate limit", false},
		{"400", &provider.ProviderError{Status: 400, Message: "prompt flagged"}, KindBadRequest, "Request rejected: prompt flagged", false},
		{"500", &provider.ProviderError{Status: 500}, KindServer, "retry later", false},
		{"503", &provider.ProviderError{Status: 503}, KindServer, "Provider internal error", false},
		{"404", &provider.ProviderError{Status: 404, StatusText: "Not Found", Message: "no such model"}, KindHTTP, "HTTP 404 Not Found: no such model", false},
		{"network", &provider.TransportError{Err: errors.New("dial tcp: connection refused")}, KindNetwork, "Network error", false},
		{"malformed", &provider.MalformedBodyError{Status: 200, Snippet: "<html>"}, KindUnexpected, "Unexpected error: provider returned a non-JSON response", false},
		{"other", errors.New("boom"), KindUnexpected, "Unexpected error: boom", false},
		{"canceled", context.Canceled, KindCanceled, "cancelled", true},
		{"canceled in transport", &provider.TransportError{Err: fmt.Errorf("post: %w", context.Canceled)}, KindCanceled, "cancelled", true},
		{"deadline in transport", &provider.TransportError{Err: context.DeadlineExceeded}, KindNetwork, "Network error", false},
		{"deadline", context.DeadlineExceeded, KindCanceled, "deadline exceeded", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Contains(t, c.Message, tt.contains)
			assert.Equal(t, tt.aborts, c.AbortsBatch())
		})
	}
}

func TestClassify_Wrapped(t *testing.T) {
	err := fmt.Errorf("prompt 2: %w", &provider.ProviderError{Status: 401})
	assert.Equal(t, KindAuth, Classify(err).Kind)
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure("Authentication failed: invalid API key"))
	assert.True(t, IsAuthFailure("request rejected: AUTHENTICATION FAILED upstream"))
	assert.False(t, IsAuthFailure("Rate limit reached"))
	assert.False(t, IsAuthFailure(""))
}
