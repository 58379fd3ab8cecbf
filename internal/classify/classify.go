// Package classify maps generation failures to user-facing messages.
package classify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ironsheep/image-gen-mcp/internal/provider"
)

// Kind is the category of a failure.
type Kind string

// Failure categories.
const (
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindRateLimit  Kind = "rate_limit"
	KindBadRequest Kind = "bad_request"
	KindServer     Kind = "server"
	KindHTTP       Kind = "http"
	KindNetwork    Kind = "network"
	KindUnexpected Kind = "unexpected"
	KindCanceled   Kind = "canceled"
)

// authMarker is matched case-insensitively against classified messages.
const authMarker = "authentication failed"

// Classified is a categorized failure.
type Classified struct {
	Kind    Kind
	Message string
}

func (c Classified) String() string {
	return c.Message
}

// AbortsBatch reports whether the failure should stop the remaining items
// of a batch: credential failures and cancelled calls.
func (c Classified) AbortsBatch() bool {
	return c.Kind == KindCanceled || IsAuthFailure(c.Message)
}

// Classify categorizes err.
func Classify(err error) Classified {
	if err == nil {
		return Classified{Kind: KindUnexpected, Message: "Unexpected error: unknown failure"}
	}

	var pe *provider.ProviderError
	if errors.As(err, &pe) {
		return classifyStatus(pe)
	}

	if errors.Is(err, context.Canceled) {
		return Classified{Kind: KindCanceled, Message: "Request cancelled before completion"}
	}

	var te *provider.TransportError
	if errors.As(err, &te) {
		return Classified{Kind: KindNetwork, Message: fmt.Sprintf("Network error: unable to reach the image provider (%v)", te.Err)}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Classified{Kind: KindCanceled, Message: "Request deadline exceeded before completion"}
	}

	return Classified{Kind: KindUnexpected, Message: "Unexpected error: " + err.Error()}
}

func classifyStatus(pe *provider.ProviderError) Classified {
	switch {
	case pe.Status == http.StatusUnauthorized:
		return Classified{Kind: KindAuth, Message: "Authentication failed: invalid API key"}
	case pe.Status == http.StatusForbidden:
		return Classified{Kind: KindForbidden, Message: "Authentication failed: access forbidden, check that the API key has access to this model"}
	case pe.Status == http.StatusTooManyRequests:
		return Classified{Kind: KindRateLimit, Message: "Rate limit reached, try again later"}
	case pe.Status == http.StatusBadRequest:
		msg := "Request rejected"
		if pe.Message != "" {
			msg += ": " + pe.Message
		}
		return Classified{Kind: KindBadRequest, Message: msg}
	case pe.Status >= 500:
		return Classified{Kind: KindServer, Message: "Provider internal error, retry later"}
	default:
		return Classified{Kind: KindHTTP, Message: pe.Error()}
	}
}

// IsAuthFailure reports whether a classified message denotes a credential
// failure.
func IsAuthFailure(message string) bool {
	return strings.Contains(strings.ToLower(message), authMarker)
}
