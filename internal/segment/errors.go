package segment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
)

// Kind identifies the failure class of an APIError. The stable code and
// retryability are derived from it and are never set independently.
type Kind int

const (
	KindGeneric Kind = iota
	KindRateLimited
	KindUnauthenticated
	KindNotFound
	KindInvalidInput
	KindMissingCredential
)

// String returns the kind name used in log records.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "RateLimited"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindNotFound:
		return "NotFound"
	case KindInvalidInput:
		return "InvalidInput"
	case KindMissingCredential:
		return "MissingCredential"
	default:
		return "Generic"
	}
}

// defaultRetryAfterSeconds applies when a 429 response omits Retry-After
// or sends a value that is not a non-negative integer.
const defaultRetryAfterSeconds = 60

// APIError is the single error type produced by classification. The Kind
// field is a closed set, so callers can switch over it exhaustively
// instead of walking a type hierarchy.
type APIError struct {
	Kind    Kind
	Message string

	// StatusCode is the HTTP status that produced the error. Zero for
	// failures raised before or outside an HTTP exchange.
	StatusCode int

	// RetryAfterSeconds is populated for KindRateLimited only.
	RetryAfterSeconds int

	// Details maps field names to violation messages for KindInvalidInput.
	Details map[string][]string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil APIError>"
	}
	return e.Message
}

// Code returns the stable machine-readable identifier for the error kind.
func (e *APIError) Code() string {
	switch e.Kind {
	case KindRateLimited:
		return "RATE_LIMIT_EXCEEDED"
	case KindUnauthenticated:
		return "AUTHENTICATION_FAILED"
	case KindNotFound:
		return "RESOURCE_NOT_FOUND"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindMissingCredential:
		return "MISSING_CREDENTIALS"
	default:
		return "API_ERROR"
	}
}

// Retryable reports whether the failure is safe to retry unchanged. It is
// a pure function of the kind: only rate limiting is retryable. Nothing in
// this package acts on the flag; it is advisory metadata for callers.
func (e *APIError) Retryable() bool {
	return e.Kind == KindRateLimited
}

// LogRecord flattens the error into a map for structured logging and for
// the error envelope returned to tool callers. Never used for control flow.
func (e *APIError) LogRecord() map[string]any {
	rec := map[string]any{
		"name":      e.Kind.String() + "Error",
		"message":   e.Message,
		"code":      e.Code(),
		"retryable": e.Retryable(),
	}
	if e.StatusCode != 0 {
		rec["statusCode"] = e.StatusCode
	}
	if e.Kind == KindRateLimited {
		rec["retryAfterSeconds"] = e.RetryAfterSeconds
	}
	if e.Kind == KindInvalidInput && len(e.Details) > 0 {
		rec["details"] = e.Details
	}
	return rec
}

// Classify maps a non-2xx HTTP response to an APIError. It never fails:
// malformed bodies degrade to a generic message carrying the status code.
func Classify(statusCode int, header http.Header, body []byte) *APIError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		secs := parseRetryAfter(header)
		return &APIError{
			Kind:              KindRateLimited,
			StatusCode:        statusCode,
			Message:           fmt.Sprintf("rate limit exceeded, retry after %d seconds", secs),
			RetryAfterSeconds: secs,
		}
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &APIError{
			Kind:       KindUnauthenticated,
			StatusCode: statusCode,
			Message:    "authentication failed, check the configured Segment credentials",
		}
	default:
		return &APIError{
			Kind:       KindGeneric,
			StatusCode: statusCode,
			Message:    messageFromBody(statusCode, body),
		}
	}
}

// parseRetryAfter reads Retry-After as integer seconds. HTTP-date values
// and garbage both fall back to the default.
func parseRetryAfter(header http.Header) int {
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return defaultRetryAfterSeconds
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return defaultRetryAfterSeconds
	}
	return secs
}

// messageFromBody extracts a human-readable message from an upstream error
// body, trying errors[0].message, then message, then error.
func messageFromBody(statusCode int, body []byte) string {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			return payload.Errors[0].Message
		}
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}

// NewNotFound builds the NotFound error raised when a lookup by ID comes
// back empty.
func NewNotFound(entityType, id string) *APIError {
	return &APIError{
		Kind:       KindNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with ID '%s' not found", entityType, id),
	}
}

// NewMissingCredential builds the error raised when the credential needed
// for the selected API surface is absent. It is always raised before a
// request is sent; callers can assert that no network call was made.
func NewMissingCredential(credential string) *APIError {
	return &APIError{
		Kind:    KindMissingCredential,
		Message: fmt.Sprintf("missing credential: %s is not configured (required for the Authorization header)", credential),
	}
}

// NewInvalidInput builds a local validation error. Details maps field
// names to their violation messages.
func NewInvalidInput(message string, details map[string][]string) *APIError {
	return &APIError{
		Kind:    KindInvalidInput,
		Message: message,
		Details: details,
	}
}

// IsRetryable reports whether an error is safe to retry unchanged: rate
// limiting, or a transport failure indicating a timeout, a reset or
// refused connection, or an unreachable network. Every other error,
// including all 4xx classifications, is non-retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	switch {
	case errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}
	return false
}
