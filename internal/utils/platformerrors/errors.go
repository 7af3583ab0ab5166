// Package platformerrors provides layered, typed errors shared by every
// layer of the service. Each error carries the layer it originated from, a
// stable error type used for HTTP status mapping, and a short code that
// pinpoints the exact raise site in logs and client reports.
package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Layer identifies where in the stack an error was raised.
type Layer string

const (
	LayerRoute          Layer = "route"
	LayerService        Layer = "service"
	LayerRepository     Layer = "repository"
	LayerInfrastructure Layer = "infrastructure"
)

// ErrorType classifies an error for status mapping and client behavior.
type ErrorType string

const (
	// ErrorTypeNotFound covers absent, soft-deleted and foreign-owned
	// resources alike; callers cannot distinguish the three.
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeBadReference  ErrorType = "bad_reference"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeDatabaseError ErrorType = "database_error"
	ErrorTypeInternal      ErrorType = "internal"
)

type requestIDKey struct{}

// WithRequestID stores the request id on the context so errors raised deeper
// in the stack can carry it back out.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id previously stored with
// WithRequestID, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// PlatformError is the error value produced by NewError.
type PlatformError struct {
	layer     Layer
	errorType ErrorType
	message   string
	cause     error
	uuid      string
	requestID string
}

// NewError creates a PlatformError. The uuid argument is the stable raise-site
// code (for example "message-update-notfound-001"), not a generated value.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, cause error, uuid string) *PlatformError {
	return &PlatformError{
		layer:     layer,
		errorType: errorType,
		message:   message,
		cause:     cause,
		uuid:      uuid,
		requestID: RequestIDFromContext(ctx),
	}
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.layer, e.errorType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.layer, e.errorType, e.message)
}

// Unwrap returns the underlying cause.
func (e *PlatformError) Unwrap() error { return e.cause }

// GetLayer returns the layer the error was raised in.
func (e *PlatformError) GetLayer() Layer { return e.layer }

// GetErrorType returns the error classification.
func (e *PlatformError) GetErrorType() ErrorType { return e.errorType }

// GetMessage returns the short human-readable message.
func (e *PlatformError) GetMessage() string { return e.message }

// GetUUID returns the raise-site code.
func (e *PlatformError) GetUUID() string { return e.uuid }

// GetRequestID returns the request id captured when the error was raised.
func (e *PlatformError) GetRequestID() string { return e.requestID }

// ErrorTypeToHTTPStatus maps an ErrorType to the outward HTTP status.
func ErrorTypeToHTTPStatus(t ErrorType) int {
	switch t {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeValidation, ErrorTypeBadReference:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// IsType reports whether err is (or wraps) a PlatformError of the given type.
func IsType(err error, t ErrorType) bool {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.errorType == t
	}
	return false
}
