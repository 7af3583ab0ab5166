package platformerrors_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"promptkeep/services/message-api/internal/utils/platformerrors"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := []struct {
		errorType platformerrors.ErrorType
		want      int
	}{
		{platformerrors.ErrorTypeNotFound, http.StatusNotFound},
		{platformerrors.ErrorTypeConflict, http.StatusConflict},
		{platformerrors.ErrorTypeValidation, http.StatusBadRequest},
		{platformerrors.ErrorTypeBadReference, http.StatusBadRequest},
		{platformerrors.ErrorTypeUnauthorized, http.StatusUnauthorized},
		{platformerrors.ErrorTypeDatabaseError, http.StatusInternalServerError},
		{platformerrors.ErrorTypeInternal, http.StatusInternalServerError},
		{platformerrors.ErrorType("unknown"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := platformerrors.ErrorTypeToHTTPStatus(tc.errorType); got != tc.want {
			t.Errorf("ErrorTypeToHTTPStatus(%q) = %d, want %d", tc.errorType, got, tc.want)
		}
	}
}

func TestNewErrorCarriesRequestID(t *testing.T) {
	ctx := platformerrors.WithRequestID(context.Background(), "req-123")
	err := platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeNotFound, "message not found", nil, "test-001")
	if err.GetRequestID() != "req-123" {
		t.Errorf("GetRequestID() = %q, want %q", err.GetRequestID(), "req-123")
	}
	if err.GetUUID() != "test-001" {
		t.Errorf("GetUUID() = %q, want %q", err.GetUUID(), "test-001")
	}
	if err.GetErrorType() != platformerrors.ErrorTypeNotFound {
		t.Errorf("GetErrorType() = %q, want not_found", err.GetErrorType())
	}
}

func TestUnwrapAndIsType(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := platformerrors.NewError(context.Background(), platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "persona name already in use", cause, "test-002")

	wrapped := error(err)
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is did not find the cause")
	}
	if !platformerrors.IsType(wrapped, platformerrors.ErrorTypeConflict) {
		t.Error("IsType(conflict) = false, want true")
	}
	if platformerrors.IsType(wrapped, platformerrors.ErrorTypeNotFound) {
		t.Error("IsType(not_found) = true, want false")
	}
	if platformerrors.IsType(errors.New("plain"), platformerrors.ErrorTypeConflict) {
		t.Error("IsType on plain error = true, want false")
	}
}
