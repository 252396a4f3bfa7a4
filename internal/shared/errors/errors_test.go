package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("Category name is required").WithCode("VAL001").WithDetail("field", "name").WithComponent("categories")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "Category name is required", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "categories", err.Component)
	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "Category name is required", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError("request failed").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "request failed: dial tcp: connection refused", err.Error())
}

func TestValidationErrors(t *testing.T) {
	ve := NewValidationErrors()
	assert.False(t, ve.HasErrors())
	assert.Nil(t, ve.ToAppError())

	ve.Add("tags", "Please provide at least one tag", nil)
	assert.True(t, ve.HasErrors())
	appErr := ve.ToAppError()
	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Please provide at least one tag", appErr.Message)
}

func TestClassification(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad")))
	assert.True(t, IsNetwork(NewNetworkError("down")))
	assert.True(t, IsServer(NewServerError("Email exists", 400)))
	assert.True(t, IsAuthentication(NewAuthenticationError("expired")))
	assert.True(t, IsAuthentication(fmt.Errorf("load: %w", ErrSessionNotFound)))
	assert.True(t, IsNotFound(NewNotFoundError("service")))
	assert.True(t, IsConflict(ErrBusy))

	wrapped := fmt.Errorf("delete: %w", NewServerError("nope", 400))
	assert.True(t, IsServer(wrapped))
	assert.False(t, IsNetwork(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("x")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(NewNetworkError("x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(NewAuthenticationError("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrBusy))
	assert.Equal(t, http.StatusPreconditionRequired, HTTPStatus(ErrNotConfirmed))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationErrors().Add("f", "m", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil, "Failed"))
	assert.Equal(t, "Invalid credentials", UserMessage(NewServerError("Invalid credentials", 401), "Login failed"))
	assert.Equal(t, "Login failed", UserMessage(NewServerError("", 500), "Login failed"))
	assert.Equal(t, "Failed to fetch users", UserMessage(NewNetworkError("timeout"), "Failed to fetch users"))
	assert.Equal(t, "Please fill in all fields", UserMessage(NewValidationError("Please fill in all fields"), "Login failed"))
	assert.Equal(t, "Session expired. Please login again.", UserMessage(NewAuthenticationError("401"), "x"))
	assert.Equal(t, ErrBusy.Error(), UserMessage(ErrBusy, "x"))
}
