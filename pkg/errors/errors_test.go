package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("server selection timeout")

	assert.Equal(t, "validation failed: edad - must be a number", NewValidationError("edad", "must be a number").Error())
	assert.Equal(t, "validation failed: invalid argument", ErrInvalidInput.Error())
	assert.Equal(t, "Usuario no encontrado", NewNotFoundError("user", "Usuario no encontrado").Error())
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "failed to connect: server selection timeout", NewConnectionError("failed to connect", cause).Error())
	assert.Equal(t, "failed to connect", NewConnectionError("failed to connect", nil).Error())
	assert.Equal(t, "insert failed: server selection timeout", NewInternalError("insert failed", cause).Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, NewConnectionError("connect", cause), cause)
	assert.ErrorIs(t, NewInternalError("query", cause), cause)
	assert.ErrorIs(t, WrapValidationError("cc", cause), cause)
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: NewNotFoundError("user", ""), want: "not_found"},
		{name: "wrapped not found", err: fmt.Errorf("delete: %w", NewNotFoundError("user", "")), want: "not_found"},
		{name: "validation", err: NewValidationError("edad", "bad"), want: "validation_error"},
		{name: "connection", err: NewConnectionError("connect", nil), want: "connection_error"},
		{name: "internal", err: NewInternalError("query", nil), want: "internal_error"},
		{name: "plain", err: errors.New("plain"), want: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewConnectionError("connect", nil))

	assert.True(t, IsConnection(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}
