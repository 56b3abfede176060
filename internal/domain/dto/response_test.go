package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeNotFound, "Simulation not found")

	assert.Equal(t, ErrCodeNotFound, err.Error)
	assert.Equal(t, "Simulation not found", err.Message)
	assert.NotZero(t, err.Timestamp)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeConflict, "Another item is selected")
	err = err.WithRequestID("tab-7f3a-move-42")

	assert.Equal(t, "tab-7f3a-move-42", err.RequestID)
	assert.Equal(t, ErrCodeConflict, err.Error)
	assert.Equal(t, "Another item is selected", err.Message)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		expectedCode string
	}{
		{"bad request", 400, ErrCodeInvalidRequest},
		{"unauthorized", 401, ErrCodeUnauthorized},
		{"forbidden", 403, ErrCodeForbidden},
		{"not found", 404, ErrCodeNotFound},
		{"conflict", 409, ErrCodeConflict},
		{"rate limited", 429, ErrCodeRateLimit},
		{"internal error", 500, ErrCodeInternal},
		{"bad gateway", 502, ErrCodeInternal},
		{"unavailable", 503, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}
