package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownSource", ErrUnknownSource},
		{"ErrInvalidSchedule", ErrInvalidSchedule},
		{"ErrDuplicateSource", ErrDuplicateSource},
		{"ErrCoordinatorFault", ErrCoordinatorFault},
		{"ErrNoResults", ErrNoResults},
		{"ErrArchiveUnavailable", ErrArchiveUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoResults_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("today: %w", ErrNoResults)

	assert.True(t, errors.Is(wrapped, ErrNoResults))
	assert.False(t, errors.Is(wrapped, ErrCoordinatorFault))
}
