package model

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ErrTodoNotFound, http.StatusNotFound, "TODO_NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrConflict, http.StatusConflict, "CONFLICT"},
		{ErrUpstream, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := CodeOf(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)

			// Wrapping must not change the mapping
			status, code = CodeOf(fmt.Errorf("context: %w", tt.err))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
