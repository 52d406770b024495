package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shift-planner-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{"validation", fmt.Errorf("bad input: %w", models.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", fmt.Errorf("nope: %w", models.ErrUnauthorized), http.StatusForbidden, "FORBIDDEN"},
		{"expired", fmt.Errorf("link: %w", models.ErrExpired), http.StatusGone, "EXPIRED"},
		{"invalid token", fmt.Errorf("link: %w", models.ErrInvalidToken), http.StatusBadRequest, "INVALID_TOKEN"},
		{"conflict", fmt.Errorf("dup: %w", models.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"already requested is a conflict", models.ErrAlreadyRequested, http.StatusConflict, "CONFLICT"},
		{"not found", fmt.Errorf("doc: %w", models.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteDomainError(rec, tt.err)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantTag, resp.Error.Code)
		})
	}
}

func TestWriteSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessResponse(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestGetQueryParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/invite?orgId=abc", nil)
	assert.Equal(t, "abc", GetQueryParam(r, "orgId", ""))
	assert.Equal(t, "fallback", GetQueryParam(r, "token", "fallback"))
}
