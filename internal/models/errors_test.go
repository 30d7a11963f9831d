package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Not Found", NewNotFoundError("Prompt", 1), http.StatusNotFound},
		{"Validation", NewValidationError("bad input"), http.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"Forbidden", NewForbiddenError("admins only"), http.StatusForbidden},
		{"Conflict", NewConflictError("duplicate"), http.StatusConflict},
		{"Internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestRespondWithErrorHidesInternalDetail(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithAppError(c, NewInternalError(errors.New("pq: connection refused to 10.0.0.3")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "connection refused")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Empty(t, body.Details)
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}
