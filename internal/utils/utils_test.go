package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleContext(t *testing.T) {
	_, ok := RoleFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RoleFromContext(WithRole(context.Background(), ""))
	assert.False(t, ok)

	role, ok := RoleFromContext(WithRole(context.Background(), "admin"))
	assert.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]int{"inserted": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"inserted":3}`, w.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad request", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad request"}`, w.Body.String())
}
