package cerr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiMiddlewareWritesResponse(t *testing.T) {
	handler := NewJSONResponseChiMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetJSONResponse(r.Context(), map[string]string{"status": "ok"})
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChiMiddlewareWritesError(t *testing.T) {
	handler := NewJSONResponseChiMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetNewJSONError(r.Context(), NotFound, "project not found", nil)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NotFound","message":"project not found"}`, rec.Body.String())
}

func TestErrorWrapping(t *testing.T) {
	underlying := errors.New("disk full")
	err := NewError(Internal, "server error", underlying)

	require.ErrorIs(t, err, underlying)
	assert.True(t, IsCode(err, Internal))
	assert.False(t, IsCode(err, NotFound))
	assert.Equal(t, "[Internal] server error: disk full", err.Error())
	assert.NotEmpty(t, err.Stack)

	notFound := NewError(NotFound, "project not found", nil)
	assert.Empty(t, notFound.Stack)
	assert.Equal(t, http.StatusNotFound, notFound.Code.HTTPCode())
}
