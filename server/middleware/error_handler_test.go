// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/testpro/testpro/server/request_context"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	return req.WithContext(request_context.WithRequestContext(req.Context(), req, nil))
}

// TestCatchError_Success tests CatchError when handler succeeds.
func TestCatchError_Success(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"status": "success"}`))

		return err
	})

	req := createTestRequest(t, "/test")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "success"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	ctx := request_context.FromRequest(req)
	assert.NoError(t, ctx.RequestError)
	assert.Equal(t, http.StatusOK, ctx.StatusCode)
}

// TestCatchError_HandlerError tests CatchError when handler returns an error.
func TestCatchError_HandlerError(t *testing.T) {
	t.Parallel()

	testError := errors.New("test handler error")
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		_, _ = w.Write([]byte("partial output"))

		return testError
	})

	req := createTestRequest(t, "/test")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "partial output")
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, "Something went wrong", doc.Find("h1").Text())

	ctx := request_context.FromRequest(req)
	assert.ErrorIs(t, ctx.RequestError, testError)
	assert.Equal(t, http.StatusInternalServerError, ctx.StatusCode)
}

// TestCatchError_NotFound tests that a 404 is replaced with the themed page.
func TestCatchError_NotFound(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		http.NotFound(w, r)

		return nil
	})

	req := createTestRequest(t, "/missing?lang=es")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "404 page not found")
	assert.Contains(t, rr.Body.String(), `lang="es"`)
}

// TestCatchError_HandledError tests that an error with an error status keeps the handler's output.
func TestCatchError_HandledError(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("unsupported format"))

		return errors.New("bad format")
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t, "/dev/components?format=xml"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "unsupported format", rr.Body.String())
}
