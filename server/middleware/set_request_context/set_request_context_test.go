// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/testpro/testpro/core/auth"
	"codeberg.org/testpro/testpro/server/middleware"
	"codeberg.org/testpro/testpro/server/request_context"
)

// TestNew_AttachesContext tests that request context is properly attached.
func TestNew_AttachesContext(t *testing.T) {
	t.Parallel()

	var rc *request_context.RequestContext

	handler := middleware.Wrap(New(auth.Anonymous{}), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc = request_context.FromRequest(r)

		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, rc)
	assert.NotEmpty(t, rc.RequestID)
	assert.Equal(t, http.StatusOK, rc.StatusCode)
	assert.NoError(t, rc.RequestError)
	assert.Equal(t, auth.Guest, rc.Auth)
}

// TestNew_UsesProvider verifies the provider's view reaches handlers.
func TestNew_UsesProvider(t *testing.T) {
	t.Parallel()

	want := auth.View{IsAuthenticated: true, User: &auth.User{Name: "Grace Hopper"}}
	provider := auth.ProviderFunc(func(*http.Request) auth.View { return want })

	var got auth.View

	handler := middleware.Wrap(New(provider), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = request_context.FromRequest(r).Auth
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, want, got)
	assert.Equal(t, "Grace", got.FirstName())
}

// TestNew_GeneratesUniqueRequestIDs tests that each request gets a unique ID.
func TestNew_GeneratesUniqueRequestIDs(t *testing.T) {
	t.Parallel()

	var (
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)

	handler := middleware.Wrap(New(nil), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids[request_context.FromRequest(r).RequestID] = struct{}{}
		mu.Unlock()
	}))

	for range 3 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	}

	assert.Len(t, ids, 3)
}

// TestNew_PreservesRequestData tests that original request data is preserved.
func TestNew_PreservesRequestData(t *testing.T) {
	t.Parallel()

	var method, path string

	handler := middleware.Wrap(New(nil), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/test", nil))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/test", path)
}
