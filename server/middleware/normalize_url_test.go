// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/dev/components",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/dev/components/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/dev/components",
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/dev/components/?format=json",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/dev/components?format=json",
		},
		{
			name:             "Locale prefix alone redirects to root",
			requestURL:       "/es",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/?lang=es",
		},
		{
			name:             "Locale prefix with trailing slash redirects to root",
			requestURL:       "/es/",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/?lang=es",
		},
		{
			name:             "Locale prefix keeps the remaining path and query",
			requestURL:       "/es/dev/components?format=json",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/dev/components?format=json&lang=es",
		},
		{
			name:             "Locale prefix overrides an existing lang parameter",
			requestURL:       "/en/?lang=es",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/?lang=en",
		},
		{
			name:             "Unknown locale is left alone",
			requestURL:       "/fr/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/fr",
		},
		{
			name:             "Redirects never leave the host",
			requestURL:       "//evil.example/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/evil.example",
		},
		{
			name:             "Locale redirects never leave the host",
			requestURL:       "/es//evil.example",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/evil.example?lang=es",
		},
		{
			name:           "Non-locale segment is left alone",
			requestURL:     "/css/landing.css",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := Wrap(NormalizeURL, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.requestURL, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false},
		{"/dev", false},
		{"/dev/", true},
		{"/dev/components/", true},
		{"/dev/components", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, hasTrailingSlash(httptest.NewRequest(http.MethodGet, tt.path, nil)))
		})
	}
}

func TestLocalePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		locale string
		rest   string
		ok     bool
	}{
		{"/es", "es", "/", true},
		{"/es/", "es", "/", true},
		{"/es/a/b", "es", "/a/b", true},
		{"/en/x", "en", "/x", true},
		{"/", "", "", false},
		{"/fr/x", "", "", false},
		{"/css/x", "", "", false},
		{"/dev", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			locale, rest, ok := localePrefix(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.locale, locale)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
