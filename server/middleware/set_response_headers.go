// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync"

	"codeberg.org/testpro/testpro/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// TestPro-Version and TestPro-Revision are added dynamically in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"strict-origin-when-cross-origin"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Permissions-Policy":      {strings.Join(defaultPermissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join(csp, "; ") + ";"},
	}

	// The page loads its own stylesheet and mount script; the noscript
	// fallback and inline SVG need inline styles.
	csp = []string{
		"base-uri 'self'",
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"font-src 'self'",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
// Handlers may override Cache-Control.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	headers.Set("Cache-Control", cacheControlFor(r.URL.Path))
	headers.Set("TestPro-Version", config.BuildVersion)
	headers.Set("TestPro-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

var clearSiteDataOnce sync.Once

// invalidateCacheInDevelopment clears the browser cache on the first response
// after a restart.
func invalidateCacheInDevelopment(headers http.Header) {
	clearSiteDataOnce.Do(func() {
		headers.Set("Clear-Site-Data", `"cache"`)
	})
}

// cacheControlFor returns the default Cache-Control value for path.
func cacheControlFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/icons/"):
		// 1 month
		return "public, max-age=2592000"
	case strings.HasPrefix(path, "/js/"), strings.HasPrefix(path, "/css/"):
		// 1 week, revalidated through the ETag
		return "public, max-age=604800, must-revalidate"
	default:
		return "private, no-cache"
	}
}
