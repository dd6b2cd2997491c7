// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// compressMinSize is the smallest body worth compressing, in bytes.
const compressMinSize = 1024

var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/json",
	"application/yaml",
	"image/svg+xml",
}

// NewCompress returns a middleware that gzips responses for clients that
// accept it.
func NewCompress() (Middleware, error) {
	wrap, err := gzhttp.NewWrapper(
		gzhttp.MinSize(compressMinSize),
		gzhttp.ContentTypes(compressibleTypes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		wrap(next).ServeHTTP(w, r)
	}, nil
}
