// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/testpro/testpro/core/auth"
	"codeberg.org/testpro/testpro/server/middleware"
	"codeberg.org/testpro/testpro/server/request_context"
)

// New returns a middleware that attaches a RequestContext to each HTTP
// request, reading the authentication view from provider.
func New(provider auth.Provider) middleware.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), r, provider)))
	}
}
