// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/assets/views"
	"codeberg.org/testpro/testpro/i18n"
	"codeberg.org/testpro/testpro/server/request_context"
)

// ErrorPage writes the status code from the request context and renders the
// themed error page for it.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)
	ctx := r.Context()

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := views.ErrorData{StatusCode: rc.StatusCode}

	switch rc.StatusCode {
	case http.StatusNotFound:
		data.Title = i18n.Tr(ctx, "Page not found")
		data.Message = i18n.Tr(ctx, "The page you are looking for does not exist.")
	default:
		data.Title = i18n.Tr(ctx, "Something went wrong")
		data.Message = i18n.Tr(ctx, "An unexpected error occurred. Please try again later.")
	}

	w.WriteHeader(rc.StatusCode)

	if err := views.Error(data).Render(ctx, w); err != nil {
		log.Err(err).
			Str("request_id", rc.RequestID).
			Msg("Failed to render error page")
	}
}

// NotFound is the fallback handler for unmatched paths.
func NotFound(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNotFound)

	return nil
}
