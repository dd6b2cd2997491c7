// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/config"
	"codeberg.org/testpro/testpro/core/audit"
	"codeberg.org/testpro/testpro/server/request_context"
	"codeberg.org/testpro/testpro/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// The handler's output is buffered using an httptest.ResponseRecorder and any
// returned error is stored in the request context. Then:
//   - If the handler returned an error without writing an HTTP error status
//     code (status < 400), the buffered response is discarded and a 500 error
//     page is rendered.
//   - If the handler wrote a 404 Not Found status, the buffered response is
//     also discarded and replaced with the themed error page.
//   - Otherwise the buffered response is written to the client.
//
// Finally, it logs the completed request through an audit span.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Route:     r.Pattern,
			RequestID: ctx.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))

		recorder := httptest.NewRecorder()

		ctx.RequestError = handler(recorder, r)

		switch {
		case (ctx.RequestError != nil && recorder.Code < http.StatusBadRequest) || recorder.Code == http.StatusNotFound:
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			} else {
				ctx.StatusCode = http.StatusInternalServerError
			}

			counter := &countingWriter{ResponseWriter: w}

			routes.ErrorPage(counter, r)

			span.Size = counter.n

		default:
			ctx.StatusCode = recorder.Code

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			span.Size = recorder.Body.Len()

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.End()

		span.StatusCode = ctx.StatusCode
		span.CacheHit = ctx.CacheHit
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// countingWriter counts body bytes written through it.
type countingWriter struct {
	http.ResponseWriter

	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.ResponseWriter.Write(p)
	c.n += n

	return n, err
}
