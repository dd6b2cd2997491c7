// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/assets/views"
	"codeberg.org/testpro/testpro/i18n"
)

// excludedPaths are served without consuming tokens.
var excludedPaths = []string{"/css/", "/js/", "/icons/"}

// Evaluate is the limiter middleware.
//
// Requests over the limit receive 429 with a Retry-After header.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	for _, p := range excludedPaths {
		if strings.HasPrefix(r.URL.Path, p) {
			next.ServeHTTP(w, r)

			return
		}
	}

	addr, err := getClientIP(r)
	if err != nil {
		log.Warn().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Msg("Could not determine client IP, not rate limiting")

		next.ServeHTTP(w, r)

		return
	}

	if l.Allow(addr) {
		next.ServeHTTP(w, r)

		return
	}

	log.Warn().
		Str("ip", addr.String()).
		Str("network", getNetwork(addr, l.ipv4Prefix, l.ipv6Prefix).String()).
		Msg("Rate limit exceeded")

	retryAfter := 1
	if l.limit > 0 {
		retryAfter = max(1, int(1/float64(l.limit)))
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)

	ctx := r.Context()

	message := i18n.TrN(ctx,
		"Please slow down and try again in {{.Count}} second.",
		"Please slow down and try again in {{.Count}} seconds.",
		retryAfter, "Count", retryAfter)

	if err := views.Error(views.ErrorData{
		StatusCode: http.StatusTooManyRequests,
		Title:      i18n.Tr(ctx, "Too many requests"),
		Message:    message,
	}).Render(ctx, w); err != nil {
		log.Err(err).Msg("Failed to render rate limit page")
	}
}
