// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/testpro/testpro/assets/views"
	"codeberg.org/testpro/testpro/config"
	"codeberg.org/testpro/testpro/core/landing"
	"codeberg.org/testpro/testpro/core/pagecache"
	"codeberg.org/testpro/testpro/server/request_context"
)

// LandingPage returns the handler for GET /. A nil cache renders every request.
//
// Each response is the first paint of a fresh [landing.Lifecycle], so the hero
// is served Unmounted and /js/mount.js performs the Ready transition in the
// browser.
//
// Rendered bodies are cached per pagecache.Key. Anonymous responses are
// publicly cacheable; authenticated ones carry the user's name and are not.
func LandingPage(cache *pagecache.Cache) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		rc := request_context.FromRequest(r)

		key := pagecache.Key{
			Path:          r.URL.Path,
			Locale:        rc.T.String(),
			Authenticated: rc.Auth.IsAuthenticated,
			FirstName:     rc.Auth.FirstName(),
			Instrument:    config.Global.Development.Instrument,
		}

		setLandingHeaders(w, rc.Auth.IsAuthenticated)

		if cache != nil {
			if body, ok := cache.Get(key); ok {
				rc.CacheHit = true

				_, err := w.Write(body)

				return err
			}
		}

		var (
			buf bytes.Buffer
			lc  landing.Lifecycle
		)

		// Only a completed first paint is cached.
		if cache != nil {
			lc.OnReady(func() { cache.Add(key, buf.Bytes()) })
		}

		err := views.Landing(views.LandingData{
			Phase:      lc.Phase(),
			Auth:       rc.Auth,
			Links:      views.Links(config.Global.Links),
			Instrument: key.Instrument,
		}).Render(r.Context(), &buf)
		if err != nil {
			return fmt.Errorf("rendering landing page: %w", err)
		}

		lc.Ready()

		_, err = buf.WriteTo(w)

		return err
	}
}

func setLandingHeaders(w http.ResponseWriter, authenticated bool) {
	h := w.Header()

	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Add("Vary", "Cookie")
	h.Add("Vary", "Accept-Language")

	if authenticated {
		h.Set("Cache-Control", "private, no-store")

		return
	}

	h.Set("Cache-Control", publicCacheControl(
		config.Global.HTTPCache.MaxAge,
		config.Global.HTTPCache.StaleWhileRevalidate,
	))
}

func publicCacheControl(maxAge, staleWhileRevalidate time.Duration) string {
	v := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	if staleWhileRevalidate > 0 {
		v += ", stale-while-revalidate=" + strconv.Itoa(int(staleWhileRevalidate.Seconds()))
	}

	return v
}
