// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/testpro/testpro/config"
	"codeberg.org/testpro/testpro/server/assets"
	"codeberg.org/testpro/testpro/server/middleware"
	"codeberg.org/testpro/testpro/server/routes"
)

// DefineRoutes sets up all the routes for the application.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)
	router.Handle("GET /js/", fileServerHandler)
	router.Handle("GET /icons/", fileServerHandler)

	if router.opts.Development {
		router.HandleFunc("GET /dev/components", middleware.CatchError(routes.ComponentsPage))

		registerDebugRoutes(router)
	}

	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.LandingPage(router.opts.Cache)))

	router.HandleFunc("/", middleware.CatchError(routes.NotFound))
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))

	return func(w http.ResponseWriter, r *http.Request) {
		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// go:embed requires rebuilding when files change, so a per-instance
		// cache ID makes browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", `"`+config.Global.Instance.FileServerCacheID+`"`)
		fileServer.ServeHTTP(w, r)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	if !flightRecorder.Enabled() {
		if err := flightRecorder.Start(); err != nil {
			panic(err)
		}
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
