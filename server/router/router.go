// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"codeberg.org/testpro/testpro/core/auth"
	"codeberg.org/testpro/testpro/core/pagecache"
	"codeberg.org/testpro/testpro/server/middleware"
	"codeberg.org/testpro/testpro/server/middleware/limiter"
)

// Options are the dependencies handed to routes and middleware.
// Zero values disable the corresponding feature.
type Options struct {
	// Provider resolves the authentication view. nil means anonymous.
	Provider auth.Provider

	// Cache holds rendered landing pages.
	Cache *pagecache.Cache

	// Limiter rate limits per client network.
	Limiter *limiter.Limiter

	// Compress gzips responses.
	Compress bool

	// Development exposes /dev/components and the debug endpoints.
	Development bool
}

// Router wraps http.ServeMux and provides middleware chaining functionality.
type Router struct {
	*http.ServeMux

	opts        Options
	middlewares []middleware.Middleware
}

// NewRouter creates a new Router instance.
func NewRouter(opts Options) *Router {
	return &Router{
		ServeMux: http.NewServeMux(),
		opts:     opts,
	}
}

// New returns a router with routes and middleware registered.
func New(opts Options) (*Router, error) {
	router := NewRouter(opts)

	router.DefineRoutes()

	if err := router.RegisterMiddleware(); err != nil {
		return nil, err
	}

	return router, nil
}

// Use adds a middleware to the router's chain.
func (router *Router) Use(middleware middleware.Middleware) {
	router.middlewares = append(router.middlewares, middleware)
}

// runs router.middlewares[i] and every thereafter
func (router *Router) serve(i int, w http.ResponseWriter, r *http.Request) {
	if i < len(router.middlewares) {
		router.middlewares[i](w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			router.serve(i+1, w, r)
		}))
	} else {
		router.ServeMux.ServeHTTP(w, r)
	}
}

// runs all middleware
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.serve(0, w, r)
}
