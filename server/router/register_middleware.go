// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/testpro/testpro/server/middleware"
	"codeberg.org/testpro/testpro/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain.
func (router *Router) RegisterMiddleware() error {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)

	if router.opts.Compress {
		compress, err := middleware.NewCompress()
		if err != nil {
			return err
		}

		router.Use(compress)
	}

	router.Use(middleware.NormalizeURL)                       // trailing slashes and locale prefixes
	router.Use(set_request_context.New(router.opts.Provider)) // needed for everything else
	router.Use(middleware.SetResponseHeaders)                 // all pages need this

	if router.opts.Limiter != nil {
		router.Use(router.opts.Limiter.Evaluate)
	}

	return nil
}
