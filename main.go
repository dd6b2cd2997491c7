// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
TestPro serves the marketing landing page of the TestPro website testing
platform.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/testpro/testpro/assets/components/ui"
	"codeberg.org/testpro/testpro/config"
	"codeberg.org/testpro/testpro/core/audit"
	"codeberg.org/testpro/testpro/core/auth"
	"codeberg.org/testpro/testpro/core/cookie"
	"codeberg.org/testpro/testpro/core/pagecache"
	"codeberg.org/testpro/testpro/i18n"
	"codeberg.org/testpro/testpro/server/assets"
	"codeberg.org/testpro/testpro/server/middleware/limiter"
	"codeberg.org/testpro/testpro/server/router"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

// embeddedContent holds our static web server content.
//
//go:embed assets/css assets/js assets/icons
//go:embed all:po
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run starts the server and blocks until ctx is done or the server fails.
//
//nolint:funlen
func run(ctx context.Context) error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	log.Info().
		Int("languages", len(i18n.Languages())).
		Msg("Initialized i18n engine")

	if err := ui.LoadIcons(assets.FS, ui.IconsDir); err != nil {
		return fmt.Errorf("failed to load icons: %w", err)
	}

	opts := router.Options{
		Provider:    authProvider(),
		Compress:    config.Global.Response.Compression,
		Development: config.Global.Development.InDevelopment,
	}

	if config.Global.Cache.Enabled {
		cache, err := pagecache.New(config.Global.Cache.Size, config.Global.Cache.Compress, config.Global.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to create page cache: %w", err)
		}

		opts.Cache = cache
	}

	if config.Global.Limiter.Enabled {
		opts.Limiter = limiter.New(limiter.OptionsFromConfig(&config.Global))
	}

	handler, err := router.New(opts)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	listener, err := listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	if opts.Limiter != nil {
		g.Go(func() error {
			opts.Limiter.Run(gctx)

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// authProvider returns the configured authentication provider.
func authProvider() auth.Provider {
	if config.Global.Auth.Provider == config.PasetoProvider {
		return auth.NewPasetoProvider(config.Global.Auth.Key, cookie.CookieName(config.Global.Auth.CookieName))
	}

	return auth.Anonymous{}
}
