// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	defaultCacheTTLMinutes                      = 10
	defaultHTTPCacheMaxAgeSeconds               = 30
	defaultHTTPCacheStaleWhileRevalidateSeconds = 60

	// DefaultHost and DefaultPort are used when no listener is configured.
	DefaultHost = "localhost"
	DefaultPort = "8383"
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = DefaultHost
	cfg.Basic.Port = DefaultPort

	cfg.Auth.Provider = AnonymousProvider
	cfg.Auth.CookieName = "TestPro-Session"

	cfg.Links.Dashboard = "/dashboard"
	cfg.Links.Login = "/login"
	cfg.Links.Register = "/register"
	cfg.Links.Contact = "/contact"
	cfg.Links.Documentation = "/docs"
	cfg.Links.API = "/docs/api"
	cfg.Links.Support = "/support"

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 64
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute
	cfg.Cache.Compress = true

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Response.Compression = true

	cfg.Instance.RepoURL = "https://codeberg.org/testpro/testpro"

	cfg.Development.Instrument = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerMinute = 120
	cfg.Limiter.Burst = 30
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Internationalization.StrictMissingKeys = false
}
