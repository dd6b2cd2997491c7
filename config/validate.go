// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/user"
	"regexp"
	"strconv"

	"aidanwoods.dev/go-paseto"
	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/server/utils"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errInvalidAuthProvider          = errors.New("invalid Auth.Provider")
	errPublicKeyRequired            = errors.New("auth.publicKey is required for the paseto provider")
	errPublicKeyInvalid             = errors.New("auth.publicKey is not a valid v4.public key")
	errEmptyCookieName              = errors.New("auth.cookieName cannot be empty")
	errInvalidCacheSize             = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidLogFormat             = errors.New("log.logFormat must be console or json")
	errInvalidRequestsPerMinute     = errors.New("limiter.requestsPerMinute must be positive")
	errInvalidBurst                 = errors.New("limiter.burst must be positive")
	errInvalidIPv4Prefix            = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix            = errors.New("IPv6 prefix must be between 0 and 128")
	errInvalidPassIP                = errors.New("invalid limiter pass list entry")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if err := cfg.validateAuth(); err != nil {
		return err
	}

	if err := cfg.validateLinks(); err != nil {
		return err
	}

	repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo")
	if err != nil {
		return fmt.Errorf("invalid repo URL: %w", err)
	}

	cfg.Instance.RepoURL = repoURL.String()

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return errInvalidLogFormat
	}

	if !cfg.Limiter.Enabled {
		return nil
	}

	return cfg.validateLimiter()
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = DefaultHost
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = DefaultPort
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	// Defaults give way to a configured socket.
	if cfg.Basic.Host == DefaultHost && cfg.Basic.Port == DefaultPort {
		cfg.Basic.Host, cfg.Basic.Port = "", ""
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	switch {
	case cfg.Basic.RawUnixSocketPermissions == "":
		cfg.Basic.UnixSocketPermissions = 0o666
	case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
		rawModeUint64, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

		cfg.Basic.UnixSocketPermissions = os.FileMode(rawModeUint64)
	case fileModeStringRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
		mode := os.FileMode(0)

		for i, c := range cfg.Basic.RawUnixSocketPermissions {
			if c != '-' {
				const bitsInByte = 8

				mode |= 1 << (bitsInByte - i)
			}
		}

		cfg.Basic.UnixSocketPermissions = mode
	default:
		return errUnixSocketInvalidPermissions
	}

	if name := cfg.Basic.UnixSocketUser; name != "" {
		lookup := user.Lookup
		if digitsRegexp.MatchString(name) {
			lookup = user.LookupId
		}

		if _, err := lookup(name); err != nil {
			return errUnixSocketUserDoesNotExist
		}
	}

	if name := cfg.Basic.UnixSocketGroup; name != "" {
		lookup := user.LookupGroup
		if digitsRegexp.MatchString(name) {
			lookup = user.LookupGroupId
		}

		if _, err := lookup(name); err != nil {
			return errUnixSocketGroupDoesNotExist
		}
	}

	return nil
}

func (cfg *ServerConfig) validateAuth() error {
	if cfg.Auth.CookieName == "" {
		return errEmptyCookieName
	}

	switch cfg.Auth.Provider {
	case AnonymousProvider:
		return nil
	case PasetoProvider:
	default:
		return fmt.Errorf("%w: %q", errInvalidAuthProvider, cfg.Auth.Provider)
	}

	if cfg.Auth.PublicKey == "" {
		return errPublicKeyRequired
	}

	key, err := paseto.NewV4AsymmetricPublicKeyFromHex(cfg.Auth.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: %w", errPublicKeyInvalid, err)
	}

	cfg.Auth.Key = key

	return nil
}

func (cfg *ServerConfig) validateLinks() error {
	links := []struct {
		name  string
		value *string
	}{
		{"links.dashboard", &cfg.Links.Dashboard},
		{"links.login", &cfg.Links.Login},
		{"links.register", &cfg.Links.Register},
		{"links.contact", &cfg.Links.Contact},
		{"links.documentation", &cfg.Links.Documentation},
		{"links.api", &cfg.Links.API},
		{"links.support", &cfg.Links.Support},
	}

	for _, l := range links {
		parsed, err := utils.ParseLink(*l.value, l.name)
		if err != nil {
			return err
		}

		*l.value = parsed
	}

	return nil
}

func (cfg *ServerConfig) validateLimiter() error {
	if cfg.Limiter.RequestsPerMinute <= 0 {
		return errInvalidRequestsPerMinute
	}

	if cfg.Limiter.Burst <= 0 {
		return errInvalidBurst
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 {
		return errInvalidIPv4Prefix
	}

	if cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		return errInvalidIPv6Prefix
	}

	for _, entry := range cfg.Limiter.PassIPs {
		if _, err := netip.ParsePrefix(entry); err == nil {
			continue
		}

		if _, err := netip.ParseAddr(entry); err != nil {
			return fmt.Errorf("%w: %q", errInvalidPassIP, entry)
		}
	}

	return nil
}
