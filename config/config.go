// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	_ "codeberg.org/testpro/testpro/core/audit" // setup better logging format
	"codeberg.org/testpro/testpro/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// Possible values for Auth.Provider.
const (
	AnonymousProvider AuthProvider = "anonymous"
	PasetoProvider    AuthProvider = "paseto"
)

// AuthProvider selects how the authentication view of a request is resolved.
type AuthProvider string

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"TESTPRO_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"TESTPRO_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"TESTPRO_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"TESTPRO_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"TESTPRO_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"TESTPRO_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Auth struct {
		Provider AuthProvider `env:"TESTPRO_AUTH_PROVIDER,overwrite" yaml:"provider"`
		// hex of the identity provider's v4.public key
		PublicKey  string                       `env:"TESTPRO_AUTH_PUBLIC_KEY" yaml:"publicKey"`
		Key        paseto.V4AsymmetricPublicKey `yaml:"-"`
		CookieName string                       `env:"TESTPRO_AUTH_COOKIE,overwrite" yaml:"cookieName"`
	} `yaml:"auth"`

	Links struct {
		Dashboard     string `env:"TESTPRO_LINK_DASHBOARD,overwrite" yaml:"dashboard"`
		Login         string `env:"TESTPRO_LINK_LOGIN,overwrite" yaml:"login"`
		Register      string `env:"TESTPRO_LINK_REGISTER,overwrite" yaml:"register"`
		Contact       string `env:"TESTPRO_LINK_CONTACT,overwrite" yaml:"contact"`
		Documentation string `env:"TESTPRO_LINK_DOCUMENTATION,overwrite" yaml:"documentation"`
		API           string `env:"TESTPRO_LINK_API,overwrite" yaml:"api"`
		Support       string `env:"TESTPRO_LINK_SUPPORT,overwrite" yaml:"support"`
	} `yaml:"links"`

	Cache struct {
		Enabled  bool          `env:"TESTPRO_CACHE,overwrite" yaml:"enabled"`
		Size     int           `env:"TESTPRO_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		TTL      time.Duration `env:"TESTPRO_CACHE_TTL,overwrite" yaml:"cacheTTL"`
		Compress bool          `env:"TESTPRO_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"TESTPRO_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"TESTPRO_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Response struct {
		Compression bool `env:"TESTPRO_COMPRESSION,overwrite" yaml:"compression"`
	} `yaml:"response"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"TESTPRO_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"TESTPRO_DEV" yaml:"inDevelopment"`
		// Emit data-dev-* attributes on page elements.
		Instrument bool `env:"TESTPRO_INSTRUMENT,overwrite" yaml:"instrument"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"TESTPRO_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"TESTPRO_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TESTPRO_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled           bool     `env:"TESTPRO_LIMITER,overwrite" yaml:"enabled"`
		RequestsPerMinute int      `env:"TESTPRO_LIMITER_REQUESTS_PER_MINUTE,overwrite" yaml:"requestsPerMinute"`
		Burst             int      `env:"TESTPRO_LIMITER_BURST,overwrite" yaml:"burst"`
		PassIPs           []string `env:"TESTPRO_LIMITER_PASS_IPS,overwrite" yaml:"passList"`
		IPv4Prefix        int      `env:"TESTPRO_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix        int      `env:"TESTPRO_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
	} `yaml:"limiter"`

	Internationalization struct {
		// When enabled, missing keys are logged once per locale and key and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"TESTPRO_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from the YAML file chosen by
// resolveConfigPath, .env and the environment.
func (cfg *ServerConfig) LoadConfig() error {
	return cfg.load(resolveConfigPath(configFlag()))
}

// load applies defaults, the YAML file at path, .env and the environment, in
// that order, then validates the result.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

var staticSkippedPathPrefixes = []string{"/css/", "/js/", "/icons/"}

// ShouldSkipServerLogging reports whether a request should bypass request logging.
// Static assets are only logged in development.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// containerCgroupMarkers are substrings of /proc/self/cgroup seen inside
// docker, kubernetes, containerd, lxc, cri-o and systemd-nspawn.
var containerCgroupMarkers = []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"}

// isContainerized guesses whether the process runs in a container.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	cgroup, err := os.ReadFile("/proc/self/cgroup") // #nosec G304 -- fixed system path
	if err != nil {
		return false
	}

	return slices.ContainsFunc(containerCgroupMarkers, func(m string) bool {
		return strings.Contains(string(cgroup), m)
	})
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
