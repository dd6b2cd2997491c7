// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/testpro/testpro/server/utils"
)

// These tests use t.Setenv and therefore cannot run in parallel.

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	var cfg ServerConfig

	require.NoError(t, cfg.load(""))

	assert.Equal(t, DefaultHost, cfg.Basic.Host)
	assert.Equal(t, DefaultPort, cfg.Basic.Port)
	assert.Equal(t, AnonymousProvider, cfg.Auth.Provider)
	assert.Equal(t, "/dashboard", cfg.Links.Dashboard)
	assert.Equal(t, "/register", cfg.Links.Register)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Development.Instrument)
	assert.NotEmpty(t, cfg.Instance.FileServerCacheID)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeYAML(t, `
basic:
  port: "9000"
links:
  contact: https://testpro.example/contact
cache:
  cacheSize: 8
  cacheTTL: 90s
development:
  instrument: true
`)

	t.Setenv("TESTPRO_PORT", "9100")
	t.Setenv("TESTPRO_LINK_LOGIN", "/signin")
	t.Setenv("TESTPRO_LIMITER_PASS_IPS", "127.0.0.1, 10.0.0.0/8,")

	var cfg ServerConfig

	require.NoError(t, cfg.load(path))

	// env beats YAML, YAML beats defaults.
	assert.Equal(t, "9100", cfg.Basic.Port)
	assert.Equal(t, "/signin", cfg.Links.Login)
	assert.Equal(t, "https://testpro.example/contact", cfg.Links.Contact)
	assert.Equal(t, 8, cfg.Cache.Size)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Development.Instrument)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.Limiter.PassIPs)
}

func TestLoadPasetoProvider(t *testing.T) {
	secret := paseto.NewV4AsymmetricSecretKey()

	t.Setenv("TESTPRO_AUTH_PROVIDER", "paseto")
	t.Setenv("TESTPRO_AUTH_PUBLIC_KEY", secret.Public().ExportHex())

	var cfg ServerConfig

	require.NoError(t, cfg.load(""))
	assert.Equal(t, secret.Public().ExportHex(), cfg.Auth.Key.ExportHex())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "unknown auth provider",
			env:     map[string]string{"TESTPRO_AUTH_PROVIDER": "oauth"},
			wantErr: errInvalidAuthProvider,
		},
		{
			name:    "paseto without key",
			env:     map[string]string{"TESTPRO_AUTH_PROVIDER": "paseto"},
			wantErr: errPublicKeyRequired,
		},
		{
			name: "paseto with garbage key",
			env: map[string]string{
				"TESTPRO_AUTH_PROVIDER":   "paseto",
				"TESTPRO_AUTH_PUBLIC_KEY": "zz",
			},
			wantErr: errPublicKeyInvalid,
		},
		{
			name:    "scheme-relative link",
			env:     map[string]string{"TESTPRO_LINK_DASHBOARD": "//evil.example"},
			wantErr: utils.ErrInvalidLink,
		},
		{
			name:    "bad log format",
			env:     map[string]string{"TESTPRO_LOG_FORMAT": "xml"},
			wantErr: errInvalidLogFormat,
		},
		{
			name: "limiter prefix out of range",
			env: map[string]string{
				"TESTPRO_LIMITER":             "true",
				"TESTPRO_LIMITER_IPV4_PREFIX": "33",
			},
			wantErr: errInvalidIPv4Prefix,
		},
		{
			name: "limiter pass list entry",
			env: map[string]string{
				"TESTPRO_LIMITER":          "true",
				"TESTPRO_LIMITER_PASS_IPS": "not-an-ip",
			},
			wantErr: errInvalidPassIP,
		},
		{
			name: "unix socket with explicit port",
			env: map[string]string{
				"TESTPRO_UNIXSOCKET": "/tmp/testpro.sock",
				"TESTPRO_PORT":       "9000",
			},
			wantErr: errUnixSocketWithHostPort,
		},
		{
			name:    "cache enabled with zero size",
			env:     map[string]string{"TESTPRO_CACHE_SIZE": "0"},
			wantErr: errInvalidCacheSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var cfg ServerConfig

			err := cfg.load("")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadUnixSocket(t *testing.T) {
	t.Setenv("TESTPRO_UNIXSOCKET", "/tmp/testpro.sock")
	t.Setenv("TESTPRO_UNIXSOCKET_PERMISSIONS", "rw-rw----")

	var cfg ServerConfig

	require.NoError(t, cfg.load(""))
	assert.Empty(t, cfg.Basic.Host)
	assert.Equal(t, os.FileMode(0o660), cfg.Basic.UnixSocketPermissions)
}

func TestReadEnvTypeErrors(t *testing.T) {
	t.Setenv("TESTPRO_CACHE_TTL", "ten minutes")

	var cfg ServerConfig

	cfg.SetDefaults()
	require.Error(t, readEnv(&cfg))
	require.ErrorIs(t, readEnv(cfg), errExpectedPointerToStruct)
}

func TestParseEnvValue(t *testing.T) {
	d, err := parseEnvValue(durationType, "90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d.Interface())

	list, err := parseEnvValue(reflect.TypeFor[[]string](), " 10.0.0.1 ,, ::1 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "::1"}, list.Interface())

	provider, err := parseEnvValue(reflect.TypeFor[AuthProvider](), "paseto")
	require.NoError(t, err)
	assert.Equal(t, AuthProvider("paseto"), provider.Interface())

	_, err = parseEnvValue(reflect.TypeFor[float64](), "1.5")
	require.ErrorIs(t, err, errUnsupportedFieldType)
}

func TestApplyDotEnv(t *testing.T) {
	t.Setenv("TESTPRO_DOTENV_KEPT", "from-env")
	t.Setenv("TESTPRO_DOTENV_QUOTED", "")
	os.Unsetenv("TESTPRO_DOTENV_QUOTED")
	t.Setenv("TESTPRO_DOTENV_PLAIN", "")
	os.Unsetenv("TESTPRO_DOTENV_PLAIN")

	applyDotEnv(".env", []byte(`# comment

TESTPRO_DOTENV_KEPT=from-file
TESTPRO_DOTENV_QUOTED="a b"
not a pair
TESTPRO_DOTENV_PLAIN = 'x'
`))

	assert.Equal(t, "from-env", os.Getenv("TESTPRO_DOTENV_KEPT"))
	assert.Equal(t, "a b", os.Getenv("TESTPRO_DOTENV_QUOTED"))
	assert.Equal(t, "x", os.Getenv("TESTPRO_DOTENV_PLAIN"))
}

func TestYAMLOutput(t *testing.T) {
	var cfg ServerConfig

	cfg.SetDefaults()

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "cacheTTL: 10m0s")
	assert.Contains(t, string(out), "dashboard: /dashboard")
	assert.NotContains(t, string(out), "fileServerCacheID")
}

func TestShouldSkipServerLogging(t *testing.T) {
	var cfg ServerConfig

	assert.True(t, cfg.ShouldSkipServerLogging("/css/landing.css"))
	assert.False(t, cfg.ShouldSkipServerLogging("/"))

	cfg.Development.InDevelopment = true
	assert.False(t, cfg.ShouldSkipServerLogging("/css/landing.css"))
}

func TestCompactRequestLine(t *testing.T) {
	m := map[string]any{
		"sys":         "http",
		"method":      "GET",
		"status_code": 200,
		"url":         "/?lang=es",
		"route":       "GET /{$}",
		"request_id":  "abc",
		"dur":         1.5,
	}

	require.NoError(t, compactRequestLine(m))
	assert.Equal(t, "200 GET   /?lang=es [GET /{$}]", m["message"])
	assert.Equal(t, map[string]any{"message": m["message"], "dur": 1.5}, m)

	other := map[string]any{"message": "Loaded locale"}
	require.NoError(t, compactRequestLine(other))
	assert.Equal(t, "Loaded locale", other["message"])
}

func TestLogWritersSkipUnopenable(t *testing.T) {
	var cfg ServerConfig

	cfg.Log.Format = "json"
	cfg.Log.Outputs = []string{"/dev/stderr", filepath.Join(t.TempDir(), "missing", "dir", "out.log")}

	writers := cfg.logWriters()
	require.Len(t, writers, 1)
	assert.Equal(t, os.Stderr, writers[0])
}

func TestLoadRejectsUnknownYAMLKeys(t *testing.T) {
	path := writeYAML(t, `
cache:
  cacheSise: 8
`)

	var cfg ServerConfig

	require.Error(t, cfg.load(path))
}

func TestResolveConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(configFileEnv, "")

	assert.Equal(t, "/etc/testpro.yaml", resolveConfigPath("/etc/testpro.yaml", true))
	assert.Equal(t, defaultConfigFile, resolveConfigPath(defaultConfigFile, false))

	require.NoError(t, os.WriteFile("config.yml", nil, 0o600))
	assert.Equal(t, fallbackConfigFile, resolveConfigPath(defaultConfigFile, false))

	t.Setenv(configFileEnv, "/srv/testpro.yaml")
	assert.Equal(t, "/srv/testpro.yaml", resolveConfigPath(defaultConfigFile, false))
}
