package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/statica"
	"github.com/sagarc03/statica/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./public", cfg.Static.Root)
	assert.Equal(t, "/", cfg.Static.MountPrefix)
	assert.Equal(t, "index.html", cfg.Static.IndexFile)
	assert.True(t, cfg.Static.CheckRoot)
	assert.Equal(t, statica.DefaultChunkSize, cfg.Static.ChunkSize)
	assert.Empty(t, cfg.Mime.File)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"GET", "HEAD"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "statica.yaml", `
server:
  port: 9000
  read_timeout: 5s
  shutdown_timeout: 30s
static:
  root: /srv/www
  mount_prefix: /static
  index_file: default.htm
  check_root: false
  chunk_size: 65536
  headers:
    Cache-Control: public, max-age=3600
    X-Content-Type-Options: nosniff
mime:
  file: /etc/statica/types.yaml
  inline:
    wasm: application/wasm
    webmanifest: application/manifest+json
log:
  level: debug
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/srv/www", cfg.Static.Root)
	assert.Equal(t, "/static", cfg.Static.MountPrefix)
	assert.Equal(t, "default.htm", cfg.Static.IndexFile)
	assert.False(t, cfg.Static.CheckRoot)
	assert.Equal(t, 65536, cfg.Static.ChunkSize)
	assert.Equal(t, "/etc/statica/types.yaml", cfg.Mime.File)
	assert.Equal(t, map[string]string{
		"wasm":        "application/wasm",
		"webmanifest": "application/manifest+json",
	}, cfg.Mime.Inline)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, statica.StaticRoot{
		Root:        "/srv/www",
		MountPrefix: "/static",
		IndexFile:   "default.htm",
	}, cfg.Static.StaticRoot())
	assert.Equal(t, statica.NewHeaders(
		"cache-control", "public, max-age=3600",
		"x-content-type-options", "nosniff",
	), cfg.Static.ResponseHeaders())
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
server:
  port: 8080
static:
  root: /srv/www
  index_file: index.html
log:
  level: info
`)

	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9000
static:
  mount_prefix: /assets
`)

	// Load with merge (later files override earlier)
	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/assets", cfg.Static.MountPrefix)

	// Preserved values from base
	assert.Equal(t, "/srv/www", cfg.Static.Root)
	assert.Equal(t, "index.html", cfg.Static.IndexFile)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "port out of range",
			content: `
server:
  port: 99999
`,
		},
		{
			name: "mount prefix without leading slash",
			content: `
static:
  mount_prefix: static
`,
		},
		{
			name: "index file with directory",
			content: `
static:
  index_file: docs/index.html
`,
		},
		{
			name: "zero chunk size",
			content: `
static:
  chunk_size: 0
`,
		},
		{
			name: "empty root",
			content: `
static:
  root: ""
`,
		},
		{
			name: "unknown log level",
			content: `
log:
  level: verbose
`,
		},
		{
			name: "negative timeout",
			content: `
server:
  read_timeout: -1s
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, "statica.yaml", tt.content)

			_, err := config.Load([]string{configPath}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_WithCORS(t *testing.T) {
	configPath := writeConfig(t, "statica.yaml", `
cors:
  enabled: true
  allowed_origins:
    - https://example.com
    - https://app.example.com
  allowed_methods:
    - GET
  allowed_headers:
    - If-None-Match
  exposed_headers:
    - ETag
  allow_credentials: true
  max_age: 600
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com", "https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"If-None-Match"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, []string{"ETag"}, cfg.CORS.ExposedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 600, cfg.CORS.MaxAge)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	// Unreadable files are logged and skipped
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// Set environment variables
	t.Setenv("STATICA_SERVER_PORT", "9090")
	t.Setenv("STATICA_STATIC_ROOT", "/var/www")
	t.Setenv("STATICA_STATIC_MOUNT_PREFIX", "/files")
	t.Setenv("STATICA_SERVER_READ_TIMEOUT", "2s")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/www", cfg.Static.Root)
	assert.Equal(t, "/files", cfg.Static.MountPrefix)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv("STATICA_STATIC_ROOT", "/from/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.String("mount-prefix", "", "")
	flags.Int("port", 0, "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--root", "/from/flag", "--port", "7000"}))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	// Changed flags win over env
	assert.Equal(t, "/from/flag", cfg.Static.Root)
	assert.Equal(t, 7000, cfg.Server.Port)

	// Unchanged flags do not override defaults
	assert.Equal(t, "/", cfg.Static.MountPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromContext(t *testing.T) {
	_, err := config.FromContext(context.Background())
	assert.Error(t, err)

	cfg := &config.Config{Server: config.ServerConfig{Port: 1234}}
	got, err := config.FromContext(config.WithContext(context.Background(), cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
