package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/statica"
	statichttp "github.com/sagarc03/statica/http"
	"github.com/sagarc03/statica/mimetypes"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for statica.
type Config struct {
	Server ServerConfig          `mapstructure:"server"`
	Static StaticConfig          `mapstructure:"static"`
	Mime   mimetypes.TypesConfig `mapstructure:"mime"`
	CORS   statichttp.CORSConfig `mapstructure:"cors"`
	Log    LogConfig             `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// StaticConfig describes the served directory.
type StaticConfig struct {
	Root        string            `mapstructure:"root" validate:"required"`
	MountPrefix string            `mapstructure:"mount_prefix" validate:"required,startswith=/"`
	IndexFile   string            `mapstructure:"index_file" validate:"excludes=/"`
	CheckRoot   bool              `mapstructure:"check_root"`
	ChunkSize   int               `mapstructure:"chunk_size" validate:"min=1"`
	Headers     map[string]string `mapstructure:"headers"`
}

// StaticRoot converts the section into a statica.StaticRoot.
func (c StaticConfig) StaticRoot() statica.StaticRoot {
	return statica.StaticRoot{
		Root:        c.Root,
		MountPrefix: c.MountPrefix,
		IndexFile:   c.IndexFile,
		CheckRoot:   c.CheckRoot,
	}
}

// ResponseHeaders returns the configured extra headers sorted by name.
func (c StaticConfig) ResponseHeaders() statica.Headers {
	h := make(statica.Headers, 0, len(c.Headers))
	for _, name := range slices.Sorted(maps.Keys(c.Headers)) {
		h = h.Add(name, c.Headers[name])
	}
	return h
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"root":         "static.root",
	"mount-prefix": "static.mount_prefix",
	"index-file":   "static.index_file",
	"check-root":   "static.check_root",
	"chunk-size":   "static.chunk_size",
	"mime-file":    "mime.file",
	"port":         "server.port",
	"log-level":    "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", time.Duration(0)) // large files stream for as long as they need
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("static.root", "./public")
	v.SetDefault("static.mount_prefix", "/")
	v.SetDefault("static.index_file", "index.html")
	v.SetDefault("static.check_root", true)
	v.SetDefault("static.chunk_size", statica.DefaultChunkSize)

	v.SetDefault("mime.file", "")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD"})
	v.SetDefault("cors.allowed_headers", []string{"If-None-Match", "If-Modified-Since"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("statica")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("STATICA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
