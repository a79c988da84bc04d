// Package config provides configuration loading and validation for statica.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (STATICA_ prefix)
//  4. CLI flags
//
// Without explicit files, ./statica.yaml is read if present.
//
// # Usage
//
//	cfg, err := config.Load([]string{"statica.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with STATICA_ prefix:
//   - server.port → STATICA_SERVER_PORT
//   - static.root → STATICA_STATIC_ROOT
//   - static.mount_prefix → STATICA_STATIC_MOUNT_PREFIX
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port and timeouts
//   - Static: root directory, mount prefix, index file, root check, chunk size, extra headers
//   - Mime: inline extension to content type overrides and an optional types file
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// Inline mime keys are written without the leading dot ("wasm", not ".wasm")
// because viper treats dots as key separators.
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Mount prefix must start with "/"
//   - Index file must be a bare file name
//   - Chunk size must be positive
//   - Log level must be debug, info, warn, or error
package config
