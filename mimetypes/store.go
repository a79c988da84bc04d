package mimetypes

// TypesConfig holds configuration for content type overrides.
type TypesConfig struct {
	Inline map[string]string `mapstructure:"inline"` // Extension to type pairs from config
	File   string            `mapstructure:"file"`   // Path to a JSON or YAML mapping file
}

// NewRegistry creates a registry from the given configuration. Inline types and the
// types file are merged; the file wins on duplicates.
func NewRegistry(cfg TypesConfig) (*MapRegistry, error) {
	types := make(map[string]string, len(cfg.Inline))

	for ext, t := range cfg.Inline {
		types[normalizeExt(ext)] = t
	}

	if cfg.File != "" {
		fileTypes, err := LoadTypesFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		for ext, t := range fileTypes {
			types[ext] = t
		}
	}

	return NewMapRegistry(types), nil
}
