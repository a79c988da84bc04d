package mimetypes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeMapping maps a file extension to a MIME type.
type TypeMapping struct {
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`
	Type      string `json:"type" yaml:"type" mapstructure:"type"`
}

// LoadTypesFromFile reads extension to type mappings from a JSON or YAML file. The
// format is chosen by the file extension (.yaml/.yml, anything else is JSON).
// Mappings with an empty extension or type are skipped; later duplicates win.
func LoadTypesFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read types file: %w", err)
	}

	var mappings []TypeMapping
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &mappings)
	default:
		err = json.Unmarshal(data, &mappings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse types file: %w", err)
	}

	types := make(map[string]string, len(mappings))
	for _, m := range mappings {
		if m.Extension != "" && m.Type != "" {
			types[normalizeExt(m.Extension)] = m.Type
		}
	}

	return types, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
