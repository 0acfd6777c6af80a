package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// Parse decodes a checklist document authored as JSON or YAML and validates
// it into a Config. Field order in the document is schema order.
func Parse(data []byte, source string) (*Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: file %s defines no fields", source)
	}

	cfg, err := New(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("schema: file %s: %w", source, err)
	}
	return cfg, nil
}

// LoadFS reads a single checklist document from the provided filesystem.
func LoadFS(fsys fs.FS, path string) (*Config, error) {
	if !isSchemaFile(path) {
		return nil, fmt.Errorf("schema: %s is not a JSON or YAML document", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
