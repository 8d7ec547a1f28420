package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML catalog. Environment variables in
// path are expanded.
func LoadFile(path string) (*Catalog, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}
	return &c, nil
}

// WriteFile writes c to path as YAML, creating parent directories.
func WriteFile(path string, c *Catalog) error {
	path = os.ExpandEnv(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // catalog files are not secret
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
