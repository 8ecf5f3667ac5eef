// Package config reads and writes the zk configuration file, a single YAML
// document naming the directory notes live in.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file name inside the zk config directory.
	FileName = "config.yaml"
	// EnvVar overrides the configuration file location.
	EnvVar = "ZK_CONFIG"

	fieldWorkingDir = "working_dir"
)

// Config is the parsed configuration.
type Config struct {
	WorkingDir string `yaml:"working_dir"`
}

// ErrMultiDocument is returned when the input holds more than one YAML document.
var ErrMultiDocument = errors.New("config: yaml contains more than one document")

// FormatError reports input that is not valid YAML.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("config: bad yaml format: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FieldMissingError reports a required field that is absent or not a string.
type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("config: field %q is missing or not a string", e.Field)
}

// Parse reads a configuration from YAML text. Paths are not validated.
func Parse(s string) (*Config, error) {
	doc, err := loadSingleDocument(s)
	if err != nil {
		return nil, err
	}
	wd, err := stringField(doc, fieldWorkingDir)
	if err != nil {
		return nil, err
	}
	return &Config{WorkingDir: wd}, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFrom resolves the file location with Path and loads it.
func LoadFrom(explicit string) (*Config, error) {
	path, err := Path(explicit)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no configuration at %s, run 'zk init' first: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// Write stores cfg at path, creating parent directories as needed.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Path resolves the configuration file location: explicit wins, then
// $ZK_CONFIG, then <user config dir>/zk/config.yaml.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "zk", FileName), nil
}

func loadSingleDocument(s string) (*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(s))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty input has no document. It is reported as a missing
			// field, not as a document-count error.
			return &yaml.Node{}, nil
		}
		return nil, &FormatError{Err: err}
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return &doc, nil
	case err != nil:
		return nil, &FormatError{Err: err}
	default:
		return nil, ErrMultiDocument
	}
}

func stringField(doc *yaml.Node, name string) (string, error) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			if key.Value != name {
				continue
			}
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!str" {
				return val.Value, nil
			}
			break
		}
	}
	return "", &FieldMissingError{Field: name}
}
