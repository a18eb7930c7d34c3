// Package config loads the optional .docsmith.yml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = ".docsmith.yml"

// Config mirrors the YAML layout. Zero values mean "not set"; commands merge
// these under their flag values.
type Config struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json yaml yml"`

	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`

	Diagram struct {
		File   string `yaml:"file"`
		Output string `yaml:"output"`
		Format string `yaml:"format"`
	} `yaml:"diagram"`

	FAQ struct {
		File   string `yaml:"file"`
		Output string `yaml:"output"`
	} `yaml:"faq"`
}

var validate = validator.New()

// Load reads a config file. An empty path falls back to DefaultFile in the
// working directory; a missing default file yields an empty config, while an
// explicitly named missing file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Merge returns value if set, otherwise fallback. Used to layer flag >
// config file > default.
func Merge(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
