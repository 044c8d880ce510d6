// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles formschema project configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/formschema/internal/jschema"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project configuration file.
const FileName = "formschema.yaml"

// Defaults applied by Load to unset fields.
const (
	DefaultPath   = "./schemas"
	DefaultOutput = "./jsonschema"
)

// Config represents the formschema.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Path is the directory holding the schema description files.
	Path string `yaml:"path,omitempty"`
	// Output is the directory generated documents are written to.
	Output string `yaml:"output,omitempty"`
	// Format of generated documents: json or yaml.
	Format string `yaml:"format,omitempty"`
	// UI enables generation of UI schema documents next to each JSON Schema.
	UI             bool `yaml:"ui,omitempty"`
	SortProperties bool `yaml:"sort_properties,omitempty"`
	// Kinds maps custom field kinds to the JSON Schema fragment they produce.
	Kinds map[string]map[string]any `yaml:"kinds,omitempty"`
}

// Load reads a Config from a file path and fills defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = string(jschema.JSON)
	}
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Format != "" {
		if _, err := jschema.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	for kind, fragment := range c.Kinds {
		if kind == "" || len(fragment) == 0 {
			return fmt.Errorf("kinds: %q needs a non-empty fragment", kind)
		}
	}
	return nil
}

// OutputFormat returns the configured document format, JSON when unset.
func (c *Config) OutputFormat() jschema.Format {
	f, err := jschema.ParseFormat(c.Format)
	if err != nil {
		return jschema.JSON
	}
	return f
}
