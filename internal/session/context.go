// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/config"
	"github.com/dacolabs/formschema/internal/schemafile"
	"github.com/dacolabs/formschema/jsonform"
)

var (
	// ErrNotInitialized indicates no formschema.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a formschema project (formschema.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemasNotFound indicates the description directory referenced by config doesn't exist.
	ErrSchemasNotFound = errors.New("schema directory not found")

	// ErrInvalidSchemas indicates the description files couldn't be loaded.
	ErrInvalidSchemas = errors.New("invalid schema descriptions")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the project configuration and the loaded schema catalog.
type Context struct {
	// Dir is the project root, where formschema.yaml lives.
	Dir string

	Config  *config.Config
	Catalog *schemafile.Catalog

	// Log receives debug output of commands. Nil means discard.
	Log *zap.Logger
}

// NewLogger returns a development logger writing to stderr when verbose is
// set, and a no-op logger otherwise.
func NewLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Logger returns the session logger, never nil.
func (c *Context) Logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// Converter returns a converter configured from the project settings.
func (c *Context) Converter() *jsonform.Converter {
	var opts []jsonform.Option
	if c.Config.SortProperties {
		opts = append(opts, jsonform.WithSortedProperties())
	}
	for kind, fragment := range c.Config.Kinds {
		opts = append(opts, jsonform.WithKind(fieldgraph.Kind(kind), jsonform.Fragment(fragment)))
	}
	return jsonform.New(opts...)
}

// OutputDir returns the absolute output directory.
func (c *Context) OutputDir() string {
	return c.abs(c.Config.Output)
}

// SchemaDir returns the absolute description directory.
func (c *Context) SchemaDir() string {
	return c.abs(c.Config.Path)
}

func (c *Context) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the session Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	sess, err := LoadDir(cwd)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, sess), nil
}

// LoadDir loads the project rooted at dir.
func LoadDir(dir string) (*Context, error) {
	configPath := filepath.Join(dir, config.FileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	sess := &Context{Dir: dir, Config: cfg}

	schemaDir := sess.SchemaDir()
	if info, statErr := os.Stat(schemaDir); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSchemasNotFound, cfg.Path)
	}

	catalog, err := schemafile.LoadFS(os.DirFS(schemaDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchemas, err)
	}
	sess.Catalog = catalog

	return sess, nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sess, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sess
	}
	return nil
}
