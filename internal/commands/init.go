// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/config"
	"github.com/dacolabs/formschema/internal/jschema"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/schemafile"
)

type initOptions struct {
	path           string
	output         string
	format         string
	ui             bool
	sortProperties bool
	example        bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new formschema project",
		Long: `Initialize a new formschema project with a formschema.yaml configuration file.
Optionally writes an example schema description to get started.`,
		Example: `  # Interactive mode
  formschema init

  # Non-interactive
  formschema init --non-interactive --path ./schemas --format yaml --ui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(cmd.OutOrStdout(), cwd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", config.DefaultPath, "Directory holding schema descriptions")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Directory for generated documents")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().BoolVar(&opts.ui, "ui", false, "Generate UI schemas next to JSON Schemas")
	cmd.Flags().BoolVar(&opts.sortProperties, "sort-properties", false, "Render properties alphabetically")
	cmd.Flags().BoolVar(&opts.example, "example", false, "Write an example schema description")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(out io.Writer, dir string, opts *initOptions) error {
	// Check that the directory isn't already initialized
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New(config.FileName + " already exists; project already initialized")
	}

	if !opts.nonInteractive {
		opts.example = true
		if err := prompts.RunInitForm(
			&opts.path,
			&opts.output,
			&opts.format,
			&opts.ui,
			&opts.sortProperties,
			&opts.example,
		); err != nil {
			return err
		}
	}

	cfg := config.Config{
		Version:        config.CurrentConfigVersion,
		Path:           opts.path,
		Output:         opts.output,
		Format:         opts.format,
		UI:             opts.ui,
		SortProperties: opts.sortProperties,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	schemaDir := opts.path
	if !filepath.IsAbs(schemaDir) {
		schemaDir = filepath.Join(dir, schemaDir)
	}
	if err := os.MkdirAll(schemaDir, 0o750); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	fields := []prompts.ResultField{
		{Label: "Config", Value: config.FileName},
		{Label: "Descriptions", Value: opts.path},
		{Label: "Output", Value: opts.output + " (" + opts.format + ")"},
		{Label: "UI schemas", Value: strconv.FormatBool(opts.ui)},
	}

	if opts.example {
		writer := schemafile.YAMLWriter
		if cfg.OutputFormat() == jschema.JSON {
			writer = schemafile.JSONWriter
		}
		p, err := writer.Write(schemafile.Example(), schemaDir, "example")
		if err != nil {
			return fmt.Errorf("failed to write example description: %w", err)
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		fields = append(fields, prompts.ResultField{Label: "Example", Value: rel})
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(out, fields, "Initialization completed")
	return nil
}
