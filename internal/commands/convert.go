// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/formschema/internal/jschema"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/session"
	"github.com/dacolabs/formschema/jsonform"
)

type convertOptions struct {
	all    bool
	stdout bool
	check  bool
	ui     bool
	format string
	output string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [schema...]",
		Short: "Convert schemas to JSON Schema documents",
		Long: `Convert one or more schemas to JSON Schema (Draft-07) documents.

Each schema is written to <output>/<Name>.schema.<ext>. When UI schemas are
enabled, <Name>.uischema.<ext> is written next to it. Without schema names
and without --all, an interactive selection is shown.`,
		Example: `  # Interactive mode
  formschema convert

  # Convert specific schemas
  formschema convert User Address

  # Convert all schemas as YAML and validate the result
  formschema convert --all --format yaml --check

  # Print a single document
  formschema convert User --stdout`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Convert all schemas")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the document instead of writing files (single schema)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Check references and resolve each document before writing it")
	cmd.Flags().BoolVar(&opts.ui, "ui", false, "Also generate UI schemas (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format, json or yaml (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from config)")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, args []string) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	if ctx.Catalog.Len() == 0 {
		return errors.New("no schemas defined")
	}

	// Validate mutually exclusive flags
	if opts.all && len(args) > 0 {
		return errors.New("--all and schema names are mutually exclusive")
	}

	var selected []string
	switch {
	case opts.all:
		selected = ctx.Catalog.Names()
	case len(args) > 0:
		for _, name := range args {
			if _, ok := ctx.Catalog.Get(name); !ok {
				return fmt.Errorf("schema %q not found", name)
			}
			selected = append(selected, name)
		}
	default:
		if err := prompts.RunSchemaSelect(&selected, ctx.Catalog.Names()); err != nil {
			return err
		}
	}

	if len(selected) == 0 {
		return errors.New("no schemas selected")
	}
	if opts.stdout && len(selected) != 1 {
		return errors.New("--stdout requires exactly one schema")
	}

	format := ctx.Config.OutputFormat()
	if opts.format != "" {
		if format, err = jschema.ParseFormat(opts.format); err != nil {
			return err
		}
	}
	withUI := ctx.Config.UI
	if cmd.Flags().Changed("ui") {
		withUI = opts.ui
	}

	conv := ctx.Converter()

	if opts.stdout {
		data, err := convertOne(conv, ctx, selected[0], format, opts.check)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	output := ctx.OutputDir()
	if opts.output != "" {
		output = opts.output
	}
	ctx.Logger().Debug("writing documents",
		zap.String("output", output),
		zap.String("format", string(format)),
		zap.Bool("ui", withUI),
	)
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Converting %d schema(s) to %s...\n", len(selected), format)

	var failures []prompts.ResultField
	successCount := 0
	for _, name := range selected {
		if err := writeDocuments(out, conv, ctx, name, format, output, opts.check, withUI); err != nil {
			failures = append(failures, prompts.ResultField{Label: name, Value: err.Error()})
			continue
		}
		successCount++
	}

	_, _ = fmt.Fprintf(out, "\nSuccessfully converted %d schema(s)\n", successCount)

	prompts.PrintFailures(out, failures)
	if len(failures) > 0 {
		return fmt.Errorf("failed to convert %d schema(s)", len(failures))
	}
	return nil
}

func convertOne(conv *jsonform.Converter, ctx *session.Context, name string, format jschema.Format, check bool) ([]byte, error) {
	obj, _ := ctx.Catalog.Get(name)
	doc, err := conv.Convert(obj)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("schema converted",
		zap.String("schema", name),
		zap.Int("properties", len(doc.Schema.Properties)),
		zap.Int("definitions", len(doc.Schema.Definitions)),
	)
	if check {
		if err := doc.Check(); err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
		if _, err := doc.Resolve(); err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
	}
	return doc.Encode(format)
}

func writeDocuments(out io.Writer, conv *jsonform.Converter, ctx *session.Context, name string,
	format jschema.Format, output string, check, withUI bool,
) error {
	data, err := convertOne(conv, ctx, name, format, check)
	if err != nil {
		return err
	}
	schemaFile := filepath.Join(output, name+".schema"+format.Extension())
	if err := os.WriteFile(schemaFile, data, 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "  %s\n", schemaFile)

	if !withUI {
		return nil
	}

	obj, _ := ctx.Catalog.Get(name)
	ui, err := conv.ConvertUI(obj)
	if err != nil {
		return fmt.Errorf("ui schema: %w", err)
	}
	uiData, err := ui.Encode(format)
	if err != nil {
		return fmt.Errorf("ui schema: %w", err)
	}
	uiFile := filepath.Join(output, name+".uischema"+format.Extension())
	if err := os.WriteFile(uiFile, uiData, 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "  %s\n", uiFile)
	return nil
}
