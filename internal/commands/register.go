// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formschema",
		Short: "Generate JSON Schema and UI schema documents from form descriptions",
		Long: `formschema converts declarative object schema descriptions into
JSON Schema (Draft-07) documents and UI schema documents for form renderers.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newDescribeCmd(),
		newConvertCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
