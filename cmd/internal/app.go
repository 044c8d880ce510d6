// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/formschema/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts the command line arguments without the program name.
func Run(ctx context.Context, args []string) error {
	rootCmd := commands.NewRootCmd()
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
