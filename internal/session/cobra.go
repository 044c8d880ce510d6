// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's context,
// returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PreRunE function that loads the project context and
// stores it in the command's context. A "verbose" flag, when the command
// has one, enables debug logging.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx, err := Load(cmd.Context())
	if err != nil {
		return err
	}
	sess := From(ctx)
	verbose, _ := cmd.Flags().GetBool("verbose")
	sess.Log = NewLogger(verbose)
	sess.Log.Debug("project loaded",
		zap.String("dir", sess.Dir),
		zap.String("schemas", sess.SchemaDir()),
		zap.Int("count", sess.Catalog.Len()),
	)
	cmd.SetContext(ctx)
	return nil
}
