// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/session"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all schemas of the project",
		Long: `List all schemas declared in the project's description files.
Displays schema names, field counts, and the file each schema comes from.`,
		Example: `  # List schemas
  formschema list`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), ctx)
		},
	}

	return cmd
}

func runList(out io.Writer, ctx *session.Context) error {
	if ctx.Catalog.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No schemas defined.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tFIELDS\tSOURCE")

	for _, name := range ctx.Catalog.Names() {
		obj, _ := ctx.Catalog.Get(name)
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(obj.Fields()), ctx.Catalog.Source(name))
	}

	return w.Flush()
}
