// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/session"
	"github.com/dacolabs/formschema/jsonform"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [schema]",
		Short: "Show project overview or the fields of a schema",
		Long: `Without arguments, show the project configuration and all schemas.
With a schema name, show each field with its property key, kind and flags.`,
		Example: `  # Describe the project
  formschema describe

  # Describe a schema
  formschema describe User`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return runDescribe(cmd.OutOrStdout(), ctx)
			}
			return runDescribeSchema(cmd.OutOrStdout(), ctx, args[0])
		},
	}
	return cmd
}

func runDescribe(out io.Writer, ctx *session.Context) error {
	fields := []prompts.ResultField{
		{Label: "Descriptions", Value: ctx.Config.Path},
		{Label: "Output", Value: ctx.Config.Output + " (" + string(ctx.Config.OutputFormat()) + ")"},
		{Label: "UI schemas", Value: strconv.FormatBool(ctx.Config.UI)},
		{Label: "Sorted properties", Value: strconv.FormatBool(ctx.Config.SortProperties)},
	}
	if len(ctx.Config.Kinds) > 0 {
		fields = append(fields, prompts.ResultField{Label: "Custom kinds", Value: strconv.Itoa(len(ctx.Config.Kinds))})
	}
	prompts.PrintResult(out, fields, "")

	prompts.PrintResult(out, []prompts.ResultField{{Label: "Schemas", Value: ""}}, "")
	return runList(out, ctx)
}

func runDescribeSchema(out io.Writer, ctx *session.Context, name string) error {
	obj, ok := ctx.Catalog.Get(name)
	if !ok {
		return fmt.Errorf("schema %q not found", name)
	}

	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Schema", Value: name},
		{Label: "Source", Value: ctx.Catalog.Source(name)},
		{Label: "Fields", Value: strconv.Itoa(len(obj.Fields()))},
	}, "")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FIELD\tKEY\tKIND\tREQUIRED\tNULLABLE\tDETAILS\tDESCRIPTION")

	for _, f := range obj.Fields() {
		desc, _ := f.Metadata()["description"].(string)
		if utf8.RuneCountInString(desc) > 40 {
			desc = string([]rune(desc)[:37]) + "..."
		}
		if desc == "" {
			desc = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.Name(),
			jsonform.PropertyKey(f),
			f.Kind(),
			yesNo(f.Required()),
			yesNo(f.Nullable()),
			fieldDetails(f),
			desc,
		)
	}

	return w.Flush()
}

// fieldDetails summarizes sub-fields and nesting of f.
func fieldDetails(f fieldgraph.Field) string {
	var parts []string
	if n, ok := f.(fieldgraph.Nesting); ok && n.Nested() != nil {
		target := "-> " + n.Nested().Name()
		if n.Many() {
			target += " (many)"
		}
		parts = append(parts, target)
		if only := n.Only(); len(only) > 0 {
			parts = append(parts, "only "+strings.Join(only, ","))
		}
		if exclude := n.Exclude(); len(exclude) > 0 {
			parts = append(parts, "exclude "+strings.Join(exclude, ","))
		}
	}
	if c, ok := f.(fieldgraph.Container); ok && c.Inner() != nil {
		parts = append(parts, "of "+string(c.Inner().Kind()))
	}
	if m, ok := f.(fieldgraph.Mapping); ok && m.Values() != nil {
		parts = append(parts, "values "+string(m.Values().Kind()))
	}
	if t, ok := f.(fieldgraph.Tuple); ok && len(t.Elements()) > 0 {
		parts = append(parts, "("+joinKinds(t.Elements(), ", ")+")")
	}
	if u, ok := f.(fieldgraph.Union); ok && len(u.Candidates()) > 0 {
		parts = append(parts, joinKinds(u.Candidates(), "|"))
	}
	if e, ok := f.(fieldgraph.Enumeration); ok && len(e.Choices()) > 0 {
		choices := make([]string, len(e.Choices()))
		for i, c := range e.Choices() {
			choices[i] = fmt.Sprint(c)
		}
		parts = append(parts, "{"+strings.Join(choices, ",")+"}")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func joinKinds(fields []fieldgraph.Field, sep string) string {
	kinds := make([]string, len(fields))
	for i, f := range fields {
		kinds[i] = string(f.Kind())
	}
	return strings.Join(kinds, sep)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
