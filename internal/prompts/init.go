// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(path, output, format *string, ui, sortProperties, example *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema descriptions directory").
				Placeholder("./schemas").
				Validate(requiredValidator("descriptions directory")).
				Value(path),
			huh.NewConfirm().
				Title("Create an example description?").
				Affirmative("Yes").
				Negative("No").
				Value(example),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("./jsonschema").
				Validate(requiredValidator("output directory")).
				Value(output),
			huh.NewSelect[string]().
				Title("Output format").
				Options(
					huh.NewOption("JSON (recommended)", "json"),
					huh.NewOption("YAML", "yaml"),
				).
				Value(format),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate UI schemas?").
				Affirmative("Yes").
				Negative("No").
				Value(ui),
			huh.NewConfirm().
				Title("Property order").
				Affirmative("Alphabetical").
				Negative("Declaration").
				Value(sortProperties),
		),
	).WithTheme(Theme()).Run()
}
