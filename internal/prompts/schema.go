// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// RunSchemaSelect prompts for one or more schemas to convert.
func RunSchemaSelect(selected *[]string, names []string) error {
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Schemas to convert").
				Options(options...).
				Filterable(true).
				Height(min(len(names)+2, 12)).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one schema")
					}
					return nil
				}).
				Value(selected),
		),
	).WithTheme(Theme()).Run()
}
