// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schemafile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/formschema/fieldgraph"
)

// Writer encodes a description document to a file.
type Writer struct {
	write     func(path string, v any) error
	extension string
}

var (
	// JSONWriter writes description documents as JSON.
	JSONWriter = Writer{writeJSON, ".json"}
	// YAMLWriter writes description documents as YAML.
	YAMLWriter = Writer{writeYAML, ".yaml"}
)

// Write encodes doc to dir/name.<ext> and returns the written path.
func (wr Writer) Write(doc *Document, dir, name string) (string, error) {
	p := filepath.Join(dir, name+wr.extension)
	return p, wr.write(p, doc)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Example returns a starter document used by project initialization.
func Example() *Document {
	return &Document{
		Schemas: map[string]SchemaSpec{
			"Address": {
				Fields: []FieldSpec{
					{Name: "street", Type: "string", Required: true},
					{Name: "city", Type: "string", Required: true},
					{Name: "zip", Type: "string", Validate: []ValidatorSpec{{Regexp: `^\d{5}$`}}},
				},
			},
			"User": {
				Meta: map[string]any{"ui:order": []string{"name", "email", "age", "address"}},
				Fields: []FieldSpec{
					{
						Name:     "name",
						Type:     "string",
						Required: true,
						Metadata: map[string]any{"title": "Full name"},
						Validate: []ValidatorSpec{{Length: &LengthSpec{Min: fieldgraph.Ptr(1), Max: fieldgraph.Ptr(100)}}},
					},
					{Name: "email", Type: "email", Required: true},
					{Name: "age", Type: "integer", Metadata: map[string]any{"ui:widget": "updown"}},
					{Name: "address", Type: "nested", Schema: "Address", AllowNone: true},
				},
			},
		},
	}
}
