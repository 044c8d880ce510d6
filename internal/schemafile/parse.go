// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schemafile reads and writes declarative form schema descriptions.
package schemafile

import (
	"encoding/json"
	"errors"
	"io"
	"path"

	"gopkg.in/yaml.v3"
)

// Parser decodes a description document from an io.Reader.
type Parser struct {
	parse func(io.Reader) (*Document, error)
}

var (
	// JSON parses description documents from JSON.
	JSON = Parser{parseJSON}
	// YAML parses description documents from YAML.
	YAML = Parser{parseYAML}
)

// Parse decodes a single document.
func (p Parser) Parse(r io.Reader) (*Document, error) {
	return p.parse(r)
}

// ParserFor returns the parser matching the extension of name.
func ParserFor(name string) (Parser, bool) {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	}
	return Parser{}, false
}

// Document is the content of one description file.
type Document struct {
	Schemas map[string]SchemaSpec `yaml:"schemas" json:"schemas"`
}

// SchemaSpec describes one object schema.
type SchemaSpec struct {
	Meta   map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
	Fields []FieldSpec    `yaml:"fields" json:"fields"`
}

// FieldSpec describes one field. Inner, Values, Elements and Candidates
// describe sub-fields; Schema names the nested schema.
type FieldSpec struct {
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Type       string          `yaml:"type" json:"type"`
	DataKey    string          `yaml:"data_key,omitempty" json:"data_key,omitempty"`
	Required   bool            `yaml:"required,omitempty" json:"required,omitempty"`
	AllowNone  bool            `yaml:"allow_none,omitempty" json:"allow_none,omitempty"`
	DumpOnly   bool            `yaml:"dump_only,omitempty" json:"dump_only,omitempty"`
	Default    any             `yaml:"default,omitempty" json:"default,omitempty"`
	Choices    []any           `yaml:"choices,omitempty" json:"choices,omitempty"`
	Metadata   map[string]any  `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Inner      *FieldSpec      `yaml:"inner,omitempty" json:"inner,omitempty"`
	Values     *FieldSpec      `yaml:"values,omitempty" json:"values,omitempty"`
	Elements   []FieldSpec     `yaml:"elements,omitempty" json:"elements,omitempty"`
	Candidates []FieldSpec     `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Schema     string          `yaml:"schema,omitempty" json:"schema,omitempty"`
	Many       bool            `yaml:"many,omitempty" json:"many,omitempty"`
	Only       []string        `yaml:"only,omitempty" json:"only,omitempty"`
	Exclude    []string        `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Validate   []ValidatorSpec `yaml:"validate,omitempty" json:"validate,omitempty"`
	Mapping    map[string]any  `yaml:"mapping,omitempty" json:"mapping,omitempty"`

	// hasDefault records an explicit default key, including default: null.
	hasDefault bool
}

// HasDefault reports whether the field declares a default, null included.
func (f *FieldSpec) HasDefault() bool {
	return f.hasDefault || f.Default != nil
}

// UnmarshalYAML decodes the field and records whether a default key is present.
func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain FieldSpec
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "default" {
			f.hasDefault = true
		}
	}
	return nil
}

// UnmarshalJSON decodes the field and records whether a default key is present.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	type plain FieldSpec
	if err := json.Unmarshal(data, (*plain)(f)); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, f.hasDefault = keys["default"]
	return nil
}

// ValidatorSpec holds exactly one validation rule.
type ValidatorSpec struct {
	Length       *LengthSpec `yaml:"length,omitempty" json:"length,omitempty"`
	Range        *RangeSpec  `yaml:"range,omitempty" json:"range,omitempty"`
	OneOf        *OneOfSpec  `yaml:"one_of,omitempty" json:"one_of,omitempty"`
	Equal        any         `yaml:"equal,omitempty" json:"equal,omitempty"`
	Regexp       string      `yaml:"regexp,omitempty" json:"regexp,omitempty"`
	ContainsOnly []any       `yaml:"contains_only,omitempty" json:"contains_only,omitempty"`
}

type LengthSpec struct {
	Min   *int `yaml:"min,omitempty" json:"min,omitempty"`
	Max   *int `yaml:"max,omitempty" json:"max,omitempty"`
	Equal *int `yaml:"equal,omitempty" json:"equal,omitempty"`
}

// RangeSpec bounds are inclusive unless MinInclusive or MaxInclusive is false.
type RangeSpec struct {
	Min          *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max          *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	MinInclusive *bool    `yaml:"min_inclusive,omitempty" json:"min_inclusive,omitempty"`
	MaxInclusive *bool    `yaml:"max_inclusive,omitempty" json:"max_inclusive,omitempty"`
}

type OneOfSpec struct {
	Choices []any    `yaml:"choices" json:"choices"`
	Labels  []string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

func parseJSON(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err = json.Unmarshal(data, &doc); err != nil { //nolint:gocritic
		return nil, err
	}
	return &doc, nil
}

func parseYAML(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err = yaml.Unmarshal(data, &doc); err != nil { //nolint:gocritic
		return nil, err
	}
	return &doc, nil
}
