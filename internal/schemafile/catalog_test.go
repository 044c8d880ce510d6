// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schemafile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/jsonform"
)

func TestLoadFS_Testdata(t *testing.T) {
	cat, err := LoadFS(os.DirFS("testdata"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Address", "User"}, cat.Names())
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "users.yaml", cat.Source("User"))
	assert.Equal(t, "address.json", cat.Source("Address"))

	user, ok := cat.Get("User")
	require.True(t, ok)
	assert.Equal(t, []any{"name", "age", "address"}, user.Metadata()[fieldgraph.UIOrderKey])
	require.Len(t, user.Fields(), 4)

	name := user.Fields()[0]
	assert.True(t, name.Required())
	assert.Equal(t, map[string]any{"title": "Full name"}, name.Metadata())
	require.Len(t, name.Validators(), 1)
	assert.Equal(t, fieldgraph.Length{Min: fieldgraph.Ptr(1), Max: fieldgraph.Ptr(100)}, name.Validators()[0])

	age := user.Fields()[1]
	assert.True(t, age.Nullable())
	def, ok := age.Default()
	assert.True(t, ok, "explicit null default is kept")
	assert.Nil(t, def)
	assert.Equal(t, fieldgraph.Range{
		Min: fieldgraph.Ptr(0.0), Max: fieldgraph.Ptr(150.0), MinInclusive: true, MaxInclusive: false,
	}, age.Validators()[0])

	address, ok := user.Fields()[2].(fieldgraph.Nesting)
	require.True(t, ok)
	addr, _ := cat.Get("Address")
	assert.Same(t, addr, address.Nested())

	tags, ok := user.Fields()[3].(fieldgraph.Container)
	require.True(t, ok)
	require.NotNil(t, tags.Inner())
	assert.Equal(t, fieldgraph.KindString, tags.Inner().Kind())
}

func TestLoadFS_CrossFileCycle(t *testing.T) {
	cat, err := LoadFS(os.DirFS("testdata"))
	require.NoError(t, err)

	addr, _ := cat.Get("Address")
	owner, ok := addr.Fields()[2].(fieldgraph.Nesting)
	require.True(t, ok)
	user, _ := cat.Get("User")
	assert.Same(t, user, owner.Nested())
	assert.Equal(t, []string{"name"}, owner.Only())

	zip := addr.Fields()[1]
	def, ok := zip.Default()
	assert.True(t, ok)
	assert.Equal(t, "00000", def)

	doc, err := jsonform.Convert(user)
	require.NoError(t, err)
	require.NotNil(t, doc.Definition("Address"))
	require.NotNil(t, doc.Definition("User2"))
	assert.Equal(t, []string{"name"}, doc.Definition("User2").Required)
	_, err = doc.Resolve()
	require.NoError(t, err)
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr error
		wantMsg string
	}{
		{
			name: "duplicate schema",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields: []\n")},
				"b.yaml": {Data: []byte("schemas:\n  User:\n    fields: []\n")},
			},
			wantErr: ErrDuplicateSchema,
			wantMsg: "a.yaml and b.yaml",
		},
		{
			name: "path in schema name",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  ../../x:\n    fields: []\n")},
			},
			wantErr: ErrInvalidName,
			wantMsg: "a.yaml",
		},
		{
			name: "separator in schema name",
			files: fstest.MapFS{
				"a.json": {Data: []byte(`{"schemas": {"billing/Address": {"fields": []}}}`)},
			},
			wantErr: ErrInvalidName,
			wantMsg: `"billing/Address"`,
		},
		{
			name: "empty schema name",
			files: fstest.MapFS{
				"a.json": {Data: []byte(`{"schemas": {"": {"fields": []}}}`)},
			},
			wantErr: ErrInvalidName,
		},
		{
			name: "unknown schema",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: nested, schema: Ghost}\n")},
			},
			wantErr: ErrUnknownSchema,
			wantMsg: `field "a"`,
		},
		{
			name: "nested without schema",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: nested}\n")},
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "missing type",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a}\n")},
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "missing inner type",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: list, inner: {name: x}}\n")},
			},
			wantErr: ErrInvalidField,
			wantMsg: "inner",
		},
		{
			name: "two rules in one validator",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: string, validate: [{regexp: x, length: {min: 1}}]}\n")},
			},
			wantErr: ErrInvalidField,
			wantMsg: "validate[0]",
		},
		{
			name: "empty validator",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: string, validate: [{}]}\n")},
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "label count mismatch",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("schemas:\n  User:\n    fields:\n      - {name: a, type: string, validate: [{one_of: {choices: [x, y], labels: [X]}}]}\n")},
			},
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadFS_InvalidSyntax(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"broken.json": {Data: []byte(`{"schemas": `)}})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "broken.json:"))
}

func TestLoadFS_SkipsUnrelatedFiles(t *testing.T) {
	cat, err := LoadFS(fstest.MapFS{
		"formschema.yaml":     {Data: []byte("version: 1\npath: .\n")},
		"README.md":           {Data: []byte("# docs")},
		"nested/deep/one.yml": {Data: []byte("schemas:\n  One:\n    fields: [{name: x, type: boolean}]\n")},
		"out/One.schema.json": {Data: []byte(`{"type": "object", "properties": {}}`)},
		"empty.yaml":          {Data: []byte("")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"One"}, cat.Names())
	assert.Equal(t, "nested/deep/one.yml", cat.Source("One"))
}

func TestBuild_Subfields(t *testing.T) {
	doc := &Document{Schemas: map[string]SchemaSpec{
		"Shape": {Fields: []FieldSpec{
			{Name: "point", Type: "tuple", Elements: []FieldSpec{{Type: "number"}, {Type: "number"}}},
			{Name: "labels", Type: "dict", Values: &FieldSpec{Type: "string"}},
			{Name: "value", Type: "union", Candidates: []FieldSpec{{Type: "string"}, {Type: "integer"}}},
			{Name: "color", Type: "enum", Choices: []any{"red", "green"}},
			{Name: "code", Type: "string", DataKey: "CODE", DumpOnly: true},
			{Name: "legacy", Type: "custom", Mapping: map[string]any{"type": "string"}},
		}},
	}}

	cat, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, "doc0", cat.Source("Shape"))

	shape, _ := cat.Get("Shape")
	fields := shape.Fields()
	require.Len(t, fields, 6)

	tuple, ok := fields[0].(fieldgraph.Tuple)
	require.True(t, ok)
	assert.Len(t, tuple.Elements(), 2)

	dict, ok := fields[1].(fieldgraph.Mapping)
	require.True(t, ok)
	assert.Equal(t, fieldgraph.KindString, dict.Values().Kind())

	union, ok := fields[2].(fieldgraph.Union)
	require.True(t, ok)
	assert.Len(t, union.Candidates(), 2)

	enum, ok := fields[3].(fieldgraph.Enumeration)
	require.True(t, ok)
	assert.Equal(t, []any{"red", "green"}, enum.Choices())

	assert.Equal(t, "CODE", fields[4].DataKey())
	assert.True(t, fields[4].DumpOnly())

	custom, ok := fields[5].(fieldgraph.CustomMapper) //nolint:staticcheck
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "string"}, custom.JSONSchemaMapping())

	_, hasDefault := fields[0].Default()
	assert.False(t, hasDefault)
}

func TestWriter_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		writer Writer
		file   string
	}{
		{"YAML", YAMLWriter, "example.yaml"},
		{"JSON", JSONWriter, "example.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			p, err := tt.writer.Write(Example(), dir, "example")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.file), p)

			cat, err := LoadFS(os.DirFS(dir))
			require.NoError(t, err)
			assert.Equal(t, []string{"Address", "User"}, cat.Names())

			user, _ := cat.Get("User")
			doc, err := jsonform.Convert(user)
			require.NoError(t, err)
			assert.NotNil(t, doc.Definition("Address"))
			assert.Equal(t, []string{"name", "email"}, doc.Schema.Required)
		})
	}
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.yaml", true},
		{"a.yml", true},
		{"a.json", true},
		{"a.txt", false},
		{"yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParserFor(tt.name)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"User", false},
		{"_internal", false},
		{"Address2", false},
		{"Größe", false},
		{"", true},
		{"2fa", true},
		{"billing/Address", true},
		{"..", true},
		{`a\b`, true},
		{"with space", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidName)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
