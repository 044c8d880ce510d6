// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fg "github.com/dacolabs/formschema/fieldgraph"
	"github.com/dacolabs/formschema/internal/jschema"
)

func resolveField(t *testing.T, c *Converter, f fg.Field) string {
	t.Helper()
	cv := &conversion{conv: c}
	cv.reg = newRegistry(cv)
	s, err := cv.field(f)
	require.NoError(t, err)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func TestMapType_Builtins(t *testing.T) {
	tests := []struct {
		kind fg.Kind
		want string
	}{
		{fg.KindString, `{"type":"string"}`},
		{fg.KindEmail, `{"type":"string"}`},
		{fg.KindURL, `{"type":"string"}`},
		{fg.KindIP, `{"type":"string"}`},
		{fg.KindRaw, `{"type":"string"}`},
		{fg.KindTimeDelta, `{"type":"string"}`},
		{fg.KindInteger, `{"type":"number","format":"integer"}`},
		{fg.KindNumber, `{"type":"number","format":"number"}`},
		{fg.KindFloat, `{"type":"number","format":"float"}`},
		{fg.KindDecimal, `{"type":"number","format":"decimal"}`},
		{fg.KindBoolean, `{"type":"boolean"}`},
		{fg.KindDate, `{"type":"string","format":"date"}`},
		{fg.KindDateTime, `{"type":"string","format":"date-time"}`},
		{fg.KindTime, `{"type":"string","format":"time"}`},
		{fg.KindUUID, `{"type":"string","format":"uuid"}`},
		{fg.KindList, `{"type":"array"}`},
		{fg.KindSet, `{"type":"array"}`},
		{fg.KindTuple, `{"type":"array"}`},
		{fg.KindDict, `{"type":"object"}`},
	}

	c := New()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s, err := c.mapType(fg.NewField("f", tt.kind))
			require.NoError(t, err)
			data, err := json.Marshal(s)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestMapType_FreshFragments(t *testing.T) {
	c := New()
	f := fg.NewField("f", fg.KindString)

	a, err := c.mapType(f)
	require.NoError(t, err)
	b, err := c.mapType(f)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestMapType_AliasMatchesBuiltin(t *testing.T) {
	tests := []struct {
		alias string
		kind  fg.Kind
	}{
		{"str", fg.KindString},
		{"int", fg.KindInteger},
		{"float", fg.KindFloat},
		{"bool", fg.KindBoolean},
		{"list", fg.KindList},
		{"dict", fg.KindDict},
		{"uuid", fg.KindUUID},
		{"datetime", fg.KindDateTime},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			aliased := resolveField(t, c, fg.NewField("custom", fg.Kind("geo"), fg.Meta(fg.TypeAliasKey, tt.alias)))
			builtin := resolveField(t, c, fg.NewField("custom", tt.kind))
			assert.JSONEq(t, builtin, aliased)
		})
	}
}

func TestMapType_AliasBypassesKindDispatch(t *testing.T) {
	c := New()
	f := fg.NewField("ref", fg.KindNested, fg.Meta(fg.TypeAliasKey, "str"))

	assert.JSONEq(t, `{"type":"string","title":"ref"}`, resolveField(t, c, f))
}

func TestMapType_Precedence(t *testing.T) {
	c := New(WithKind("geo", Fragment(map[string]any{"type": "string", "format": "geo"})))

	tests := []struct {
		name  string
		field fg.Field
		want  string
	}{
		{
			"registered kind",
			fg.NewField("loc", "geo"),
			`{"type":"string","format":"geo","title":"loc"}`,
		},
		{
			"alias beats registered kind",
			fg.NewField("loc", "geo", fg.Meta(fg.TypeAliasKey, "float")),
			`{"type":"number","format":"float","title":"loc"}`,
		},
		{
			"custom mapping beats alias",
			fg.NewField("loc", "geo",
				fg.Meta(fg.TypeAliasKey, "float"),
				fg.CustomMapping(map[string]any{"type": "string", "pattern": "^[0-9,.]+$"})), //nolint:staticcheck
			`{"type":"string","pattern":"^[0-9,.]+$","title":"loc"}`,
		},
		{
			"custom mapping beats builtin",
			fg.NewField("when", fg.KindDate, fg.CustomMapping(map[string]any{"type": "integer"})), //nolint:staticcheck
			`{"type":"integer","title":"when"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, resolveField(t, c, tt.field))
		})
	}
}

func TestMapType_RegisteredFragmentsAreCopied(t *testing.T) {
	shared := &jschema.Schema{Type: "string", Format: "geo"}
	c := New(WithKind("geo", func(fg.Field) (*jschema.Schema, error) { return shared, nil }))

	a, err := c.mapType(fg.NewField("a", "geo"))
	require.NoError(t, err)
	b, err := c.mapType(fg.NewField("b", "geo"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, shared, a)
}

func TestFieldDecorations(t *testing.T) {
	tests := []struct {
		name  string
		field fg.Field
		want  string
	}{
		{
			"read only",
			fg.NewField("id", fg.KindUUID, fg.DumpOnly()),
			`{"type":"string","format":"uuid","title":"id","readOnly":true}`,
		},
		{
			"static default",
			fg.NewField("role", fg.KindString, fg.Default("user")),
			`{"type":"string","title":"role","default":"user"}`,
		},
		{
			"computed default skipped",
			fg.NewField("created", fg.KindDateTime, fg.DefaultFunc(func() any { return "now" })),
			`{"type":"string","format":"date-time","title":"created"}`,
		},
		{
			"nullable",
			fg.NewField("nick", fg.KindString, fg.AllowNone()),
			`{"type":["string","null"],"title":"nick"}`,
		},
		{
			"metadata passthrough",
			fg.NewField("bio", fg.KindString, fg.Meta("description", "About you"), fg.Meta("x-widget", "textarea")),
			`{"type":"string","title":"bio","description":"About you","x-widget":"textarea"}`,
		},
		{
			"title override",
			fg.NewField("bio", fg.KindString, fg.Meta("title", "Biography")),
			`{"type":"string","title":"Biography"}`,
		},
		{
			"reserved keys dropped",
			fg.NewField("bio", fg.KindString, fg.Meta("name", "about"), fg.Meta(fg.TypeAliasKey, "str")),
			`{"type":"string","title":"bio"}`,
		},
		{
			"legacy metadata bag",
			fg.NewField("bio", fg.KindString,
				fg.Meta("metadata", map[string]any{"description": "legacy", "examples": []any{"x"}}),
				fg.Meta("description", "current")),
			`{"type":"string","title":"bio","description":"current","examples":["x"]}`,
		},
		{
			"list with inner",
			fg.NewField("tags", fg.KindList, fg.Inner(fg.NewField("tag", fg.KindString))),
			`{"type":"array","title":"tags","items":{"type":"string","title":"tag"}}`,
		},
		{
			"list without inner",
			fg.NewField("tags", fg.KindList),
			`{"type":"array","title":"tags","items":true}`,
		},
		{
			"tuple",
			fg.NewField("point", fg.KindTuple, fg.Elements(fg.NewField("", fg.KindFloat), fg.NewField("", fg.KindFloat))),
			`{"type":"array","title":"point","items":[{"type":"number","format":"float"},{"type":"number","format":"float"}]}`,
		},
		{
			"dict with values",
			fg.NewField("scores", fg.KindDict, fg.Values(fg.NewField("", fg.KindInteger))),
			`{"type":"object","title":"scores","additionalProperties":{"type":"number","format":"integer"}}`,
		},
		{
			"dict without values",
			fg.NewField("extra", fg.KindDict),
			`{"type":"object","title":"extra","additionalProperties":true}`,
		},
		{
			"union",
			fg.NewField("id", fg.KindUnion, fg.Candidates(fg.NewField("", fg.KindInteger), fg.NewField("", fg.KindString))),
			`{"anyOf":[{"type":"number","format":"integer"},{"type":"string"}]}`,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, resolveField(t, c, tt.field))
		})
	}
}

func TestNestedField(t *testing.T) {
	address := fg.NewObject("Address", fg.NewField("street", fg.KindString))

	tests := []struct {
		name  string
		field fg.Field
		want  string
	}{
		{
			"single",
			fg.NewField("home", fg.KindNested, fg.Nest(address)),
			`{"$ref":"#/definitions/Address"}`,
		},
		{
			"metadata passthrough",
			fg.NewField("home", fg.KindNested, fg.Nest(address), fg.Meta("description", "Home address")),
			`{"$ref":"#/definitions/Address","description":"Home address"}`,
		},
		{
			"many",
			fg.NewField("homes", fg.KindNested, fg.Nest(address), fg.Many()),
			`{"type":"array","items":{"$ref":"#/definitions/Address"}}`,
		},
		{
			"many nullable",
			fg.NewField("homes", fg.KindNested, fg.Nest(address), fg.Many(), fg.AllowNone()),
			`{"type":["array","null"],"items":{"$ref":"#/definitions/Address"}}`,
		},
		{
			"single nullable",
			fg.NewField("home", fg.KindNested, fg.Nest(address), fg.AllowNone()),
			`{"anyOf":[{"$ref":"#/definitions/Address"},{"type":"null"}]}`,
		},
		{
			"list of nested",
			fg.NewField("homes", fg.KindList, fg.Inner(fg.NewField("", fg.KindNested, fg.Nest(address)))),
			`{"type":"array","title":"homes","items":{"$ref":"#/definitions/Address"}}`,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, resolveField(t, c, tt.field))
		})
	}
}

func TestPropertyKey(t *testing.T) {
	assert.Equal(t, "name", PropertyKey(fg.NewField("name", fg.KindString)))
	assert.Equal(t, "full_name", PropertyKey(fg.NewField("name", fg.KindString, fg.DataKey("full_name"))))
	assert.Equal(t, "fullName", PropertyKey(fg.NewField("name", fg.KindString, fg.DataKey("full_name"), fg.Meta("name", "fullName"))))
}

func TestIsBuiltinKind(t *testing.T) {
	assert.True(t, IsBuiltinKind(fg.KindString))
	assert.True(t, IsBuiltinKind(fg.KindNested))
	assert.False(t, IsBuiltinKind("geo"))
}
