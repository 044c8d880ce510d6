// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadJSON(t *testing.T, data string) *Schema {
	t.Helper()
	var schema Schema
	require.NoError(t, json.Unmarshal([]byte(data), &schema))
	return &schema
}

func TestTraverse_SimpleSchema(t *testing.T) {
	schema := loadJSON(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}, "age": {"type": "integer"}}
	}`)

	var types []string
	for s := range Traverse(schema, nil) {
		types = append(types, s.Type)
	}

	// Root, then properties sorted by name.
	assert.Equal(t, []string{"object", "integer", "string"}, types)
}

func TestTraverse_Combinators(t *testing.T) {
	schema := loadJSON(t, `{
		"anyOf": [{"type": "string"}, {"type": "null"}],
		"allOf": [{"minLength": 1}],
		"not": {"type": "number"},
		"items": [{"type": "string"}, {"type": "integer"}]
	}`)

	count := 0
	for range Traverse(schema, nil) {
		count++
	}

	// Root + 2 anyOf + 1 allOf + not + 2 positional items
	assert.Equal(t, 7, count)
}

func TestTraverse_FollowsRefs(t *testing.T) {
	schema := loadJSON(t, `{
		"properties": {"node": {"$ref": "#/definitions/Node"}},
		"definitions": {
			"Node": {
				"properties": {
					"value": {"type": "string"},
					"next": {"$ref": "#/definitions/Node"}
				}
			}
		}
	}`)

	var withRefs, withoutRefs int
	for range Traverse(schema, DefinitionResolver(schema)) {
		withRefs++
	}
	for range Traverse(schema, nil) {
		withoutRefs++
	}

	// Each node is yielded once even though the definition is reachable twice.
	assert.Equal(t, 5, withRefs)
	assert.Equal(t, withRefs, withoutRefs)
}

func TestTraverse_EarlyStop(t *testing.T) {
	schema := loadJSON(t, `{"properties": {"a": {}, "b": {}, "c": {}}}`)

	count := 0
	for range Traverse(schema, nil) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestDefinitionResolver(t *testing.T) {
	schema := loadJSON(t, `{"definitions": {"A": {"type": "string"}}}`)
	resolve := DefinitionResolver(schema)

	require.NotNil(t, resolve("#/definitions/A"))
	assert.Equal(t, "string", resolve("#/definitions/A").Type)
	assert.Nil(t, resolve("#/definitions/B"))
	assert.Nil(t, resolve("other.json"))
}

func TestReferences(t *testing.T) {
	schema := loadJSON(t, `{
		"properties": {
			"b": {"$ref": "#/definitions/B"},
			"a": {"type": "array", "items": {"$ref": "#/definitions/A"}},
			"again": {"$ref": "#/definitions/B"}
		},
		"definitions": {"A": {"type": "string"}, "B": {"$ref": "#/definitions/A"}}
	}`)

	assert.Equal(t, []string{"A", "B"}, References(schema))
}
