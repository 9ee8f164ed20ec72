package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnConfig_Valid(t *testing.T) {
	cols, err := ParseColumnConfig(`[
		{"label":"Name","fieldName":"name","type":"text"},
		{"label":"When","fieldName":"when","type":"date-local"}
	]`)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, TypeDateLocal, cols[1].Type)
}

func TestParseColumnConfig_BadJSON(t *testing.T) {
	_, err := ParseColumnConfig(`{not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseColumnConfig_UnknownType(t *testing.T) {
	_, err := ParseColumnConfig(`[{"fieldName":"x","type":"picture"}]`)
	require.Error(t, err)
}

func TestParseColumnConfig_NotAnArray(t *testing.T) {
	_, err := ParseColumnConfig(`{"fieldName":"x"}`)
	require.Error(t, err)
}

func TestParseColumnConfig_DuplicateFields(t *testing.T) {
	_, err := ParseColumnConfig(`[{"fieldName":"x"},{"fieldName":"x"}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestTableSchema_MapsColumnTypes(t *testing.T) {
	schema := TableSchema([]Column{
		{Label: "Name", FieldName: "name", Type: TypeText},
		{Label: "Count", FieldName: "count", Type: TypeNumber},
		{Label: "Link", FieldName: "link", Type: TypeURL},
	})

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])

	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	count := props["count"].(map[string]any)
	assert.Equal(t, "number", count["type"])
	link := props["link"].(map[string]any)
	assert.Equal(t, "uri", link["format"])
}

func TestRow_JSONRoundTripPreservesOrder(t *testing.T) {
	raw := `{"z":1,"a":"x","m":true}`
	var r Row
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, []string{"z", "a", "m"}, r.Keys())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))

	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "x", v)
	assert.False(t, r.Has("missing"))
}

func TestRow_ZeroValueIsEmpty(t *testing.T) {
	var r Row
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Keys())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
