package rowextract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacell/graphtable/pkg/table"
)

func rows(t *testing.T, raws ...string) []table.Row {
	t.Helper()
	out := make([]table.Row, 0, len(raws))
	for _, raw := range raws {
		var r table.Row
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		out = append(out, r)
	}
	return out
}

func TestProject_EmptyExpressionIsIdentity(t *testing.T) {
	in := rows(t, `{"a":1}`)
	out := New(nil).Project(in, "")
	assert.Equal(t, in, out)
}

func TestProject_FlattensNestedNode(t *testing.T) {
	in := rows(t,
		`{"node":{"name":"a","count":1},"cursor":"x"}`,
		`{"node":{"name":"b","count":2},"cursor":"y"}`,
	)

	out := New(nil).Project(in, ".node")
	require.Len(t, out, 2)

	v, ok := out[0].Get("name")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, out[0].Has("cursor"))
}

func TestProject_BadExpressionKeepsRows(t *testing.T) {
	in := rows(t, `{"a":1}`)
	out := New(nil).Project(in, ".node[")
	assert.Equal(t, in, out)
}

func TestProject_NonObjectResultsDropped(t *testing.T) {
	in := rows(t, `{"node":{"name":"a"}}`, `{"other":1}`)
	out := New(nil).Project(in, ".node")
	require.Len(t, out, 1)
	assert.True(t, out[0].Has("name"))
}
