package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDiff_NoChanges(t *testing.T) {
	doc := decode(t, `{"totals":{"total_annual_value":182115},"ids":["a","b"]}`)
	assert.Empty(t, Diff(doc, doc, ""))
}

func TestDiff_ObjectChanges(t *testing.T) {
	a := decode(t, `{"keep":1,"gone":true,"value":182115,"nested":{"x":1}}`)
	b := decode(t, `{"keep":1,"added":"yes","value":200000,"nested":{"x":2}}`)

	ops := Diff(a, b, "")
	assert.Equal(t, []Operation{
		{Op: OpRemove, Path: "/gone", Previous: true},
		{Op: OpAdd, Path: "/added", Value: "yes"},
		{Op: OpReplace, Path: "/nested/x", Value: 2.0, Previous: 1.0},
		{Op: OpReplace, Path: "/value", Value: 200000.0, Previous: 182115.0},
	}, ops)
}

func TestDiff_Arrays(t *testing.T) {
	a := decode(t, `[1,2,3,4]`)
	b := decode(t, `[1,5]`)

	ops := Diff(a, b, "/list")
	require.Len(t, ops, 3)
	assert.Equal(t, Operation{Op: OpReplace, Path: "/list/1", Value: 5.0, Previous: 2.0}, ops[0])
	assert.Equal(t, "/list/3", ops[1].Path)
	assert.Equal(t, "/list/2", ops[2].Path)

	grow := Diff(b, a, "")
	require.Len(t, grow, 3)
	assert.Equal(t, Operation{Op: OpAdd, Path: "/2", Value: 3.0}, grow[1])
}

func TestDiff_TypeChangeReplaces(t *testing.T) {
	ops := Diff(decode(t, `{"a":{"b":1}}`), decode(t, `{"a":[1]}`), "")
	assert.Equal(t, []Operation{{Op: OpReplace, Path: "/a", Value: []any{1.0}, Previous: map[string]any{"b": 1.0}}}, ops)

	ops = Diff(nil, decode(t, `{"a":1}`), "")
	require.Len(t, ops, 1)
	assert.Equal(t, OpReplace, ops[0].Op)
}

func TestBetween_Structs(t *testing.T) {
	type totals struct {
		Value float64 `json:"value"`
	}
	ops, err := Between(totals{Value: 10}, totals{Value: 0})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	data, err := json.Marshal(ops[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"replace","path":"/value","value":0}`, string(data))
}

func TestEscapeKey(t *testing.T) {
	assert.Equal(t, "a~1b~0c", escapeKey("a/b~c"))
	assert.Equal(t, "a/b~c", UnescapeKey(escapeKey("a/b~c")))

	ops := Diff(decode(t, `{}`), decode(t, `{"a/b":1}`), "")
	assert.Equal(t, "/a~1b", ops[0].Path)
}
