// Package jsonpatch computes RFC 6902 style patches between JSON documents.
// Used to report which figures moved after a cart change.
package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
)

// Operation is one patch step. Previous holds the value being replaced or
// removed; it is for display and is not part of the wire form.
type Operation struct {
	Op       string `json:"op"`
	Path     string `json:"path"`
	Value    any    `json:"value,omitempty"`
	Previous any    `json:"-"`
}

// Snapshot round-trips v through JSON so it can be diffed structurally.
func Snapshot(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Between snapshots before and after and returns the patch from one to the other.
func Between(before, after any) ([]Operation, error) {
	a, err := Snapshot(before)
	if err != nil {
		return nil, err
	}
	b, err := Snapshot(after)
	if err != nil {
		return nil, err
	}
	return Diff(a, b, ""), nil
}

// Diff computes the patch that transforms a into b. Both must be decoded JSON
// (maps, slices and scalars). Object keys are visited in sorted order so the
// result is deterministic.
func Diff(a, b any, path string) []Operation {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Operation{{Op: OpReplace, Path: path, Value: b, Previous: a}}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []Operation{{Op: OpReplace, Path: path, Value: b, Previous: a}}
	}
	return nil
}

func diffObjects(a, b map[string]any, path string) []Operation {
	var ops []Operation

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, Operation{Op: OpRemove, Path: path + "/" + escapeKey(k), Previous: a[k]})
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Operation{Op: OpAdd, Path: childPath, Value: b[k]})
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []any, path string) []Operation {
	var ops []Operation

	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// descending so earlier indices stay valid
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, Operation{Op: OpRemove, Path: path + "/" + strconv.Itoa(i), Previous: a[i]})
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, Operation{Op: OpAdd, Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}

	return ops
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

// UnescapeKey reverses escapeKey.
func UnescapeKey(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
