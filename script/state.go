package script

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/chloro-pn/wamon-go/value"
)

// Snapshot renders every global variable's current value into a single JSON
// document keyed by its mangled name, e.g. for inspection, diffing between
// two points in a running program, or shipping to a separate process. Only
// scalar globals serialize to a real JSON value; anything else (struct,
// list, pointer, func) serializes to its String() form under the same key,
// since those runtime values have no JSON-native shape of their own.
func (e *Engine) Snapshot() (string, error) {
	doc := "{}"
	for _, g := range e.ip.Globals {
		v, ok := e.ip.FindGlobal(g.Name)
		if !ok {
			continue
		}
		var err error
		doc, err = setJSON(doc, g.Name, v)
		if err != nil {
			return "", fmt.Errorf("script: snapshotting global %s: %w", g.Name, err)
		}
	}
	return doc, nil
}

// setJSON writes v into doc at the dotted path key with sjson.Set: an int,
// double, bool or string as the matching JSON scalar, and any other value
// as a JSON string holding its printed form.
func setJSON(doc, key string, v value.Value) (string, error) {
	switch tv := v.(type) {
	case *value.IntValue:
		return sjson.Set(doc, key, tv.Val)
	case *value.DoubleValue:
		return sjson.Set(doc, key, tv.Val)
	case *value.BoolValue:
		return sjson.Set(doc, key, tv.Val)
	case *value.StringValue:
		return sjson.Set(doc, key, tv.Val)
	default:
		return sjson.Set(doc, key, v.String())
	}
}

// QuerySnapshot runs a gjson path query against a document produced by
// Snapshot, returning the matched value's raw text and whether the path
// existed at all.
func QuerySnapshot(doc, path string) (string, bool) {
	r := gjson.Get(doc, path)
	if !r.Exists() {
		return "", false
	}
	return r.Raw, true
}
