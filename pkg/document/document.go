// Package document reads the loosely shaped JSON documents returned by the
// Ekispert route search API.
//
// Documents are decoded into plain maps and slices and are never mutated.
// The API collapses a list of one element into a bare object, so any field
// that may repeat has to be read through List before it is iterated.
package document

import (
	"encoding/json"
	"io"
	"strconv"
)

// Decode reads a single JSON document, keeping numbers as json.Number so
// integer fields survive untouched.
func Decode(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// List returns value unchanged when it is already a list, otherwise a list
// holding just value. A nil value becomes a list with one nil element.
func List(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}

	return []any{value}
}

// Get follows path through nested objects. It reports false if a step is
// absent or the value at that step is not an object.
func Get(value any, path ...string) (any, bool) {
	current := value

	for _, key := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = object[key]
		if !ok {
			return nil, false
		}
	}

	return current, current != nil
}

// String reads a scalar at path as text. Numbers are formatted back to
// their literal form.
func String(value any, path ...string) (string, bool) {
	field, ok := Get(value, path...)
	if !ok {
		return "", false
	}

	switch v := field.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}

	return "", false
}
