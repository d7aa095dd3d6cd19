package formeval

import (
	"encoding/json"
	"math/big"
	"reflect"
	"regexp"
	"sort"
)

// indexSegment matches a pure integer path segment between two dots.
var indexSegment = regexp.MustCompile(`\.\d+\.`)

// normalizePath strips integer segments from a dotted field path.
// Array indices never enter the prefix, but an object key that is itself
// an integer would, and such keys collapse the same way.
func normalizePath(path string) string {
	return indexSegment.ReplaceAllString(path, ".")
}

// lookup returns the value stored at key, or nil when the key is absent.
// An absent key and a key holding JSON null are treated the same.
func lookup(obj map[string]any, key string) any {
	if obj == nil {
		return nil
	}
	return obj[key]
}

// asObject returns v as a JSON object, or an empty object when v is
// missing or of another type.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// predictedList returns a predicted array padded with empty objects to at
// least n elements. A missing or non-array value yields n empty objects.
func predictedList(v any, n int) []any {
	list, _ := v.([]any)
	if len(list) >= n {
		return list
	}
	padded := make([]any, n)
	copy(padded, list)
	for i := len(list); i < n; i++ {
		padded[i] = map[string]any{}
	}
	return padded
}

// valuesEqual reports whether two decoded JSON values are equal.
// Values of different JSON types are never equal. Numbers compare by
// exact value, so 1 and 1.0 match while integers beyond 2^53 stay distinct.
func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !valuesEqual(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	}

	ra, aNum := numberValue(a)
	rb, bNum := numberValue(b)
	if aNum || bNum {
		if !aNum || !bNum {
			return false
		}
		if ra == nil || rb == nil {
			return reflect.DeepEqual(a, b)
		}
		return ra.Cmp(rb) == 0
	}
	return reflect.DeepEqual(a, b)
}

// numberValue converts a decoded JSON number to an exact rational.
// The second result reports whether v is a number at all; the rational is
// nil when the number cannot be represented.
func numberValue(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(string(n))
		if !ok {
			return nil, true
		}
		return r, true
	case float64:
		return new(big.Rat).SetFloat64(n), true
	}
	return nil, false
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
