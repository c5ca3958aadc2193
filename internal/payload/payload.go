// Package payload reads loosely-typed fields out of upstream JSON bodies.
// The provider returns the same logical field as a number in one API and a
// string in the other, so every accessor accepts both encodings.
package payload

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Get resolves a dotted path in body. The provider wraps most answers in a
// "data" object but keeps some fields beside it, so the path is tried under
// "data" first and then at the top level. Missing keys and JSON null yield
// a Result for which Present is false.
func Get(body []byte, path string) gjson.Result {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}
	}
	if r := gjson.GetBytes(body, "data."+path); Present(r) {
		return r
	}
	return Lookup(gjson.ParseBytes(body), path)
}

// First returns the first of paths that resolves through Get.
func First(body []byte, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := Get(body, p); Present(r) {
			return r
		}
	}
	return gjson.Result{}
}

// Lookup resolves path relative to r without the "data" fallback.
func Lookup(r gjson.Result, path string) gjson.Result {
	v := r.Get(path)
	if !Present(v) {
		return gjson.Result{}
	}
	return v
}

// Present reports whether r holds a non-null value.
func Present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// Float decodes a JSON number or a numeric string, tolerating a trailing "%".
func Float(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(r.Str), "%"), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int decodes an integral JSON number or numeric string.
func Int(r gjson.Result) (int, bool) {
	f, ok := Float(r)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// String decodes a JSON string.
func String(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

// ID decodes an identifier that may be sent as a string or an integer.
func ID(r gjson.Result) (string, bool) {
	if s, ok := String(r); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	if n, ok := Int(r); ok {
		return strconv.Itoa(n), true
	}
	return "", false
}
