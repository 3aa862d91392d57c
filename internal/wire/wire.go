// Package wire provides typed access to loosely-typed JSON values as produced
// by decoding a response body into an interface{}.
//
// Every accessor either returns a value of the requested Go type or a
// *DecodeError naming the offending key, so that entity decoders can validate
// required keys and shapes at the network edge and nowhere else.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("response decode failed")

// DecodeError reports a missing key or a value of the wrong shape.
type DecodeError struct {
	Key     string
	Want    string
	Got     any
	Missing bool
}

func (e *DecodeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing required key %q", e.Key)
	}
	if e.Key == "" {
		return fmt.Sprintf("expected %s, got %s", e.Want, describe(e.Got))
	}
	return fmt.Sprintf("key %q: expected %s, got %s", e.Key, e.Want, describe(e.Got))
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Object is a decoded JSON object.
type Object map[string]any

// AsObject asserts that v is a JSON object.
func AsObject(v any) (Object, error) {
	switch o := v.(type) {
	case map[string]any:
		return Object(o), nil
	case Object:
		return o, nil
	}
	return nil, &DecodeError{Want: "object", Got: v}
}

// AsList asserts that v is a JSON array. An empty object is accepted as an
// empty array because an empty success body decodes to one.
func AsList(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case nil:
		return nil, nil
	case map[string]any:
		if len(l) == 0 {
			return nil, nil
		}
	}
	return nil, &DecodeError{Want: "array", Got: v}
}

// Has reports whether key is present, even if its value is null.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o Object) lookup(key string) (any, error) {
	v, ok := o[key]
	if !ok {
		return nil, &DecodeError{Key: key, Missing: true}
	}
	return v, nil
}

// String returns a required string value.
func (o Object) String(key string) (string, error) {
	v, err := o.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// StringOr returns the string at key, or def when the key is absent or null.
func (o Object) StringOr(key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// OptionalString returns nil when the key is absent or null.
func (o Object) OptionalString(key string) (*string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &DecodeError{Key: key, Want: "string", Got: v}
	}
	return &s, nil
}

// Int returns a required integral number.
func (o Object) Int(key string) (int64, error) {
	v, err := o.lookup(key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &DecodeError{Key: key, Want: "integer", Got: v}
	}
	return n, nil
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Bool returns a required boolean.
func (o Object) Bool(key string) (bool, error) {
	v, err := o.lookup(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &DecodeError{Key: key, Want: "bool", Got: v}
	}
	return b, nil
}

// Object returns a required nested object.
func (o Object) Object(key string) (Object, error) {
	v, err := o.lookup(key)
	if err != nil {
		return nil, err
	}
	obj, err := AsObject(v)
	if err != nil {
		return nil, &DecodeError{Key: key, Want: "object", Got: v}
	}
	return obj, nil
}

// List returns a required array.
func (o Object) List(key string) ([]any, error) {
	v, err := o.lookup(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]any)
	if !ok {
		return nil, &DecodeError{Key: key, Want: "array", Got: v}
	}
	return l, nil
}

// Strings returns a required array of strings. Numbers are accepted and
// rendered in decimal, since some servers emit numeric slugs.
func (o Object) Strings(key string) ([]string, error) {
	l, err := o.List(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(l))
	for i, item := range l {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case json.Number:
			out = append(out, s.String())
		case float64:
			out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
		default:
			return nil, &DecodeError{Key: fmt.Sprintf("%s[%d]", key, i), Want: "string", Got: item}
		}
	}
	return out, nil
}

// Path prefixes the key of a *DecodeError with a parent key, so that errors
// from nested decoders read like "owner.netId" or "secrets[0].owner.netId".
func Path(parent string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		key := parent
		switch {
		case strings.HasPrefix(de.Key, "["):
			key = parent + de.Key
		case de.Key != "":
			key = parent + "." + de.Key
		}
		return &DecodeError{Key: key, Want: de.Want, Got: de.Got, Missing: de.Missing}
	}
	return err
}
