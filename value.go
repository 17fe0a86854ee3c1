package jsondiff

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
)

// valueKind enumerates the atoms in our universe: the types of data we will
// encounter while computing a diff.
type valueKind uint8

const (
	vtUnknown valueKind = iota
	vtNull
	vtBool
	vtInt
	vtFloat
	vtString
	vtArray
	vtObject
)

func kindOf(v interface{}) valueKind {
	switch v.(type) {
	case nil:
		return vtNull
	case bool:
		return vtBool
	case int64:
		return vtInt
	case float64:
		return vtFloat
	case string:
		return vtString
	case []interface{}:
		return vtArray
	case map[string]interface{}:
		return vtObject
	default:
		return vtUnknown
	}
}

// DecodeJSON decodes data into the package's value model. Numbers are tried
// as int64 first, so an integral JSON number decodes as an int64 before
// falling back to float64.
func DecodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// normalize maps a decoded value onto the canonical model: json.Number and
// the native go numeric types collapse to int64 or float64, compound values
// are rebuilt so the result shares no structure with the input.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case nil, bool, string, int64, float64:
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		if uint64(x) > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case float32:
		return float64(x)
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, el := range x {
			out[i] = normalize(el)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, el := range x {
			out[k] = normalize(el)
		}
		return out
	default:
		return v
	}
}

// valueEqual is structural equality over the value model. Comparison is
// exact: int64(1) and float64(1) are not equal.
func valueEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}
