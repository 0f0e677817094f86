package ast

import (
	"bytes"
	"encoding/json"
)

// JSONMember is one key/value pair of a JSONObject.
type JSONMember struct {
	Key   string
	Value any
}

// JSONObject is a decoded JSON object that keeps its members in source
// order. Nested objects are JSONObjects too; arrays are []any.
type JSONObject []JSONMember

// Set adds or replaces key. A replaced key keeps its first position.
func (o *JSONObject) Set(key string, value any) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, JSONMember{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o JSONObject) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the members in order, without HTML escaping.
func (o JSONObject) MarshalJSON() ([]byte, error) {
	out := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := encodeJSON(m.Key)
		if err != nil {
			return nil, err
		}
		val, err := encodeJSON(m.Value)
		if err != nil {
			return nil, err
		}
		out = append(append(append(out, key...), ':'), val...)
	}
	return append(out, '}'), nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
