// Package jsonutil builds JSON objects whose keys keep insertion order.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that marshals its fields in order.
type Object []Field

var _ json.Marshaler = Object(nil)

// Set marshals value and stores it under key, replacing an existing field in
// place.
func (o *Object) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	o.SetRaw(key, raw)
	return nil
}

// SetRaw stores an already encoded value under key.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = raw
			return
		}
	}
	*o = append(*o, Field{Key: key, Value: raw})
}

// Get returns the raw value stored under key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// WithoutNulls drops fields whose value is JSON null, except the keys in keep.
func (o Object) WithoutNulls(keep ...string) Object {
	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[k] = struct{}{}
	}
	out := make(Object, 0, len(o))
	for _, f := range o {
		if _, ok := kept[f.Key]; !ok && IsNull(f.Value) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// MarshalJSON writes the fields in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Fields encodes value and, when the encoding is a JSON object, returns its
// fields in encoded order. ok is false for any other JSON value.
func Fields(value any) (fields Object, ok bool, err error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false, err
	}
	return ParseObject(raw)
}

// ParseObject splits raw into ordered fields. ok is false when raw is not a
// JSON object.
func ParseObject(raw json.RawMessage) (Object, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, false, err
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, false, nil
	}
	out := Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false, err
		}
		key, isKey := tok.(string)
		if !isKey {
			return nil, false, fmt.Errorf("jsonutil: unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false, err
		}
		out = append(out, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, false, err
	}
	return out, true, nil
}

// IsNull reports whether raw encodes JSON null.
func IsNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Encode marshals value, indenting with indent when it is not empty.
func Encode(value any, indent string) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return raw, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
