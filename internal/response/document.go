// Package response provides the tool response document and its JSON and
// markdown renderers.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Document is an ordered string-keyed mapping built by a tool before
// formatting. Values are primitives, nested *Document, or []any sequences.
// Keys render in insertion order.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Error creates a document containing only an error message.
func Error(message string) *Document {
	return NewDocument().Set("error", message)
}

// Errorf creates an error document from a format string.
func Errorf(format string, args ...any) *Document {
	return Error(fmt.Sprintf(format, args...))
}

// Set adds or replaces a key. Replacing keeps the key's original position.
// Returns the document for chaining.
func (d *Document) Set(key string, value any) *Document {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value for a key and whether it is present.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether the key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	return d.keys
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// IsError reports whether the document carries a failure payload.
func (d *Document) IsError() bool {
	return d.Has("error")
}

// MarshalJSON serializes the document with keys in insertion order.
// Values that encoding/json cannot handle are coerced to their string
// representation, so marshaling never fails.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(marshalValue(d.values[key]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue encodes a single document value, coercing anything
// non-standard to a string.
func marshalValue(v any) []byte {
	switch val := v.(type) {
	case nil:
		return []byte("null")
	case *Document:
		b, _ := val.MarshalJSON()
		return b
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(marshalValue(item))
		}
		buf.WriteByte(']')
		return buf.Bytes()
	case time.Time:
		b, _ := json.Marshal(val.String())
		return b
	default:
		b, err := json.Marshal(val)
		if err != nil {
			b, _ = json.Marshal(fmt.Sprintf("%v", val))
		}
		return b
	}
}
