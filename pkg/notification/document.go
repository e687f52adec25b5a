package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is an insertion-ordered attribute bag.
// Re-setting a key overwrites its value but keeps its original position.
type Document struct {
	attrs *orderedmap.OrderedMap[string, any]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{attrs: orderedmap.New[string, any]()}
}

// DocumentFromMap builds a document from a plain map. Keys are inserted in lexical order.
func DocumentFromMap(data map[string]any) (*Document, error) {
	d := NewDocument()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := d.Set(k, data[k]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Set writes value under name, last write wins.
func (d *Document) Set(name string, value any) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyAttributeName
	}
	d.attrs.Set(name, value)
	return nil
}

// Get returns the value stored under name.
func (d *Document) Get(name string) (any, bool) {
	return d.attrs.Get(name)
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.attrs.Get(name)
	return ok
}

// Delete removes name from the document.
func (d *Document) Delete(name string) {
	d.attrs.Delete(name)
}

// Len returns the number of attributes.
func (d *Document) Len() int {
	return d.attrs.Len()
}

// Keys returns attribute names in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.attrs.Len())
	for pair := d.attrs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns a deep copy. Later writes to either document do not affect the other.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for pair := d.attrs.Oldest(); pair != nil; pair = pair.Next() {
		c.attrs.Set(pair.Key, cloneValue(pair.Value))
	}
	return c
}

// Map returns a deep plain-map copy of the document.
func (d *Document) Map() map[string]any {
	out := make(map[string]any, d.attrs.Len())
	for pair := d.attrs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = cloneValue(pair.Value)
	}
	return out
}

// MarshalJSON encodes the document as a JSON object in insertion order.
// HTML characters are not escaped.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for pair := d.attrs.Oldest(); pair != nil; pair = pair.Next() {
		if pair != d.attrs.Oldest() {
			buf.WriteByte(',')
		}
		if err := enc.Encode(pair.Key); err != nil {
			return nil, fmt.Errorf("encode key %q: %w", pair.Key, err)
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", pair.Key, err)
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Encoder.Encode terminates every value with a newline.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Filter:
		out := make(Filter, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []Filter:
		out := make([]Filter, len(val))
		for i, f := range val {
			out[i] = cloneValue(f).(Filter)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item).(map[string]any)
		}
		return out
	case []map[string]string:
		out := make([]map[string]string, len(val))
		for i, item := range val {
			out[i] = maps.Clone(item)
		}
		return out
	case LocalizedText:
		return maps.Clone(val)
	case map[string]string:
		return maps.Clone(val)
	case []string:
		return append([]string(nil), val...)
	case *Document:
		return val.Clone()
	default:
		return v
	}
}
