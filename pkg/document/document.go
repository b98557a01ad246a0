package document

import (
	"bytes"
	"encoding/json"
)

// Reserved keys of result documents.
const (
	KeyRawList = "@RAW@LIST"
	KeyCount   = "count"
	KeyCode    = "code"
	KeyMsg     = "msg"
)

// CodeSuccess is the code carried by success envelopes.
const CodeSuccess = 200

// Document is a map that remembers the order its keys were first set in.
type Document struct {
	keys   []string
	values map[string]any
}

// New returns an empty document with room for n keys.
func New(n int) *Document {
	return &Document{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// NewSuccess returns the envelope mutations answer with.
func NewSuccess() *Document {
	d := New(4)
	d.Set(KeyCode, CodeSuccess)
	d.Set(KeyMsg, "success")
	return d
}

// Set stores v under k. Re-setting a key keeps its original position.
func (d *Document) Set(k string, v any) {
	if _, ok := d.values[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.values[k] = v
}

func (d *Document) Get(k string) (any, bool) {
	v, ok := d.values[k]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Document) Len() int { return len(d.keys) }

// Clone returns a shallow copy; values are shared.
func (d *Document) Clone() *Document {
	c := New(len(d.keys))
	for _, k := range d.keys {
		c.Set(k, d.values[k])
	}
	return c
}

// Count returns the count entry as an int, or 0 when missing.
func (d *Document) Count() int {
	n, _ := d.values[KeyCount].(int)
	return n
}

// RawList returns the rows attached by raw-list promotion.
func (d *Document) RawList() []*Document {
	l, _ := d.values[KeyRawList].([]*Document)
	return l
}

// MarshalJSON writes the keys in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
