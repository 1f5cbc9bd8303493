package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lgarreta/ecuapassdocs/internal/common"
)

// Record is the flat Ecuapass form record. It always holds every key in Keys;
// a nil value means the attribute could not be filled.
type Record struct {
	values []*string
}

func NewRecord() *Record {
	return &Record{values: make([]*string, len(Keys))}
}

// Set stores a copy of v under k. Unknown keys are ignored.
func (r *Record) Set(k Key, v *string) {
	i, ok := keyIndex[k]
	if !ok {
		return
	}
	if v == nil {
		r.values[i] = nil
		return
	}
	s := *v
	r.values[i] = &s
}

func (r *Record) SetString(k Key, s string) {
	r.Set(k, &s)
}

// Get returns the value of k, or nil.
func (r *Record) Get(k Key) *string {
	i, ok := keyIndex[k]
	if !ok || r.values[i] == nil {
		return nil
	}
	s := *r.values[i]
	return &s
}

// Copy assigns to dst the value already stored under src.
func (r *Record) Copy(dst, src Key) {
	r.Set(dst, r.Get(src))
}

// Len is the number of keys, filled or not.
func (r *Record) Len() int { return len(r.values) }

// Filled counts keys holding a value.
func (r *Record) Filled() int {
	n := 0
	for _, v := range r.values {
		if v != nil {
			n++
		}
	}
	return n
}

// Map returns the record as a plain map, with nil for unfilled keys.
func (r *Record) Map() map[string]*string {
	m := make(map[string]*string, len(Keys))
	for _, k := range Keys {
		m[string(k)] = r.Get(k)
	}
	return m
}

// MarshalJSON writes the keys in form order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(string(k))
		vb, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var m map[string]*string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	rec := NewRecord()
	for k, v := range m {
		if _, ok := keyIndex[Key(k)]; !ok {
			return fmt.Errorf("record: unknown key %q", k)
		}
		rec.Set(Key(k), v)
	}
	*r = *rec
	return nil
}

// BuildRecordJSONSchema returns the JSON schema of a serialized record: every
// key required, no extra keys, values string or null.
func BuildRecordJSONSchema() map[string]any {
	props := make(map[string]any, len(Keys))
	required := make([]string, len(Keys))
	for i, k := range Keys {
		props[string(k)] = map[string]any{"type": []string{"string", "null"}}
		required[i] = string(k)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

// ValidateRecord checks a serialized record against the record schema.
func ValidateRecord(b []byte) error {
	recordSchemaOnce.Do(func() {
		recordSchema, recordSchemaErr = common.CompileSchema("record.json", BuildRecordJSONSchema())
	})
	if recordSchemaErr != nil {
		return recordSchemaErr
	}
	return common.ValidateJSON(recordSchema, b)
}
