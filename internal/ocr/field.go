package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a named, typed region recognized by the custom document model.
// Content holds the service's flattened text (line breaks replaced by spaces)
// and is nil when the service found nothing for the field.
type Field struct {
	Name            string
	Type            ValueType
	Content         *string
	Confidence      float64
	BoundingRegions []BoundingRegion
	Value           Value

	raw json.RawMessage
}

// Region returns the polygon of the first bounding region.
func (f *Field) Region() (Polygon, bool) {
	if f == nil || len(f.BoundingRegions) == 0 {
		return nil, false
	}
	return f.BoundingRegions[0].Polygon, true
}

// ContentText returns the field content, or nil when absent.
func (f *Field) ContentText() *string {
	if f == nil || f.Content == nil {
		return nil
	}
	s := *f.Content
	return &s
}

// ValueText renders the typed value as text, or nil when there is none.
func (f *Field) ValueText() *string {
	if f == nil || f.Value == nil {
		return nil
	}
	s, ok := f.Value.Text()
	if !ok {
		return nil
	}
	return &s
}

// Clone copies the field. Nested array/object values are shared; they are never
// rewritten after decoding.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	c := *f
	c.Content = f.ContentText()
	c.BoundingRegions = append([]BoundingRegion(nil), f.BoundingRegions...)
	return &c
}

type rawField struct {
	ValueType       string           `json:"value_type"`
	Value           json.RawMessage  `json:"value"`
	Content         *string          `json:"content"`
	Confidence      float64          `json:"confidence"`
	BoundingRegions []BoundingRegion `json:"bounding_regions"`
}

func decodeField(name string, b []byte) (*Field, error) {
	var rf rawField
	if err := json.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	f := &Field{
		Name:            name,
		Type:            ValueType(rf.ValueType),
		Content:         rf.Content,
		Confidence:      rf.Confidence,
		BoundingRegions: rf.BoundingRegions,
		raw:             rf.Value,
	}
	v, err := decodeValue(f.Type, rf.Value, rf.Content)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	f.Value = v
	return f, nil
}

func (f *Field) MarshalJSON() ([]byte, error) {
	value := f.raw
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	return json.Marshal(rawField{
		ValueType:       string(f.Type),
		Value:           value,
		Content:         f.Content,
		Confidence:      f.Confidence,
		BoundingRegions: f.BoundingRegions,
	})
}

// FieldSet keeps fields by name in the order they were declared in the
// analysis result. That order is the scan order of the line reconstructor.
type FieldSet struct {
	names  []string
	byName map[string]*Field
}

func NewFieldSet() *FieldSet {
	return &FieldSet{byName: map[string]*Field{}}
}

// Add appends f, or replaces the field with the same name in place.
func (s *FieldSet) Add(f *Field) {
	if _, ok := s.byName[f.Name]; !ok {
		s.names = append(s.names, f.Name)
	}
	s.byName[f.Name] = f
}

// Get returns the field named name, or nil.
func (s *FieldSet) Get(name string) *Field {
	if s == nil {
		return nil
	}
	return s.byName[name]
}

func (s *FieldSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

func (s *FieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Clone returns a set whose fields can be modified without touching s.
func (s *FieldSet) Clone() *FieldSet {
	out := NewFieldSet()
	if s == nil {
		return out
	}
	for _, name := range s.names {
		out.Add(s.byName[name].Clone())
	}
	return out
}

func (s *FieldSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}
	set := NewFieldSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		f, err := decodeField(name, raw)
		if err != nil {
			return err
		}
		set.Add(f)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = *set
	return nil
}

func (s *FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
