package ocr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueType is the "value_type" discriminator of an analysis field.
type ValueType string

const (
	TypeString        ValueType = "string"
	TypeFloat         ValueType = "float"
	TypeNumber        ValueType = "number"
	TypeInteger       ValueType = "integer"
	TypeCurrency      ValueType = "currency"
	TypeDate          ValueType = "date"
	TypeTime          ValueType = "time"
	TypePhoneNumber   ValueType = "phoneNumber"
	TypeAddress       ValueType = "address"
	TypeCountryRegion ValueType = "countryRegion"
	TypeSelectionMark ValueType = "selectionMark"
	TypeSignature     ValueType = "signature"
	TypeArray         ValueType = "array"
	TypeObject        ValueType = "object"
)

// Value is the decoded typed value of a field. Each implementation corresponds
// to one ValueType tag.
type Value interface {
	Kind() ValueType
	// Text renders the value for the output record; ok is false when the value
	// carries nothing printable.
	Text() (s string, ok bool)
}

type StringValue string

func (StringValue) Kind() ValueType { return TypeString }
func (v StringValue) Text() (string, bool) { return string(v), true }

// NumberValue covers the float, number and integer tags.
type NumberValue struct {
	Tag    ValueType
	Number float64
}

func (v NumberValue) Kind() ValueType { return v.Tag }
func (v NumberValue) Text() (string, bool) {
	return strconv.FormatFloat(v.Number, 'f', -1, 64), true
}

type CurrencyValue struct {
	Amount float64 `json:"amount"`
	Symbol string  `json:"symbol"`
	Code   string  `json:"code"`
}

func (CurrencyValue) Kind() ValueType { return TypeCurrency }
func (v CurrencyValue) Text() (string, bool) {
	return strconv.FormatFloat(v.Amount, 'f', -1, 64), true
}

// TextValue covers tags whose value is serialized as plain text: date, time,
// phoneNumber, countryRegion, selectionMark and signature.
type TextValue struct {
	Tag  ValueType
	Data string
}

func (v TextValue) Kind() ValueType       { return v.Tag }
func (v TextValue) Text() (string, bool) { return v.Data, v.Data != "" }

// AddressValue renders from the field content; the structured address parts
// are not used downstream.
type AddressValue struct {
	Content string
}

func (AddressValue) Kind() ValueType       { return TypeAddress }
func (v AddressValue) Text() (string, bool) { return v.Content, v.Content != "" }

type ArrayValue []*Field

func (ArrayValue) Kind() ValueType { return TypeArray }
func (v ArrayValue) Text() (string, bool) {
	parts := make([]string, 0, len(v))
	for _, item := range v {
		if s := item.ValueText(); s != nil {
			parts = append(parts, *s)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

// ObjectValue holds named sub-fields, e.g. the rows of a table.
type ObjectValue struct {
	Fields *FieldSet
}

func (ObjectValue) Kind() ValueType { return TypeObject }
func (v ObjectValue) Text() (string, bool) {
	var parts []string
	for _, name := range v.Fields.Names() {
		if s := v.Fields.Get(name).ValueText(); s != nil {
			parts = append(parts, name+":"+*s)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// NullValue is used when the service returned no value for the field.
type NullValue struct {
	Tag ValueType
}

func (v NullValue) Kind() ValueType     { return v.Tag }
func (NullValue) Text() (string, bool) { return "", false }

// UnsupportedValue keeps the tag of a value this package cannot interpret.
type UnsupportedValue struct {
	Tag ValueType
}

func (v UnsupportedValue) Kind() ValueType     { return v.Tag }
func (UnsupportedValue) Text() (string, bool) { return "", false }

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func decodeValue(tag ValueType, raw json.RawMessage, content *string) (Value, error) {
	if tag == TypeAddress {
		return decodeAddress(content), nil
	}
	if isNull(raw) {
		return NullValue{Tag: tag}, nil
	}
	switch tag {
	case TypeString:
		return decodeString(raw)
	case TypeFloat, TypeNumber, TypeInteger:
		return decodeNumber(tag, raw)
	case TypeCurrency:
		return decodeCurrency(raw)
	case TypeDate, TypeTime, TypePhoneNumber, TypeCountryRegion, TypeSelectionMark, TypeSignature:
		return decodeText(tag, raw)
	case TypeArray:
		return decodeArray(raw)
	case TypeObject:
		return decodeObject(raw)
	default:
		return UnsupportedValue{Tag: tag}, nil
	}
}

func decodeString(raw json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("string value: %w", err)
	}
	return StringValue(s), nil
}

func decodeNumber(tag ValueType, raw json.RawMessage) (Value, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%s value: %w", tag, err)
	}
	return NumberValue{Tag: tag, Number: n}, nil
}

func decodeCurrency(raw json.RawMessage) (Value, error) {
	var c CurrencyValue
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("currency value: %w", err)
	}
	return c, nil
}

// decodeText accepts both JSON strings and anything else, which is kept in its
// JSON form (dates may be dumped by the caching side with str()).
func decodeText(tag ValueType, raw json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return TextValue{Tag: tag, Data: strings.TrimSpace(string(raw))}, nil
	}
	return TextValue{Tag: tag, Data: s}, nil
}

func decodeAddress(content *string) Value {
	if content == nil {
		return NullValue{Tag: TypeAddress}
	}
	return AddressValue{Content: *content}
}

func decodeArray(raw json.RawMessage) (Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("array value: %w", err)
	}
	out := make(ArrayValue, 0, len(items))
	for i, item := range items {
		f, err := decodeField(strconv.Itoa(i), item)
		if err != nil {
			return nil, fmt.Errorf("array value: %w", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeObject(raw json.RawMessage) (Value, error) {
	set := NewFieldSet()
	if err := set.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("object value: %w", err)
	}
	return ObjectValue{Fields: set}, nil
}
