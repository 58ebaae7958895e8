package document

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates metadata value variants.
type ValueKind int

// Metadata value kinds.
const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

// Value is a tagged scalar metadata value. Metadata has an open schema, so
// filter matching and category extraction work generically over these.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// String creates a string metadata value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric metadata value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool creates a boolean metadata value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueFromJSON converts a decoded JSON scalar into a Value.
func ValueFromJSON(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("metadata number %q: %w", t.String(), err)
		}
		return Number(n), nil
	case bool:
		return Bool(t), nil
	default:
		return Value{}, fmt.Errorf("metadata value must be a string, number, or bool, got %T", v)
	}
}

// MetadataFromJSON converts a decoded JSON object into a metadata map.
func MetadataFromJSON(m map[string]any) (map[string]Value, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		val, err := ValueFromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// Kind returns the value variant.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload (zero unless KindString).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (zero unless KindNumber).
func (v Value) Num() float64 { return v.num }

// IsTrue returns the boolean payload (false unless KindBool).
func (v Value) IsTrue() bool { return v.b }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	}
	return false
}

// MarshalJSON encodes the value as its underlying JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	}
	return nil, fmt.Errorf("unknown metadata value kind %d", v.kind)
}

// UnmarshalJSON decodes a JSON scalar into the value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal metadata value: %w", err)
	}
	val, err := ValueFromJSON(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// Display renders the value for logs and error messages.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

func cloneMetadata(m map[string]Value) map[string]Value {
	if m == nil {
		return nil
	}
	c := make(map[string]Value, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
