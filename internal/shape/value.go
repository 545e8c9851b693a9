// Package shape normalizes LLM text into one of three data shapes: a keyed
// object, a bare list, or a raw-text fallback.
package shape

import (
	"bytes"
	"encoding/json"
)

// RawResponseKey is the field that carries unparseable LLM output.
const RawResponseKey = "raw_response"

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNone is the zero Value (nothing stored or provided).
	KindNone Kind = iota
	// KindObject is a parsed JSON object.
	KindObject
	// KindList is a parsed JSON array.
	KindList
	// KindRaw is text that could not be parsed into an object or array.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindRaw:
		return "raw"
	default:
		return "none"
	}
}

// Value is a tagged union over the shapes an LLM response can take.
type Value struct {
	kind   Kind
	object map[string]any
	list   []any
	text   string
}

// Object wraps a parsed JSON object.
func Object(m map[string]any) Value {
	if m == nil {
		m = map[string]any{}
	}
	return Value{kind: KindObject, object: m}
}

// List wraps a parsed JSON array.
func List(items []any) Value {
	if items == nil {
		items = []any{}
	}
	return Value{kind: KindList, list: items}
}

// Raw wraps text that failed to parse.
func Raw(text string) Value {
	return Value{kind: KindRaw, text: text}
}

// Normalize parses text as JSON. Objects and arrays come back as-is; anything
// else becomes Raw(text) and never fails. That includes valid JSON scalars
// such as "42" or "true": Value has no scalar variant, so a scalar reply is
// kept verbatim as raw text rather than as its parsed value.
func Normalize(text string) Value {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Raw(text)
	}
	return fromParsed(parsed, text)
}

// FromAny converts already-decoded data into a Value. Strings and byte slices
// are normalized; other Go values are round-tripped through JSON.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case *Value:
		if t == nil {
			return Value{}
		}
		return *t
	case string:
		return Normalize(t)
	case []byte:
		return Normalize(string(t))
	case json.RawMessage:
		return Normalize(string(t))
	case map[string]any:
		return fromParsed(t, "")
	case []any:
		return List(t)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Value{}
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Value{}
	}
	return fromParsed(parsed, string(data))
}

// fromParsed maps a decoded JSON value onto a variant. An object whose only
// key is raw_response is a previously stored fallback.
func fromParsed(parsed any, text string) Value {
	switch t := parsed.(type) {
	case map[string]any:
		if raw, ok := rawFallback(t); ok {
			return Raw(raw)
		}
		return Object(t)
	case []any:
		return List(t)
	default:
		return Raw(text)
	}
}

func rawFallback(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	raw, ok := m[RawResponseKey].(string)
	return raw, ok
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool { return v.kind == KindNone }

// IsRaw reports whether v is the raw-text fallback.
func (v Value) IsRaw() bool { return v.kind == KindRaw }

// Object returns the object variant, or nil.
func (v Value) Object() map[string]any { return v.object }

// List returns the list variant, or nil.
func (v Value) List() []any { return v.list }

// Text returns the raw text of the fallback variant.
func (v Value) Text() string { return v.text }

// Field returns the named entry of an object value as a Value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	inner, ok := v.object[key]
	if !ok {
		return Value{}, false
	}
	return FromAny(inner), true
}

// Match calls the handler for v's variant. The zero Value goes to onRaw with
// empty text.
func Match[T any](v Value, onObject func(map[string]any) T, onList func([]any) T, onRaw func(string) T) T {
	switch v.kind {
	case KindObject:
		return onObject(v.object)
	case KindList:
		return onList(v.list)
	default:
		return onRaw(v.text)
	}
}

// Document returns the storable representation of v.
func (v Value) Document() any {
	switch v.kind {
	case KindObject:
		return v.object
	case KindList:
		return v.list
	case KindRaw:
		return map[string]any{RawResponseKey: v.text}
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Document())
}

// UnmarshalJSON implements json.Unmarshaler. A JSON string is treated as LLM
// text and normalized.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	if s, ok := parsed.(string); ok {
		*v = Normalize(s)
		return nil
	}
	*v = fromParsed(parsed, string(trimmed))
	return nil
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return v.text
	}
	return string(data)
}
