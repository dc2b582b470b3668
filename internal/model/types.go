package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// FieldType is the closed enumeration of field kinds the palette offers.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
)

// Attribute keys owned by Field. Everything else lands in Field.Extra.
const (
	AttrID          = "id"
	AttrType        = "type"
	AttrLabel       = "label"
	AttrPlaceholder = "placeholder"
)

// ErrFieldNotObject is returned when a schema element is not a JSON object.
var ErrFieldNotObject = errors.New("model: field must be a JSON object")

// Field is a single form element definition. Placeholder is nil when the
// field carries no placeholder attribute at all (date fields by default).
// Extra keeps attributes this package does not model so they survive a
// decode/encode cycle untouched. A modelled key whose decoded value is not a
// string (a numeric label, a null placeholder) is kept in Extra as written.
type Field struct {
	ID          string
	Type        FieldType
	Label       string
	Placeholder *string
	Extra       map[string]json.RawMessage

	// omitted records which of id, type and label were missing from the
	// decoded object so an empty value is not written back.
	omitted attrSet
}

type attrSet uint8

const (
	omitID attrSet = 1 << iota
	omitType
	omitLabel
)

// HasPlaceholder reports whether the placeholder attribute is present.
func (f Field) HasPlaceholder() bool {
	return f.Placeholder != nil
}

// PlaceholderText returns the placeholder or "" when absent.
func (f Field) PlaceholderText() string {
	if f.Placeholder == nil {
		return ""
	}
	return *f.Placeholder
}

// WithPlaceholder returns a copy of the field with the placeholder set.
func (f Field) WithPlaceholder(value string) Field {
	out := f.Clone()
	out.Placeholder = &value
	delete(out.Extra, AttrPlaceholder)
	return out
}

// WithIdentityOf returns a copy of the field carrying src's id and type,
// including their raw or missing state.
func (f Field) WithIdentityOf(src Field) Field {
	out := f.Clone()
	out.ID = src.ID
	out.Type = src.Type
	out.omitted = (out.omitted &^ (omitID | omitType)) | (src.omitted & (omitID | omitType))
	for _, key := range []string{AttrID, AttrType} {
		delete(out.Extra, key)
		if raw, ok := src.Extra[key]; ok {
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[key] = append(json.RawMessage(nil), raw...)
		}
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Placeholder != nil {
		value := *f.Placeholder
		out.Placeholder = &value
	}
	if f.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(f.Extra))
		for key, raw := range f.Extra {
			out.Extra[key] = append(json.RawMessage(nil), raw...)
		}
	}
	return out
}

// Equal compares two fields attribute by attribute. Extra values are compared
// after compacting so whitespace differences do not matter.
func (f Field) Equal(other Field) bool {
	if f.ID != other.ID || f.Type != other.Type || f.Label != other.Label || f.omitted != other.omitted {
		return false
	}
	if f.HasPlaceholder() != other.HasPlaceholder() || f.PlaceholderText() != other.PlaceholderText() {
		return false
	}
	if len(f.Extra) != len(other.Extra) {
		return false
	}
	for key, raw := range f.Extra {
		otherRaw, ok := other.Extra[key]
		if !ok || !rawEqual(raw, otherRaw) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the modelled attributes first, then extras sorted by key.
// Modelled keys are written as they were decoded: missing keys stay missing
// and non-string values are written back raw.
func (f Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeRaw := func(key string, raw json.RawMessage) error {
		if len(bytes.TrimSpace(raw)) == 0 {
			raw = json.RawMessage("null")
		}
		if !json.Valid(raw) {
			return fmt.Errorf("model: attribute %q holds invalid JSON", key)
		}
		return writeMember(&buf, &first, key, raw)
	}
	writeString := func(key, value string, omit attrSet) error {
		if value == "" {
			if raw, ok := f.Extra[key]; ok {
				return writeRaw(key, raw)
			}
			if f.omitted&omit != 0 {
				return nil
			}
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("model: encode %q: %w", key, err)
		}
		return writeMember(&buf, &first, key, encoded)
	}

	if err := writeString(AttrID, f.ID, omitID); err != nil {
		return nil, err
	}
	if err := writeString(AttrType, string(f.Type), omitType); err != nil {
		return nil, err
	}
	if err := writeString(AttrLabel, f.Label, omitLabel); err != nil {
		return nil, err
	}
	if f.Placeholder != nil {
		encoded, err := json.Marshal(*f.Placeholder)
		if err != nil {
			return nil, fmt.Errorf("model: encode %q: %w", AttrPlaceholder, err)
		}
		if err := writeMember(&buf, &first, AttrPlaceholder, encoded); err != nil {
			return nil, err
		}
	} else if raw, ok := f.Extra[AttrPlaceholder]; ok {
		if err := writeRaw(AttrPlaceholder, raw); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(f.Extra))
	for key := range f.Extra {
		if isModelledAttr(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := writeRaw(key, f.Extra[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any JSON object. String values of modelled attributes
// fill the typed fields; any other value, null included, is kept raw in Extra.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrFieldNotObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}

	out := Field{omitted: omitID | omitType | omitLabel}
	keep := func(key string, value json.RawMessage) {
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[key] = append(json.RawMessage(nil), value...)
	}
	for key, value := range raw {
		if !isModelledAttr(key) {
			keep(key, value)
			continue
		}
		var text string
		if err := json.Unmarshal(value, &text); err != nil || isNull(value) {
			keep(key, value)
			continue
		}
		switch key {
		case AttrID:
			out.ID = text
		case AttrType:
			out.Type = FieldType(text)
		case AttrLabel:
			out.Label = text
		case AttrPlaceholder:
			out.Placeholder = &text
		}
	}
	for key, bit := range map[string]attrSet{AttrID: omitID, AttrType: omitType, AttrLabel: omitLabel} {
		if _, ok := raw[key]; ok {
			out.omitted &^= bit
		}
	}

	*f = out
	return nil
}

// Schema is the ordered list of fields making up one form. Order is the
// render order in both the builder canvas and the preview.
type Schema []Field

// Clone returns a deep copy. A nil schema clones to an empty, non-nil one so
// it always serialises as [].
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for i, field := range s {
		out[i] = field.Clone()
	}
	return out
}

// IDs returns the field ids in order.
func (s Schema) IDs() []string {
	ids := make([]string, len(s))
	for i, field := range s {
		ids[i] = field.ID
	}
	return ids
}

// IndexOf returns the position of the field with the given id, or -1.
func (s Schema) IndexOf(id string) int {
	for i, field := range s {
		if field.ID == id {
			return i
		}
	}
	return -1
}

// Has reports whether a field with the given id exists.
func (s Schema) Has(id string) bool {
	return s.IndexOf(id) >= 0
}

// Equal compares two schemas field by field.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// MarshalJSON keeps empty schemas as [] instead of null.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Field(s))
}

func isModelledAttr(key string) bool {
	switch key {
	case AttrID, AttrType, AttrLabel, AttrPlaceholder:
		return true
	default:
		return false
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func writeMember(buf *bytes.Buffer, first *bool, key string, value []byte) error {
	if !*first {
		buf.WriteByte(',')
	}
	*first = false
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encodedKey)
	buf.WriteByte(':')
	buf.Write(value)
	return nil
}

func rawEqual(a, b json.RawMessage) bool {
	var left, right bytes.Buffer
	if err := json.Compact(&left, a); err != nil {
		return bytes.Equal(a, b)
	}
	if err := json.Compact(&right, b); err != nil {
		return false
	}
	return bytes.Equal(left.Bytes(), right.Bytes())
}
