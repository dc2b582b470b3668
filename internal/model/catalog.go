package model

import "strings"

// FieldTemplate describes one palette entry: how it is presented and the
// default definition a dropped field starts from.
type FieldTemplate struct {
	Type  FieldType
	Label string
	Icon  string
	// Attributes lists the attribute keys a field of this type declares.
	Attributes []string
	Default    Field
}

// New instantiates the template under the supplied id.
func (t FieldTemplate) New(id string) Field {
	field := t.Default.Clone()
	field.ID = id
	field.Type = t.Type
	return field
}

// Declares reports whether the template lists the attribute key.
func (t FieldTemplate) Declares(attr string) bool {
	for _, candidate := range t.Attributes {
		if candidate == attr {
			return true
		}
	}
	return false
}

const (
	iconText     = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path stroke-linecap="round" stroke-linejoin="round" d="M4 6h16M4 12h10"/></svg>`
	iconTextarea = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="3" y="4" width="18" height="16" rx="2"/><path stroke-linecap="round" d="M7 9h10M7 13h10M7 17h6"/></svg>`
	iconNumber   = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path stroke-linecap="round" stroke-linejoin="round" d="M7 20l4-16M13 20l4-16M5 9h14M4 15h14"/></svg>`
	iconDate     = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="3" y="5" width="18" height="16" rx="2"/><path stroke-linecap="round" d="M16 3v4M8 3v4M3 11h18"/></svg>`
)

func placeholder(value string) *string {
	return &value
}

var catalog = []FieldTemplate{
	{
		Type:       FieldTypeText,
		Label:      "Text Field",
		Icon:       iconText,
		Attributes: []string{AttrID, AttrType, AttrLabel, AttrPlaceholder},
		Default:    Field{Type: FieldTypeText, Label: "Text Field", Placeholder: placeholder("Enter text...")},
	},
	{
		Type:       FieldTypeTextarea,
		Label:      "Text Area",
		Icon:       iconTextarea,
		Attributes: []string{AttrID, AttrType, AttrLabel, AttrPlaceholder},
		Default:    Field{Type: FieldTypeTextarea, Label: "Text Area", Placeholder: placeholder("Enter a longer text...")},
	},
	{
		Type:       FieldTypeNumber,
		Label:      "Number",
		Icon:       iconNumber,
		Attributes: []string{AttrID, AttrType, AttrLabel, AttrPlaceholder},
		Default:    Field{Type: FieldTypeNumber, Label: "Number Field", Placeholder: placeholder("Enter a number...")},
	},
	{
		Type:       FieldTypeDate,
		Label:      "Date",
		Icon:       iconDate,
		Attributes: []string{AttrID, AttrType, AttrLabel},
		Default:    Field{Type: FieldTypeDate, Label: "Date Field"},
	},
}

// Catalog returns the palette entries in display order. The slice is a copy.
func Catalog() []FieldTemplate {
	out := make([]FieldTemplate, len(catalog))
	for i, tpl := range catalog {
		tpl.Default = tpl.Default.Clone()
		tpl.Attributes = append([]string(nil), tpl.Attributes...)
		out[i] = tpl
	}
	return out
}

// Lookup resolves a palette token. Matching is exact; tokens are not trimmed
// or case-folded because they come from our own drag payloads.
func Lookup(token string) (FieldTemplate, bool) {
	for _, tpl := range catalog {
		if string(tpl.Type) == token {
			tpl.Default = tpl.Default.Clone()
			return tpl, true
		}
	}
	return FieldTemplate{}, false
}

// Known reports whether the type belongs to the enumeration.
func (t FieldType) Known() bool {
	_, ok := Lookup(string(t))
	return ok
}

// ParseFieldType is a lenient variant of Lookup for human input (CLI flags).
func ParseFieldType(raw string) (FieldType, bool) {
	tpl, ok := Lookup(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		return "", false
	}
	return tpl.Type, true
}
