package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestField_UnmarshalKeepsUnknownAttributes(t *testing.T) {
	payload := `{
		"id": "text-1",
		"type": "text",
		"label": "Name",
		"placeholder": "Jane",
		"required": true,
		"meta": {"section": "contact"}
	}`

	var field Field
	if err := json.Unmarshal([]byte(payload), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if field.ID != "text-1" || field.Type != FieldTypeText || field.Label != "Name" {
		t.Fatalf("unexpected modelled attributes: %+v", field)
	}
	if !field.HasPlaceholder() || field.PlaceholderText() != "Jane" {
		t.Fatalf("expected placeholder Jane, got %+v", field.Placeholder)
	}
	if got := string(field.Extra["required"]); got != "true" {
		t.Fatalf("required extra: got %q", got)
	}

	encoded, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"text-1","type":"text","label":"Name","placeholder":"Jane","meta":{"section":"contact"},"required":true}`
	if diff := cmp.Diff(want, string(encoded)); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}
}

func TestField_PlaceholderAbsenceSurvivesRoundTrip(t *testing.T) {
	var field Field
	if err := json.Unmarshal([]byte(`{"id":"date-1","type":"date","label":"When"}`), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if field.HasPlaceholder() {
		t.Fatalf("date field should not carry a placeholder")
	}

	encoded, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(encoded), `{"id":"date-1","type":"date","label":"When"}`; got != want {
		t.Fatalf("encoded = %s, want %s", got, want)
	}
}

func TestField_NullPlaceholderSurvivesRoundTrip(t *testing.T) {
	payload := `{"id":"a","type":"text","label":"A","placeholder":null}`
	var field Field
	if err := json.Unmarshal([]byte(payload), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if field.HasPlaceholder() {
		t.Fatalf("null placeholder should not count as placeholder text")
	}

	encoded, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(payload, string(encoded)); diff != "" {
		t.Fatalf("encoded mismatch (-want +got):\n%s", diff)
	}

	edited := field.WithPlaceholder("typed")
	encoded, err = json.Marshal(edited)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"id":"a","type":"text","label":"A","placeholder":"typed"}`; string(encoded) != want {
		t.Fatalf("encoded = %s, want %s", encoded, want)
	}
}

func TestField_RoundTripKeepsAttributesAsWritten(t *testing.T) {
	cases := map[string]string{
		"missing id and label":  `{"type":"text"}`,
		"missing everything":    `{}`,
		"only extras":           `{"required":true}`,
		"numeric label":         `{"id":"a","type":"text","label":5}`,
		"object id":             `{"id":{"x":1},"type":"text","label":"A"}`,
		"numeric placeholder":   `{"id":"a","type":"text","label":"A","placeholder":3}`,
		"null id and type":      `{"id":null,"type":null,"label":"A"}`,
		"empty strings written": `{"id":"","type":"","label":""}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var field Field
			if err := json.Unmarshal([]byte(payload), &field); err != nil {
				t.Fatalf("unmarshal %s: %v", payload, err)
			}
			encoded, err := json.Marshal(field)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if diff := cmp.Diff(payload, string(encoded)); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			var again Field
			if err := json.Unmarshal(encoded, &again); err != nil {
				t.Fatalf("second unmarshal: %v", err)
			}
			if !again.Equal(field) {
				t.Fatalf("second decode differs: %+v vs %+v", again, field)
			}
		})
	}
}

func TestField_NonStringLabelLeavesTypedFieldEmpty(t *testing.T) {
	var field Field
	if err := json.Unmarshal([]byte(`{"id":"a","type":"text","label":5}`), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if field.Label != "" {
		t.Fatalf("label = %q, want empty", field.Label)
	}
	if got := string(field.Extra[AttrLabel]); got != "5" {
		t.Fatalf("raw label = %q, want 5", got)
	}
}

func TestField_UnmarshalRejectsNonObjects(t *testing.T) {
	cases := map[string]string{
		"array element":  `["text"]`,
		"string element": `"text"`,
		"number element": `7`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var field Field
			if err := json.Unmarshal([]byte(payload), &field); err == nil {
				t.Fatalf("expected error for %s", payload)
			}
		})
	}

	var field Field
	err := field.UnmarshalJSON([]byte(`[1]`))
	if !errors.Is(err, ErrFieldNotObject) {
		t.Fatalf("expected ErrFieldNotObject, got %v", err)
	}
}

func TestField_WithIdentityOfCopiesRawIdentity(t *testing.T) {
	var stored Field
	if err := json.Unmarshal([]byte(`{"id":7,"label":"Old"}`), &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	incoming := Field{ID: "other", Type: FieldTypeDate, Label: "New"}

	merged := incoming.WithIdentityOf(stored)
	encoded, err := json.Marshal(merged)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"id":7,"label":"New"}`; string(encoded) != want {
		t.Fatalf("encoded = %s, want %s", encoded, want)
	}
}

func TestField_CloneIsDeep(t *testing.T) {
	original := Field{
		ID:          "text-1",
		Type:        FieldTypeText,
		Label:       "Name",
		Placeholder: placeholder("Jane"),
		Extra:       map[string]json.RawMessage{"hint": json.RawMessage(`"x"`)},
	}
	clone := original.Clone()
	*clone.Placeholder = "changed"
	clone.Extra["hint"] = json.RawMessage(`"y"`)

	if original.PlaceholderText() != "Jane" {
		t.Fatalf("placeholder aliased: %q", original.PlaceholderText())
	}
	if string(original.Extra["hint"]) != `"x"` {
		t.Fatalf("extra aliased: %s", original.Extra["hint"])
	}
}

func TestSchema_MarshalEmptyAsArray(t *testing.T) {
	var schema Schema
	encoded, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("expected [], got %s", encoded)
	}
}

func TestSchema_EqualIgnoresExtraWhitespace(t *testing.T) {
	a := Schema{{ID: "a", Type: FieldTypeText, Extra: map[string]json.RawMessage{"x": json.RawMessage(`{"k": 1}`)}}}
	b := Schema{{ID: "a", Type: FieldTypeText, Extra: map[string]json.RawMessage{"x": json.RawMessage(`{"k":1}`)}}}
	if !a.Equal(b) {
		t.Fatalf("expected schemas to be equal")
	}
	b[0].Label = "different"
	if a.Equal(b) {
		t.Fatalf("expected label difference to be detected")
	}
}

func TestCatalog_DefaultsMatchPalette(t *testing.T) {
	got := make([]FieldType, 0)
	for _, tpl := range Catalog() {
		got = append(got, tpl.Type)
	}
	want := []FieldType{FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("catalog order mismatch (-want +got):\n%s", diff)
	}

	date, ok := Lookup("date")
	if !ok {
		t.Fatalf("date should be a known token")
	}
	if date.Declares(AttrPlaceholder) || date.Default.HasPlaceholder() {
		t.Fatalf("date template must not declare a placeholder")
	}

	text, _ := Lookup("text")
	field := text.New("text-42")
	if field.ID != "text-42" || field.Label != "Text Field" || field.PlaceholderText() != "Enter text..." {
		t.Fatalf("unexpected text field: %+v", field)
	}

	if _, ok := Lookup("checkbox"); ok {
		t.Fatalf("checkbox is not part of the enumeration")
	}
	if _, ok := Lookup(" Text "); ok {
		t.Fatalf("Lookup must match tokens exactly")
	}
	if typ, ok := ParseFieldType(" Text "); !ok || typ != FieldTypeText {
		t.Fatalf("ParseFieldType should be lenient, got %q %v", typ, ok)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	entries := Catalog()
	entries[0].Default.Label = "mutated"
	*entries[0].Default.Placeholder = "mutated"

	tpl, _ := Lookup("text")
	if tpl.Default.Label != "Text Field" || tpl.Default.PlaceholderText() != "Enter text..." {
		t.Fatalf("catalog mutated through returned copy: %+v", tpl.Default)
	}
}
