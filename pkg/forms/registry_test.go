package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func sampleSchema(ids ...string) model.Schema {
	out := make(model.Schema, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Field{ID: id, Type: model.FieldTypeText, Label: id})
	}
	return out
}

func TestRegistry_SaveAppendsThenReplacesInPlace(t *testing.T) {
	r := NewRegistry()
	r.Save("A", sampleSchema("a1"))
	r.Save("B", sampleSchema("b1"))

	if r.Len() != 2 {
		t.Fatalf("expected 2 forms, got %d", r.Len())
	}

	r.Save("A", sampleSchema("a2", "a3"))
	if diff := cmp.Diff([]string{"A", "B"}, r.Names()); diff != "" {
		t.Fatalf("position not preserved (-want +got):\n%s", diff)
	}
	form, _ := r.Get("A")
	if diff := cmp.Diff([]string{"a2", "a3"}, form.Schema.IDs()); diff != "" {
		t.Fatalf("schema not replaced (-want +got):\n%s", diff)
	}

	if r.Save("   ", sampleSchema()) {
		t.Fatalf("blank names must be refused")
	}
}

func TestRegistry_StoresByValue(t *testing.T) {
	schema := sampleSchema("a")
	r := NewRegistry()
	r.Save("A", schema)

	schema[0].Label = "mutated"
	got, _ := r.Get("A")
	if got.Schema[0].Label != "a" {
		t.Fatalf("saved schema aliased the caller's slice")
	}

	got.Schema[0].Label = "mutated again"
	again, _ := r.Get("A")
	if again.Schema[0].Label != "a" {
		t.Fatalf("Get returned a shared schema")
	}
}

func TestRegistry_Rename(t *testing.T) {
	r := NewRegistry(SavedForm{Name: "A"}, SavedForm{Name: "B"})

	if r.Rename("missing", "C") {
		t.Fatalf("rename of unknown form should be refused")
	}
	if r.Rename("A", "B") {
		t.Fatalf("rename onto an existing name should be refused")
	}
	if r.Rename("A", " ") {
		t.Fatalf("blank target should be refused")
	}
	if !r.Rename("A", "C") {
		t.Fatalf("rename should apply")
	}
	if diff := cmp.Diff([]string{"C", "B"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_UniqueName(t *testing.T) {
	r := NewRegistry(SavedForm{Name: "Contact Form"}, SavedForm{Name: "Contact Form-1"})
	if got := r.UniqueName("Contact Form"); got != "Contact Form-2" {
		t.Fatalf("expected Contact Form-2, got %q", got)
	}
	if got := r.UniqueName("Survey"); got != "Survey-1" {
		t.Fatalf("expected Survey-1, got %q", got)
	}
}
