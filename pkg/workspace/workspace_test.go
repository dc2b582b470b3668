package workspace

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/forms"
)

func newWorkspace(options ...Option) *Workspace {
	clock := editor.WithClock(func() time.Time { return time.UnixMilli(100) })
	return New(append([]Option{WithEditorOptions(clock)}, options...)...)
}

func names(w *Workspace) []string {
	out := make([]string, 0)
	for _, form := range w.Forms() {
		out = append(out, form.Name)
	}
	return out
}

func TestWorkspace_StartsUntitled(t *testing.T) {
	w := newWorkspace()
	if w.CurrentName() != DefaultFormName {
		t.Fatalf("expected %q, got %q", DefaultFormName, w.CurrentName())
	}
	if w.IsSaved() {
		t.Fatalf("fresh workspace should not be saved")
	}
}

func TestWorkspace_SaveNewName(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")

	if !w.Save("X") {
		t.Fatalf("save should apply")
	}
	if len(w.Forms()) != 1 || w.CurrentName() != "X" {
		t.Fatalf("unexpected state: forms=%v current=%q", names(w), w.CurrentName())
	}
}

func TestWorkspace_SavedSnapshotIsIndependent(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")
	w.Save("X")

	w.Editor().Append("number")
	w.Editor().Remove("text-100")

	form := w.Forms()[0]
	if diff := cmp.Diff([]string{"text-100"}, form.Schema.IDs()); diff != "" {
		t.Fatalf("saved snapshot changed with live schema (-want +got):\n%s", diff)
	}

	w.Select("X")
	w.Editor().Append("date")
	form = w.Forms()[0]
	if diff := cmp.Diff([]string{"text-100"}, form.Schema.IDs()); diff != "" {
		t.Fatalf("select aliased the saved schema (-want +got):\n%s", diff)
	}
}

func TestWorkspace_CloneSuffixesUntilUnique(t *testing.T) {
	registry := forms.NewRegistry(
		forms.SavedForm{Name: "Contact Form"},
		forms.SavedForm{Name: "Contact Form-1"},
	)
	w := newWorkspace(WithRegistry(registry))
	w.Select("Contact Form")
	w.Editor().Append("text")

	name := w.Clone()
	if name != "Contact Form-2" || w.CurrentName() != "Contact Form-2" {
		t.Fatalf("expected Contact Form-2, got %q (current %q)", name, w.CurrentName())
	}
	clone, ok := registry.Get("Contact Form-2")
	if !ok || !clone.Schema.Equal(w.Editor().Schema()) {
		t.Fatalf("clone should carry the live schema")
	}
}

func TestWorkspace_CloneFromUntitled(t *testing.T) {
	w := newWorkspace()
	if got := w.Clone(); got != DefaultFormName+"-1" {
		t.Fatalf("expected %q, got %q", DefaultFormName+"-1", got)
	}
	if got := w.Clone(); got != DefaultFormName+"-1-1" {
		t.Fatalf("second clone derives from the new current name, got %q", got)
	}
}

func TestWorkspace_Rename(t *testing.T) {
	w := newWorkspace()

	if w.Rename("Never saved") {
		t.Fatalf("rename without a matching saved form should be a no-op")
	}
	if w.CurrentName() != DefaultFormName {
		t.Fatalf("current name changed on no-op rename")
	}

	w.Save("A")
	if w.Rename("  ") || w.Rename("A") {
		t.Fatalf("blank or identical names should be ignored")
	}
	if !w.Rename("  B  ") {
		t.Fatalf("rename should apply")
	}
	if diff := cmp.Diff([]string{"B"}, names(w)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if w.CurrentName() != "B" {
		t.Fatalf("current name should follow the rename, got %q", w.CurrentName())
	}
}

func TestWorkspace_NewFormKeepsRegistry(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")
	w.Save("A")

	w.NewForm()
	if w.Editor().Len() != 0 || w.CurrentName() != DefaultFormName {
		t.Fatalf("new form should reset schema and name")
	}
	if diff := cmp.Diff([]string{"A"}, names(w)); diff != "" {
		t.Fatalf("registry touched (-want +got):\n%s", diff)
	}
}

func TestWorkspace_SelectUnknownIsNoop(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")
	if w.Select("missing") {
		t.Fatalf("select of unknown form should be a no-op")
	}
	if w.Editor().Len() != 1 || w.CurrentName() != DefaultFormName {
		t.Fatalf("state changed on no-op select")
	}
}

func TestWorkspace_CommitName(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")

	if !w.CommitName("  Signup ") {
		t.Fatalf("commit on unsaved form should save")
	}
	if diff := cmp.Diff([]string{"Signup"}, names(w)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if !w.CommitName("Registration") {
		t.Fatalf("commit on saved form should rename")
	}
	if diff := cmp.Diff([]string{"Registration"}, names(w)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if w.CommitName("Registration") || w.CommitName("") {
		t.Fatalf("unchanged or blank edits should be ignored")
	}
}

func TestWorkspace_OnChangeFiresForSchemaAndRegistry(t *testing.T) {
	w := newWorkspace()
	var calls int
	w.OnChange(func() { calls++ })

	w.Editor().Append("text")
	w.Save("A")
	w.Select("missing")
	w.NewForm()

	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}
}

func TestWorkspace_Snapshot(t *testing.T) {
	w := newWorkspace()
	w.Editor().Append("text")
	w.Editor().BeginReorderDrag(0)

	snap := w.Snapshot()
	if snap.Name != DefaultFormName || snap.Saved {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	if snap.Drag == nil || snap.Drag.Kind != editor.DragReorder {
		t.Fatalf("expected reorder drag in snapshot")
	}
	if diff := cmp.Diff([]string{"text-100"}, snap.Schema.IDs()); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}
