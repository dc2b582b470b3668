package vanilla_test

import (
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func sampleForm() render.Form {
	return render.Form{Name: "Contact", Schema: testsupport.SampleSchema()}
}

func renderView(t *testing.T, r *vanilla.Renderer, form render.Form, options render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), form, options)
	if err != nil {
		t.Fatalf("render %s: %v", options.View, err)
	}
	return string(out)
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_PreviewRendersEveryField(t *testing.T) {
	r := newRenderer(t)
	out := renderView(t, r, sampleForm(), render.RenderOptions{})

	for _, want := range []string{
		`data-device="web"`,
		`<h2 class="fb-form-title">Contact</h2>`,
		`<label for="fb-text-1">Text Field</label>`,
		`type="text" class="fb-control" placeholder="Enter text..." readonly>`,
		`<textarea id="fb-textarea-1" name="textarea-1" rows="4" class="fb-control" placeholder="Enter a longer text..." readonly>`,
		`type="number" class="fb-control" placeholder="Enter a number..." readonly>`,
		`<input id="fb-date-1" name="date-1" type="date" class="fb-control" readonly>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("preview missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "disabled") {
		t.Fatalf("preview controls should be read-only, not disabled")
	}
}

func TestRenderer_PreviewFollowsSchemaOrder(t *testing.T) {
	r := newRenderer(t)
	out := renderView(t, r, sampleForm(), render.RenderOptions{})

	last := -1
	for _, id := range []string{"text-1", "textarea-1", "number-1", "date-1"} {
		pos := strings.Index(out, `data-field-id="`+id+`"`)
		if pos <= last {
			t.Fatalf("field %s out of order", id)
		}
		last = pos
	}
}

func TestRenderer_PreviewEmptyAndMobile(t *testing.T) {
	r := newRenderer(t)
	out := renderView(t, r, render.Form{Name: "Untitled Form"}, render.RenderOptions{Device: render.DeviceMobile})

	if !strings.Contains(out, `fb-preview--mobile`) || !strings.Contains(out, `data-device="mobile"`) {
		t.Fatalf("expected mobile frame:\n%s", out)
	}
	if !strings.Contains(out, "Preview appears here.") {
		t.Fatalf("expected empty state:\n%s", out)
	}
	if strings.Contains(out, "<form") {
		t.Fatalf("empty schema should not render a form element")
	}
}

func TestRenderer_PreviewEscapesUserText(t *testing.T) {
	r := newRenderer(t)
	form := render.Form{
		Name: `<script>alert(1)</script>`,
		Schema: model.Schema{
			model.Field{ID: "x", Type: model.FieldTypeText, Label: "<b>bold</b>"}.WithPlaceholder(`say "hi"`),
		},
	}
	out := renderView(t, r, form, render.RenderOptions{})

	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>bold</b>") {
		t.Fatalf("user text must be escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Fatalf("expected escaped label:\n%s", out)
	}
	if !strings.Contains(out, `placeholder="say &quot;hi&quot;"`) {
		t.Fatalf("expected escaped placeholder:\n%s", out)
	}
}

func TestRenderer_CanvasExposesDropTargets(t *testing.T) {
	r := newRenderer(t)
	dragging := 1
	out := renderView(t, r, sampleForm(), render.RenderOptions{View: render.ViewCanvas, Dragging: &dragging})

	if got := strings.Count(out, "data-drop-index="); got != 5 {
		t.Fatalf("expected 5 drop targets, got %d", got)
	}
	for _, want := range []string{
		`data-drop-targets="5"`,
		`data-drop-index="4"`,
		`fb-canvas--dragging`,
		`data-index="1" data-field-id="textarea-1" data-field-type="textarea" data-dragging="true"`,
		`data-action="remove" data-field-id="date-1"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("canvas missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, `data-dragging="true"`); got != 1 {
		t.Fatalf("expected exactly one dragging card, got %d", got)
	}
	if got := strings.Count(out, `data-attr="placeholder"`); got != 3 {
		t.Fatalf("date fields must not offer a placeholder editor, got %d editors", got)
	}
}

func TestRenderer_CanvasEmptyHasTrailingTarget(t *testing.T) {
	r := newRenderer(t)
	out := renderView(t, r, render.Form{}, render.RenderOptions{View: render.ViewCanvas})

	if got := strings.Count(out, "data-drop-index="); got != 1 {
		t.Fatalf("expected a single drop target, got %d", got)
	}
	if strings.Contains(out, "fb-canvas--dragging") {
		t.Fatalf("idle canvas should not be marked dragging")
	}
	if !strings.Contains(out, "Drop fields here") {
		t.Fatalf("expected empty canvas hint:\n%s", out)
	}
}

func TestRenderer_PaletteListsCatalog(t *testing.T) {
	r := newRenderer(t)
	out := renderView(t, r, render.Form{}, render.RenderOptions{View: render.ViewPalette})

	for _, tpl := range model.Catalog() {
		want := `data-field-type="` + string(tpl.Type) + `"`
		if !strings.Contains(out, want) {
			t.Fatalf("palette missing %q", want)
		}
		if !strings.Contains(out, tpl.Label) {
			t.Fatalf("palette missing label %q", tpl.Label)
		}
	}
	if got := strings.Count(out, "<svg"); got != len(model.Catalog()) {
		t.Fatalf("expected one icon per entry, got %d", got)
	}
}

func TestRenderer_BuilderComposesViews(t *testing.T) {
	r := newRenderer(t, vanilla.WithStylesheet("/assets/custom.css"), vanilla.WithDefaultStyles())
	manifest := &theme.Manifest{
		Name:   "demo",
		Tokens: map[string]string{"color-text": "#111"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"color-text": "#eee"}},
		},
	}
	out := renderView(t, r, sampleForm(), render.RenderOptions{
		View:    render.ViewBuilder,
		Theme:   manifest,
		Variant: "dark",
	})

	for _, want := range []string{
		`class="fb-builder"`,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`<style>`,
		`style="--color-text: #eee"`,
		`class="fb-palette"`,
		`data-drop-targets="5"`,
		`class="fb-preview fb-preview--web"`,
		`data-role="schema-json"`,
		`&quot;type&quot;: &quot;textarea&quot;`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("builder missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_UnsupportedView(t *testing.T) {
	r := newRenderer(t)
	if _, err := r.Render(testsupport.Context(), sampleForm(), render.RenderOptions{View: "kanban"}); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

type recordingTemplates struct {
	*gotemplate.Engine
	filters []string
	globals []any
}

func (r *recordingTemplates) RegisterFilter(name string, fn func(any, any) (any, error)) error {
	r.filters = append(r.filters, name)
	return r.Engine.RegisterFilter(name, fn)
}

func (r *recordingTemplates) GlobalContext(data any) error {
	r.globals = append(r.globals, data)
	return r.Engine.GlobalContext(data)
}

func TestRenderer_ConfiguresInjectedTemplates(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(vanilla.TemplatesFS()), gotemplate.WithExtension(".tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	templates := &recordingTemplates{Engine: engine}
	r := newRenderer(t, vanilla.WithTemplateRenderer(templates))

	if len(templates.filters) != 2 {
		t.Fatalf("expected both field filters to be offered, got %v", templates.filters)
	}
	if len(templates.globals) != 1 {
		t.Fatalf("expected chrome classes as globals, got %v", templates.globals)
	}

	out := renderView(t, r, sampleForm(), render.RenderOptions{View: render.ViewCanvas})
	if !strings.Contains(out, `<ol class="fb-canvas"`) {
		t.Fatalf("canvas should use the global chrome classes:\n%s", out)
	}
}

func TestRenderer_DeclaresViews(t *testing.T) {
	r := newRenderer(t)
	want := []render.View{render.ViewPreview, render.ViewCanvas, render.ViewPalette, render.ViewBuilder}
	got := r.Views()
	if len(got) != len(want) {
		t.Fatalf("views = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("views = %v, want %v", got, want)
		}
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".fb-drop-zone") {
		t.Fatalf("stylesheet should style drop zones")
	}
}
