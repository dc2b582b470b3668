package vanilla

import (
	"testing"
	"testing/fstest"

	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

func TestFieldFilters(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"field.tmpl": {Data: []byte(`<input id="{{ id|controlid }}" type="{{ type|inputtype }}">`)},
	}), gotemplate.WithExtension("tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := registerFilters(engine); err != nil {
		t.Fatalf("register filters: %v", err)
	}
	if err := registerFilters(engine); err != nil {
		t.Fatalf("registering twice should be tolerated: %v", err)
	}

	cases := []struct {
		id, typ, want string
	}{
		{"number-1", "number", `<input id="fb-number-1" type="number">`},
		{"date-2", "date", `<input id="fb-date-2" type="date">`},
		{"weird id", "signature", `<input id="fb-weird_id" type="text">`},
		{"", "", `<input id="" type="text">`},
	}
	for _, tc := range cases {
		got, err := engine.RenderTemplate("field", map[string]any{"id": tc.id, "type": tc.typ})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != tc.want {
			t.Fatalf("field %q: want %q, got %q", tc.id, tc.want, got)
		}
	}
}
