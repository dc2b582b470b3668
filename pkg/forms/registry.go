package forms

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SavedForm is a named snapshot of a schema.
type SavedForm struct {
	Name   string       `json:"name"`
	Schema model.Schema `json:"schema"`
}

// Clone returns a deep copy of the saved form.
func (f SavedForm) Clone() SavedForm {
	return SavedForm{Name: f.Name, Schema: f.Schema.Clone()}
}

// Registry keeps saved forms in insertion order. Names are unique at all
// times. Schemas are stored and returned by value.
type Registry struct {
	forms []SavedForm
}

// NewRegistry creates an empty registry, optionally seeded with forms. Seeds
// whose name repeats an earlier one replace it, like Save does.
func NewRegistry(seed ...SavedForm) *Registry {
	r := &Registry{}
	for _, form := range seed {
		r.Save(form.Name, form.Schema)
	}
	return r
}

// Save stores a copy of schema under name, replacing an existing entry in
// place or appending a new one. Blank names are ignored.
func (r *Registry) Save(name string, schema model.Schema) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if index := r.indexOf(name); index >= 0 {
		r.forms[index].Schema = schema.Clone()
		return true
	}
	r.forms = append(r.forms, SavedForm{Name: name, Schema: schema.Clone()})
	return true
}

// Rename changes the name of the form called from. Missing forms, blank
// targets and names already taken by another form are refused.
func (r *Registry) Rename(from, to string) bool {
	if strings.TrimSpace(to) == "" || from == to {
		return false
	}
	index := r.indexOf(from)
	if index < 0 {
		return false
	}
	if r.Has(to) {
		return false
	}
	r.forms[index].Name = to
	return true
}

// Get returns a copy of the form called name.
func (r *Registry) Get(name string) (SavedForm, bool) {
	index := r.indexOf(name)
	if index < 0 {
		return SavedForm{}, false
	}
	return r.forms[index].Clone(), true
}

// Has reports whether a form called name exists.
func (r *Registry) Has(name string) bool {
	return r.indexOf(name) >= 0
}

// List returns copies of all forms in insertion order.
func (r *Registry) List() []SavedForm {
	out := make([]SavedForm, len(r.forms))
	for i, form := range r.forms {
		out[i] = form.Clone()
	}
	return out
}

// Names returns the form names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.forms))
	for i, form := range r.forms {
		out[i] = form.Name
	}
	return out
}

// Len returns the number of saved forms.
func (r *Registry) Len() int {
	return len(r.forms)
}

// UniqueName derives "<base>-1", "<base>-2", ... and returns the first
// candidate no saved form uses. The base itself is never returned.
func (r *Registry) UniqueName(base string) string {
	for n := 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !r.Has(candidate) {
			return candidate
		}
	}
}

func (r *Registry) indexOf(name string) int {
	for i, form := range r.forms {
		if form.Name == name {
			return i
		}
	}
	return -1
}
