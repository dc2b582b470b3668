package workspace

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/forms"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Snapshot is a read-only view of the workspace for renderers and API
// responses.
type Snapshot struct {
	Name   string              `json:"name"`
	Saved  bool                `json:"saved"`
	Schema model.Schema        `json:"schema"`
	Forms  []string            `json:"forms"`
	Drag   *editor.DragSession `json:"-"`
}

// Workspace owns the live schema, the saved forms and the current name.
type Workspace struct {
	editor      *editor.Editor
	forms       *forms.Registry
	current     string
	defaultName string
	logger      zerolog.Logger
	listeners   []func()
}

// New constructs a workspace with an empty schema named DefaultFormName.
func New(options ...Option) *Workspace {
	cfg := config{
		defaultName: DefaultFormName,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = forms.NewRegistry()
	}

	editorOptions := append([]editor.Option{editor.WithLogger(cfg.logger)}, cfg.editorOptions...)
	w := &Workspace{
		editor:      editor.New(editorOptions...),
		forms:       cfg.registry,
		current:     cfg.defaultName,
		defaultName: cfg.defaultName,
		logger:      cfg.logger,
	}
	w.editor.OnChange(func(model.Schema) { w.notify() })
	return w
}

// Editor exposes the schema editor for drag, drop, update and JSON intents.
func (w *Workspace) Editor() *editor.Editor {
	return w.editor
}

// CurrentName returns the name of the form being edited.
func (w *Workspace) CurrentName() string {
	return w.current
}

// DefaultName returns the placeholder used for unnamed forms.
func (w *Workspace) DefaultName() string {
	return w.defaultName
}

// Forms lists saved forms in insertion order.
func (w *Workspace) Forms() []forms.SavedForm {
	return w.forms.List()
}

// IsSaved reports whether a saved form matches the current name.
func (w *Workspace) IsSaved() bool {
	return w.forms.Has(w.current)
}

// Snapshot captures the current state.
func (w *Workspace) Snapshot() Snapshot {
	snap := Snapshot{
		Name:   w.current,
		Saved:  w.IsSaved(),
		Schema: w.editor.Schema(),
		Forms:  w.forms.Names(),
	}
	if session, ok := w.editor.Session(); ok {
		snap.Drag = &session
	}
	return snap
}

// OnChange registers a callback fired after any schema, name or registry
// change.
func (w *Workspace) OnChange(fn func()) {
	if fn != nil {
		w.listeners = append(w.listeners, fn)
	}
}

// Save stores the live schema under name and makes it the current form.
func (w *Workspace) Save(name string) bool {
	if !w.forms.Save(name, w.editor.Schema()) {
		w.logger.Debug().Str("name", name).Msg("workspace: save with blank name ignored")
		return false
	}
	w.current = name
	w.notify()
	return true
}

// Rename renames the saved form matching the current name. It only applies
// when the trimmed name is non-empty, differs from the current one, and a
// saved form matches the current name.
func (w *Workspace) Rename(newName string) bool {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" || trimmed == w.current {
		return false
	}
	if !w.forms.Rename(w.current, trimmed) {
		w.logger.Debug().Str("from", w.current).Str("to", trimmed).Msg("workspace: rename ignored")
		return false
	}
	w.current = trimmed
	w.notify()
	return true
}

// Clone saves a copy of the live schema under the first free "<name>-N" and
// makes it current.
func (w *Workspace) Clone() string {
	base := w.current
	if strings.TrimSpace(base) == "" {
		base = w.defaultName
	}
	name := w.forms.UniqueName(base)
	w.forms.Save(name, w.editor.Schema())
	w.current = name
	w.notify()
	return name
}

// NewForm clears the live schema and resets the name. Saved forms are kept.
func (w *Workspace) NewForm() {
	w.current = w.defaultName
	w.editor.Replace(model.Schema{})
}

// Select loads a copy of the saved form called name. Unknown names are
// ignored.
func (w *Workspace) Select(name string) bool {
	form, ok := w.forms.Get(name)
	if !ok {
		w.logger.Debug().Str("name", name).Msg("workspace: select of unknown form ignored")
		return false
	}
	w.current = form.Name
	w.editor.Replace(form.Schema)
	return true
}

// CommitName finishes an inline name edit (enter, blur or click outside).
// An existing saved form is renamed; an unsaved one is saved under the new
// name.
func (w *Workspace) CommitName(edit string) bool {
	trimmed := strings.TrimSpace(edit)
	if trimmed == "" || trimmed == w.current {
		return false
	}
	if w.IsSaved() {
		return w.Rename(trimmed)
	}
	return w.Save(trimmed)
}

func (w *Workspace) notify() {
	for _, fn := range w.listeners {
		fn()
	}
}
