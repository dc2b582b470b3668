package editor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ChangeFunc is invoked after every mutation with a copy of the new schema.
type ChangeFunc func(model.Schema)

// Option configures an Editor.
type Option func(*Editor)

// WithClock overrides the time source used to stamp new field ids.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger attaches a logger for diagnostics about ignored input.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithSchema seeds the editor with an initial schema (copied).
func WithSchema(schema model.Schema) Option {
	return func(e *Editor) {
		e.schema = schema.Clone()
	}
}

// WithChangeListener registers a callback fired after each mutation.
func WithChangeListener(fn ChangeFunc) Option {
	return func(e *Editor) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}

// OnChange registers a change listener after construction.
func (e *Editor) OnChange(fn ChangeFunc) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}
