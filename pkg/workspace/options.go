package workspace

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/forms"
)

// DefaultFormName labels a form that was never named.
const DefaultFormName = "Untitled Form"

// Option configures a Workspace.
type Option func(*config)

type config struct {
	editorOptions []editor.Option
	registry      *forms.Registry
	defaultName   string
	logger        zerolog.Logger
}

// WithEditorOptions forwards options to the underlying editor.
func WithEditorOptions(options ...editor.Option) Option {
	return func(cfg *config) {
		cfg.editorOptions = append(cfg.editorOptions, options...)
	}
}

// WithRegistry supplies a pre-populated saved-form registry.
func WithRegistry(registry *forms.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithDefaultName overrides the placeholder name for unnamed forms.
func WithDefaultName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.defaultName = trimmed
		}
	}
}

// WithLogger attaches a logger; it is also handed to the editor.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
