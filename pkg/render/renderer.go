package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Form is what renderers consume: a form name and its ordered schema.
type Form struct {
	Name   string       `json:"name"`
	Schema model.Schema `json:"schema"`
}

// Renderer converts a form into a byte representation (HTML, JSON, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
