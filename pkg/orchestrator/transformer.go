package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Transformer mutates a form before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, form *render.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *render.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *render.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Fields are addressed by id:
//
//	{
//	  "name": "Contact",
//	  "fields": {
//	    "text-1": {"label": "Full name", "placeholder": "Jane Doe"}
//	  }
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Name   string                `json:"name"`
	Fields map[string]fieldPatch `json:"fields"`
}

type fieldPatch struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a preset document from fsys.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches. A patch naming an unknown field is an error.
// Placeholders are only written onto fields that already declare one.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *render.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if name := strings.TrimSpace(t.document.Name); name != "" {
		form.Name = name
	}
	for id, patch := range t.document.Fields {
		index := form.Schema.IndexOf(id)
		if index < 0 {
			return fmt.Errorf("json preset transformer: field %q not found", id)
		}
		field := form.Schema[index].Clone()
		if patch.Label != "" {
			field.Label = patch.Label
		}
		if patch.Placeholder != "" && field.HasPlaceholder() {
			field = field.WithPlaceholder(patch.Placeholder)
		}
		form.Schema[index] = field
	}
	return nil
}
