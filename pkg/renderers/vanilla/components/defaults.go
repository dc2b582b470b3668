package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer, one per palette field type.
func NewDefaultRegistry() *Registry {
	registry := New()

	input := Descriptor{Renderer: templateComponentRenderer(templatePrefix + "input.tmpl")}
	registry.MustRegister(NameInput, input)
	registry.MustRegister(NameNumber, input)
	registry.MustRegister(NameDate, input)
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "textarea.tmpl"),
	})

	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		payload := map[string]any{
			"field":    FieldContext(field),
			"disabled": data.Disabled,
			"readonly": data.ReadOnly,
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// FieldContext flattens a field into the map shape templates consume.
func FieldContext(field model.Field) map[string]any {
	return map[string]any{
		"id":              field.ID,
		"type":            string(field.Type),
		"label":           field.Label,
		"placeholder":     field.PlaceholderText(),
		"has_placeholder": field.HasPlaceholder(),
	}
}
