package vanilla

import (
	"errors"
	"fmt"
	"strings"

	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
)

// registerFilters installs the field filters the bundled templates use. A
// filter already registered by an earlier renderer is kept.
func registerFilters(templates rendertemplate.TemplateRenderer) error {
	filters := map[string]func(any, any) (any, error){
		"inputtype": inputTypeFilter,
		"controlid": controlIDFilter,
	}
	for name, fn := range filters {
		if err := templates.RegisterFilter(name, fn); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
			return fmt.Errorf("register filter %q: %w", name, err)
		}
	}
	return nil
}

// inputTypeFilter maps a field type onto the HTML input type attribute.
// Unknown types (possible after a manual JSON edit) render as text inputs.
func inputTypeFilter(input any, _ any) (any, error) {
	switch strings.TrimSpace(fmt.Sprint(input)) {
	case "number":
		return "number", nil
	case "date":
		return "date", nil
	default:
		return "text", nil
	}
}

// controlIDFilter derives a DOM id from a field id, replacing characters that
// are awkward in CSS selectors.
func controlIDFilter(input any, _ any) (any, error) {
	if input == nil {
		return "", nil
	}
	raw := strings.TrimSpace(fmt.Sprint(input))
	if raw == "" {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("fb-")
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String(), nil
}
