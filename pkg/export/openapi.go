package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	openAPIVersion = "3.0.3"

	// ExtensionPlaceholder carries the field placeholder on its property.
	ExtensionPlaceholder = "x-placeholder"
	// ExtensionFieldType carries the builder field type on its property.
	ExtensionFieldType = "x-field-type"
)

// ErrInvalidFieldID reports a schema whose field ids cannot key the request
// body: an empty id or one used twice. JSON edits allow both.
var ErrInvalidFieldID = errors.New("export: invalid field id")

// Format selects the OpenAPI document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps user input onto a Format, defaulting to JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", raw)
	}
}

// ContentType reports the media type for the encoding.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Option configures the OpenAPI document.
type Option func(*config)

type config struct {
	version string
}

// WithVersion sets info.version; defaults to "1.0.0".
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version = strings.TrimSpace(version); version != "" {
			cfg.version = version
		}
	}
}

// OpenAPI builds a validated document with one POST operation whose JSON
// request body is an object keyed by field id.
func OpenAPI(ctx context.Context, form render.Form, options ...Option) (*openapi3.T, error) {
	cfg := config{version: "1.0.0"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	title := strings.TrimSpace(form.Name)
	if title == "" {
		return nil, errors.New("export: form name is required")
	}
	slug := Slug(title)
	if err := checkFieldIDs(form.Schema); err != nil {
		return nil, err
	}

	body := openapi3.NewObjectSchema()
	body.Title = title
	for _, field := range form.Schema {
		body.WithProperty(field.ID, propertySchema(field))
	}

	operation := &openapi3.Operation{
		OperationID: "submit-" + slug,
		Summary:     "Submit " + title,
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription(title + " submission").
				WithRequired(true).
				WithJSONSchema(body),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(204, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission accepted"),
			}),
		),
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/forms/"+slug+"/submissions", &openapi3.PathItem{Post: operation}),
		),
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("export: invalid openapi document: %w", err)
	}
	return doc, nil
}

// Marshal encodes the document. YAML output keeps the JSON key order.
func Marshal(doc *openapi3.T, format Format) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("export: document is nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	if format != FormatYAML {
		return data, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("export: convert to yaml: %w", err)
	}
	clearStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return out, nil
}

// Slug derives a URL-safe path segment from a form name.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "form"
	}
	return out
}

func checkFieldIDs(schema model.Schema) error {
	seen := make(map[string]int, len(schema))
	for index, field := range schema {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return fmt.Errorf("%w: field [%d] has no id (run formbuilder-lint for details)", ErrInvalidFieldID, index)
		}
		if first, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q at [%d], first at [%d] (run formbuilder-lint for details)", ErrInvalidFieldID, id, index, first)
		}
		seen[id] = index
	}
	return nil
}

func propertySchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	schema.Extensions = map[string]any{
		ExtensionFieldType: string(field.Type),
	}
	if field.HasPlaceholder() {
		schema.Extensions[ExtensionPlaceholder] = field.PlaceholderText()
	}
	return schema
}

// clearStyle drops the flow style yaml.v3 assigns to decoded JSON so the
// output reads as block YAML.
func clearStyle(node *yaml.Node) {
	node.Style &^= yaml.FlowStyle
	for _, child := range node.Content {
		clearStyle(child)
	}
}
