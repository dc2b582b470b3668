package vanilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
)

const (
	templatePreview = "templates/preview.tmpl"
	templateCanvas  = "templates/canvas.tmpl"
	templatePalette = "templates/palette.tmpl"
	templateBuilder = "templates/builder.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry overrides the per field type component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithStylesheet links an external stylesheet from the builder view.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the builder view.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer produces HTML for the builder views: palette, canvas, preview and
// the composed builder page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	registry     *components.Registry
	stylesheets  []string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := registerFilters(renderer); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if err := renderer.GlobalContext(map[string]any{"classes": chromeClasses()}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: template globals: %w", err)
	}

	out := &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		stylesheets: append([]string(nil), cfg.stylesheets...),
	}
	if cfg.inlineStyles {
		out.inlineStyles = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Views lists every builder view this renderer can produce.
func (r *Renderer) Views() []render.View {
	return []render.View{render.ViewPreview, render.ViewCanvas, render.ViewPalette, render.ViewBuilder}
}

// Render produces the view selected by options.View.
func (r *Renderer) Render(_ context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	options = options.Normalized()

	var (
		out string
		err error
	)
	switch options.View {
	case render.ViewPreview:
		out, err = r.renderPreview(form, options)
	case render.ViewCanvas:
		out, err = r.renderCanvas(form, options)
	case render.ViewPalette:
		out, err = r.renderPalette()
	case render.ViewBuilder:
		out, err = r.renderBuilder(form, options)
	default:
		return nil, fmt.Errorf("vanilla renderer: unsupported view %q", options.View)
	}
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) renderPreview(form render.Form, options render.RenderOptions) (string, error) {
	fields := make([]map[string]any, 0, len(form.Schema))
	for _, field := range form.Schema {
		control, err := r.renderControl(field, components.ComponentData{ReadOnly: true})
		if err != nil {
			return "", err
		}
		view := components.FieldContext(field)
		view["control"] = control
		fields = append(fields, view)
	}

	return r.execute(templatePreview, map[string]any{
		"form":   map[string]any{"name": form.Name},
		"fields": fields,
		"device": string(options.Device),
		"style":  render.CSSVarsStyle(render.ThemeTokens(options.Theme, options.Variant)),
	})
}

func (r *Renderer) renderCanvas(form render.Form, options render.RenderOptions) (string, error) {
	dragging := -1
	if options.Dragging != nil {
		dragging = *options.Dragging
	}

	fields := make([]map[string]any, 0, len(form.Schema))
	for index, field := range form.Schema {
		control, err := r.renderControl(field, components.ComponentData{Disabled: true})
		if err != nil {
			return "", err
		}
		view := components.FieldContext(field)
		view["control"] = control
		view["index"] = strconv.Itoa(index)
		view["dragging"] = index == dragging
		view["declares_placeholder"] = declaresPlaceholder(field)
		fields = append(fields, view)
	}

	return r.execute(templateCanvas, map[string]any{
		"fields":         fields,
		"dragging":       options.Dragging != nil,
		"drop_targets":   strconv.Itoa(len(form.Schema) + 1),
		"trailing_index": strconv.Itoa(len(form.Schema)),
	})
}

func (r *Renderer) renderPalette() (string, error) {
	catalog := model.Catalog()
	items := make([]map[string]any, 0, len(catalog))
	for _, tpl := range catalog {
		items = append(items, map[string]any{
			"type":  string(tpl.Type),
			"label": tpl.Label,
			"icon":  sanitizeIconMarkup(tpl.Icon),
		})
	}
	return r.execute(templatePalette, map[string]any{
		"palette": items,
	})
}

func (r *Renderer) renderBuilder(form render.Form, options render.RenderOptions) (string, error) {
	palette, err := r.renderPalette()
	if err != nil {
		return "", err
	}
	canvas, err := r.renderCanvas(form, options)
	if err != nil {
		return "", err
	}
	preview, err := r.renderPreview(form, options)
	if err != nil {
		return "", err
	}
	schemaJSON, err := json.MarshalIndent(form.Schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: encode schema: %w", err)
	}

	stylesheets := append([]string(nil), r.stylesheets...)
	stylesheets = append(stylesheets, r.registry.Stylesheets(fieldTypes(form.Schema))...)

	return r.execute(templateBuilder, map[string]any{
		"form":          map[string]any{"name": form.Name},
		"palette":       palette,
		"canvas":        canvas,
		"preview":       preview,
		"schema_json":   string(schemaJSON),
		"stylesheets":   stylesheets,
		"inline_styles": r.inlineStyles,
		"style":         render.CSSVarsStyle(render.ThemeTokens(options.Theme, options.Variant)),
	})
}

func (r *Renderer) renderControl(field model.Field, data components.ComponentData) (string, error) {
	descriptor, ok := r.registry.Resolve(field.Type)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no component for field %q of type %q", field.ID, field.Type)
	}
	var buf bytes.Buffer
	data.Template = r.templates
	if err := descriptor.Renderer(&buf, field, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.ID, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (r *Renderer) execute(name string, data map[string]any) (string, error) {
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return out, nil
}

// declaresPlaceholder reports whether the canvas should offer a placeholder
// editor. Unknown types keep whatever the JSON edit gave them.
func declaresPlaceholder(field model.Field) bool {
	if tpl, ok := model.Lookup(string(field.Type)); ok {
		return tpl.Declares(model.AttrPlaceholder)
	}
	return field.HasPlaceholder()
}

func fieldTypes(schema model.Schema) []string {
	out := make([]string, 0, len(schema))
	for _, field := range schema {
		out = append(out, string(field.Type))
	}
	return out
}
