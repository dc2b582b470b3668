package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate the form
// after loading but before rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger attaches a logger for pipeline diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates loading a schema and rendering it with a named
// renderer. The vanilla renderer is registered when no registry is supplied.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	return o
}

// Registry exposes the renderer registry so callers can add renderers after
// construction.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Request describes the inputs required to render one form.
type Request struct {
	// Source locates the schema JSON. Optional when Schema is supplied.
	Source Source

	// Schema bypasses the source when the caller already holds the fields.
	Schema model.Schema

	// Name is the form title; defaults to workspace.DefaultFormName.
	Name string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	RenderOptions render.RenderOptions
}

// Generate resolves the schema, applies the transformer and renders the form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer, req.RenderOptions.Normalized().View)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug().Str("renderer", renderer.Name()).Int("fields", len(form.Schema)).Msg("orchestrator: form rendered")
	return output, nil
}

// Resolve loads and transforms the form without rendering it.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (render.Form, error) {
	schema, err := o.resolveSchema(ctx, req)
	if err != nil {
		return render.Form{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = workspace.DefaultFormName
	}
	form := render.Form{Name: name, Schema: schema}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return render.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return form, nil
}

func (o *Orchestrator) resolveSchema(ctx context.Context, req Request) (model.Schema, error) {
	if req.Schema != nil {
		return req.Schema.Clone(), nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or schema is required")
	}
	data, err := req.Source.Read(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := editor.ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse %s: %w", req.Source.Location(), err)
	}
	return schema, nil
}

// rendererFor honours an explicit name strictly. Without one it tries the
// default renderer and then any registered renderer that supports view.
func (o *Orchestrator) rendererFor(name string, view render.View) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Resolve(name, view)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}

	if o.defaultRenderer != "" {
		if renderer, err := o.registry.Resolve(o.defaultRenderer, view); err == nil {
			return renderer, nil
		}
	}
	renderer, err := o.registry.Resolve("", view)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}
