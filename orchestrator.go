package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// Schema aliases model.Schema.
type Schema = model.Schema

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewWorkspace starts an empty builder workspace.
func NewWorkspace(options ...workspace.Option) *workspace.Workspace {
	return workspace.New(options...)
}

// GenerateHTML loads the schema from source and renders it with the named
// renderer. It is the simplest entry point for callers that just want HTML.
func GenerateHTML(ctx context.Context, source orchestrator.Source, name, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Name:     name,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromSchema renders a schema already held in memory.
func GenerateHTMLFromSchema(ctx context.Context, schema Schema, name, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Schema:   schema,
		Name:     name,
		Renderer: rendererName,
	})
}
