package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

func main() {
	schemaPath := flag.String("schema", "", "schema JSON file (array of field objects)")
	name := flag.String("name", "", "form name")
	renderer := flag.String("renderer", "vanilla", "renderer to use: vanilla or tui (tui only renders the preview view)")
	view := flag.String("view", "preview", "vanilla view: preview, canvas, palette or builder")
	device := flag.String("device", "web", "preview device: web or mobile")
	tuiFormat := flag.String("tui-format", "json", "tui output: json, form or pretty")
	preset := flag.String("preset", "", "JSON preset overriding labels and placeholders")
	openapiFormat := flag.String("openapi", "", "emit an OpenAPI document (json or yaml) instead of rendering")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	if strings.TrimSpace(*schemaPath) == "" {
		log.Fatalf("missing -schema")
	}

	gen, err := newOrchestrator(*tuiFormat, *preset)
	if err != nil {
		log.Fatalf("Failed to configure: %v", err)
	}

	req := orchestrator.Request{
		Source:   orchestrator.SourceFromFile(*schemaPath),
		Name:     *name,
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			View:   render.View(*view),
			Device: render.ParseDevice(*device),
		},
	}

	var out []byte
	if *openapiFormat != "" {
		out, err = generateOpenAPI(ctx, gen, req, *openapiFormat)
	} else {
		out, err = gen.Generate(ctx, req)
	}
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func newOrchestrator(tuiFormat, presetPath string) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)

	terminal, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(tuiFormat)))
	if err != nil {
		return nil, err
	}
	registry.MustRegister(terminal)

	options := []orchestrator.Option{orchestrator.WithRegistry(registry)}
	if presetPath != "" {
		data, err := os.ReadFile(presetPath)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		transformer, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}
	return orchestrator.New(options...), nil
}

func generateOpenAPI(ctx context.Context, gen *orchestrator.Orchestrator, req orchestrator.Request, rawFormat string) ([]byte, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	form, err := gen.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	doc, err := export.OpenAPI(ctx, form)
	if err != nil {
		return nil, err
	}
	return export.Marshal(doc, format)
}
