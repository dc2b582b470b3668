package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/goliatone/go-formbuilder/components/builder"
	"github.com/goliatone/go-formbuilder/pkg/config"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/logging"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file (ignored when missing)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "formbuilder-server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, envFile string) error {
	options := []config.Option{config.WithEnvFile(envFile)}
	if configPath != "" {
		options = append(options, config.WithFile(configPath))
	}
	cfg, err := config.Load(options...)
	if err != nil {
		return err
	}

	logger, err := logging.New().
		FromPath(cfg.Log.Path).
		Level(cfg.Log.Level).
		Console(cfg.Log.Console).
		Make()
	if err != nil {
		return err
	}
	defer logger.Close()

	seed, err := loadSeed(cfg.Builder.SeedSchema)
	if err != nil {
		return err
	}

	assetsPath := path.Join("/", cfg.Server.BasePath, "assets") + "/"
	renderer, err := vanilla.New(vanilla.WithStylesheet(assetsPath + vanilla.StylesheetName))
	if err != nil {
		return err
	}

	component, err := builder.New(
		builder.WithCookieName(cfg.Server.CookieName),
		builder.WithSessionTTL(cfg.Server.SessionTTL),
		builder.WithDefaultName(cfg.Builder.DefaultName),
		builder.WithDevice(render.ParseDevice(cfg.Builder.Device)),
		builder.WithTheme(cfg.Theme.Manifest(), cfg.Theme.Variant),
		builder.WithSeed(seed),
		builder.WithRenderer(renderer),
		builder.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(assetsPath, http.StripPrefix(assetsPath, http.FileServer(http.FS(vanilla.AssetsFS()))))
	pattern, err := component.RegisterRoutes(mux, cfg.Server.BasePath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("mount", pattern).Msg("formbuilder: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("formbuilder: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadSeed(path string) (model.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed schema: %w", err)
	}
	schema, err := editor.ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed schema %s: %w", path, err)
	}
	return schema, nil
}
