package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/specialistvlad/confjson/internal/jsonconf"
	"github.com/specialistvlad/confjson/internal/manifest"
	"github.com/specialistvlad/confjson/internal/registry"
	"github.com/specialistvlad/confjson/internal/tree"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// New is the constructor for the application. It returns a fully initialized
// App with its own isolated logger and a registry populated from the
// configured manifests.
func New(outW io.Writer, cfg *Config) (*App, error) {
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if err := manifest.NewLoader().Load(ctx, reg, cfg.ManifestPaths...); err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	logger.Debug("Manifests loaded into registry.", "types", len(reg.Names()))

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	return &App{
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Encode writes c as a JSON document. The root type must be registered.
func (a *App) Encode(ctx context.Context, c *tree.Configuration) ([]byte, error) {
	ctx = a.withLogger(ctx)
	if _, err := a.registry.Resolve(c.Type); err != nil {
		return nil, err
	}

	var opts []jsonconf.WriterOption
	if a.config.StrictNames {
		opts = append(opts, jsonconf.WithStrictNames())
	}
	w := jsonconf.NewWriter(ctx, opts...)
	if err := tree.Walk(c, w); err != nil {
		return nil, fmt.Errorf("failed to encode configuration '%s': %w", c.Type, err)
	}
	return w.MarshalJSON()
}

// Decode parses a JSON document back into a configuration tree.
func (a *App) Decode(ctx context.Context, data []byte) (*tree.Configuration, error) {
	logger := ctxlog.FromContext(a.withLogger(ctx))

	var parseOpts []jsonconf.ParseOption
	if a.config.StrictNames {
		parseOpts = append(parseOpts, jsonconf.RejectDuplicateNames())
	}
	r, err := jsonconf.ParseReader(data, a.registry, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var buildOpts []tree.BuildOption
	if a.config.CheckTypes {
		buildOpts = append(buildOpts, tree.WithTypeCheck())
	}
	c, err := tree.Build(r, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration '%s': %w", r.ConfigurationType(), err)
	}
	logger.Debug("Decoded configuration.", "type", c.Type, "entries", len(c.Entries))
	return c, nil
}

// withLogger attaches the app's logger so every component logs to outW.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
