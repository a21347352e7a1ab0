package termuxdev

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	loamAdapter "github.com/aretw0/termuxdev/pkg/adapters/loam"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/aretw0/termuxdev/pkg/catalog"
	"github.com/aretw0/termuxdev/pkg/ports"
)

// App is the high-level entry point. It owns the catalog and the advice gateway and
// performs the caller-side query validation that the gateway expects.
type App struct {
	gateway      *advice.Gateway
	catalog      *catalog.Catalog
	generator    ports.Generator
	contentDir   string
	model        string
	maxQuerySize int
	hooks        advice.Hooks
	logger       *slog.Logger
}

var _ ports.Service = (*App)(nil)

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithGenerator sets the text-generation backend. Without one every call falls back.
func WithGenerator(g ports.Generator) Option {
	return func(a *App) {
		a.generator = g
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *App) {
		a.catalog = c
	}
}

// WithContentDir merges Markdown entries from dir on top of the catalog.
func WithContentDir(dir string) Option {
	return func(a *App) {
		a.contentDir = dir
	}
}

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(a *App) {
		a.model = model
	}
}

// WithMaxQuerySize caps accepted queries at n bytes. Zero, the default, means unlimited.
func WithMaxQuerySize(n int) Option {
	return func(a *App) {
		a.maxQuerySize = n
	}
}

// WithHooks registers gateway observability hooks.
func WithHooks(hooks advice.Hooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New builds an App. The catalog is resolved once here and never changes afterwards.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}

	if a.contentDir != "" {
		loader, err := loamAdapter.Open(a.contentDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open content dir: %w", err)
		}
		overlay, err := loader.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load content dir: %w", err)
		}
		a.catalog = a.catalog.Merge(overlay)
		a.logger.Info("Catalog overlay loaded", "dir", a.contentDir,
			"steps", len(overlay.SetupSteps), "workflows", len(overlay.Workflows))
	}

	a.gateway = advice.New(a.generator,
		advice.WithModel(a.model),
		advice.WithLogger(a.logger),
		advice.WithHooks(a.hooks),
	)
	return a, nil
}

// Catalog returns the static reference data. Callers must not modify it.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Gateway exposes the underlying advice gateway.
func (a *App) Gateway() *advice.Gateway {
	return a.gateway
}

// MaxQuerySize returns the configured query limit in bytes, or 0 when unlimited.
func (a *App) MaxQuerySize() int {
	return a.maxQuerySize
}

// Ask validates query and forwards it to the gateway unchanged.
// The only errors returned are input errors from advice.ValidateQuery; service
// failures come back as advice.AdviceFallback.
func (a *App) Ask(ctx context.Context, query string) (string, error) {
	if err := advice.ValidateQuery(query, a.maxQuerySize); err != nil {
		return "", err
	}
	return a.gateway.Ask(ctx, query), nil
}

// GenerateWorkflow validates details and asks the gateway for a workflow file.
func (a *App) GenerateWorkflow(ctx context.Context, details string) (string, error) {
	if err := advice.ValidateQuery(details, a.maxQuerySize); err != nil {
		return "", err
	}
	return a.gateway.GenerateWorkflow(ctx, details), nil
}
