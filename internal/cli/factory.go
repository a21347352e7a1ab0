package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/termuxdev"
	"github.com/aretw0/termuxdev/internal/config"
	"github.com/aretw0/termuxdev/pkg/adapters/gemini"
	"github.com/aretw0/termuxdev/pkg/adapters/memory"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/aretw0/termuxdev/pkg/observability"
	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ErrOffline is the failure every call reports in offline mode.
var ErrOffline = errors.New("offline mode: external service disabled")

// Runtime is everything a command needs, built once from the resolved config.
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	App      *termuxdev.App
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
}

// RuntimeOption adjusts how a Runtime is built.
type RuntimeOption func(*runtimeOptions)

type runtimeOptions struct {
	generator ports.Generator
	logger    *slog.Logger
}

// WithGenerator replaces the generator chosen from the config.
func WithGenerator(g ports.Generator) RuntimeOption {
	return func(o *runtimeOptions) {
		o.generator = g
	}
}

// WithLogger replaces the logger built from the config.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(o *runtimeOptions) {
		o.logger = logger
	}
}

// NewRuntime wires the generator, metrics and App for cfg.
func NewRuntime(cfg *config.Config, opts ...RuntimeOption) (*Runtime, error) {
	var o runtimeOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = cfg.Logger()
	}

	gen := o.generator
	if gen == nil {
		gen = newGenerator(cfg, logger)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	app, err := termuxdev.New(
		termuxdev.WithGenerator(gen),
		termuxdev.WithModel(cfg.Model),
		termuxdev.WithContentDir(cfg.ContentDir),
		termuxdev.WithMaxQuerySize(cfg.MaxQuerySize),
		termuxdev.WithHooks(advice.MergeHooks(metrics.Hooks(), debugHooks(logger))),
		termuxdev.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing termuxdev: %w", err)
	}

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		App:      app,
		Registry: reg,
		Metrics:  metrics,
	}, nil
}

func newGenerator(cfg *config.Config, logger *slog.Logger) ports.Generator {
	if cfg.Offline {
		logger.Info("Offline mode: every query returns the fallback text")
		return memory.NewFailing(ErrOffline)
	}
	if cfg.APIKey == "" {
		// Not fatal: the catalog still works and each query falls back.
		logger.Warn("No API key configured", "env", config.EnvAPIKey)
	}
	return gemini.New(gemini.Config{
		APIKey:  cfg.APIKey,
		Timeout: cfg.HTTPTimeout,
	})
}

func debugHooks(logger *slog.Logger) advice.Hooks {
	return advice.Hooks{
		OnCall: func(ctx context.Context, e *advice.CallEvent) {
			logger.Debug("Gateway call", "request_id", e.RequestID, "kind", e.Kind, "model", e.Model)
		},
		OnResult: func(ctx context.Context, e *advice.CallEvent) {
			logger.Debug("Gateway result", "request_id", e.RequestID, "outcome", e.Outcome, "duration", e.Duration)
		},
	}
}
