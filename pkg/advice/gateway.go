package advice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/google/uuid"
)

// Gateway forwards queries to a Generator and folds every failure into a fallback string.
// It holds no per-call state and is safe for concurrent use.
type Gateway struct {
	generator ports.Generator
	model     string
	logger    *slog.Logger
	hooks     Hooks
}

var _ ports.Advisor = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway)

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(g *Gateway) {
		if model != "" {
			g.model = model
		}
	}
}

// WithLogger sets the diagnostic logger. Failure details go here and nowhere else.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks Hooks) Option {
	return func(g *Gateway) {
		g.hooks = hooks
	}
}

// New creates a Gateway around the given generator.
func New(generator ports.Generator, opts ...Option) *Gateway {
	g := &Gateway{
		generator: generator,
		model:     DefaultModel,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the model identifier attached to every request.
func (g *Gateway) Model() string {
	return g.model
}

// Ask returns troubleshooting advice for query, or AdviceFallback if the call fails.
// The caller must reject empty queries beforehand.
func (g *Gateway) Ask(ctx context.Context, query string) string {
	return g.call(ctx, adviceVariant, query)
}

// GenerateWorkflow returns GitHub Actions YAML for the described project,
// or WorkflowFallback if the call fails.
func (g *Gateway) GenerateWorkflow(ctx context.Context, projectDetails string) string {
	return g.call(ctx, workflowVariant, projectDetails)
}

func (g *Gateway) call(ctx context.Context, v variant, input string) string {
	event := &CallEvent{
		Timestamp: time.Now(),
		RequestID: uuid.NewString(),
		Kind:      v.kind,
		Model:     g.model,
	}
	if g.hooks.OnCall != nil {
		g.hooks.OnCall(ctx, event)
	}

	text, err := g.generate(ctx, v.request(g.model, input))

	event.Duration = time.Since(event.Timestamp)
	if err != nil {
		event.Outcome = OutcomeFallback
		event.Err = err
		g.logger.Error("Generation failed",
			"request_id", event.RequestID,
			"kind", v.kind,
			"model", g.model,
			"error", err,
		)
		text = v.fallback
	} else {
		event.Outcome = OutcomeSuccess
		g.logger.Debug("Generation completed",
			"request_id", event.RequestID,
			"kind", v.kind,
			"duration", event.Duration,
		)
	}

	if g.hooks.OnResult != nil {
		g.hooks.OnResult(ctx, event)
	}
	return text
}

// generate shields the gateway from a missing generator and from panics inside it.
func (g *Gateway) generate(ctx context.Context, req ports.GenerateRequest) (text string, err error) {
	if g.generator == nil {
		return "", fmt.Errorf("%w: no generator configured", ports.ErrExternalCall)
	}
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: generator panic: %v", ports.ErrExternalCall, r)
		}
	}()
	return g.generator.Generate(ctx, req)
}
