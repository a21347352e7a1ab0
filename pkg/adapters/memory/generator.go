package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/termuxdev/pkg/ports"
)

// Generator implements ports.Generator from an in-memory table of canned answers.
// It records every request it receives, which makes it the usual substitute for the
// Gemini client in tests and in offline mode.
type Generator struct {
	mu        sync.Mutex
	responses map[string]string
	fallback  *string
	err       error
	calls     []ports.GenerateRequest
}

// NewGenerator creates a Generator keyed by request contents.
// Unknown contents produce an ErrExternalCall unless WithDefault is set.
func NewGenerator(responses map[string]string) *Generator {
	table := make(map[string]string, len(responses))
	for k, v := range responses {
		table[k] = v
	}
	return &Generator{responses: table}
}

// NewFailing creates a Generator that fails every call with err wrapped in ErrExternalCall.
func NewFailing(err error) *Generator {
	return &Generator{
		responses: map[string]string{},
		err:       err,
	}
}

// WithDefault sets the answer for contents that are not in the table.
func (g *Generator) WithDefault(text string) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fallback = &text
	return g
}

// Generate looks up req.Contents.
func (g *Generator) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrExternalCall, err)
	}
	if g.err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrExternalCall, g.err)
	}
	if text, ok := g.responses[req.Contents]; ok {
		return text, nil
	}
	if g.fallback != nil {
		return *g.fallback, nil
	}
	return "", fmt.Errorf("%w: no canned response for %q", ports.ErrExternalCall, req.Contents)
}

// Calls returns a copy of the requests received so far.
func (g *Generator) Calls() []ports.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ports.GenerateRequest, len(g.calls))
	copy(out, g.calls)
	return out
}

// Reset forgets recorded calls.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = nil
}
