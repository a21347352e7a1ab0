package ports

import (
	"context"
	"errors"
)

// ErrExternalCall marks any failure of the external text-generation service:
// network errors, authentication errors, malformed or empty responses.
var ErrExternalCall = errors.New("external call failed")

// GenerateRequest is the outbound call contract.
type GenerateRequest struct {
	Model             string  `json:"model"`
	Contents          string  `json:"contents"`
	SystemInstruction string  `json:"system_instruction"`
	Temperature       float32 `json:"temperature"`
}

// Generator submits a request to a text-generation service.
// Implementations should wrap failures with ErrExternalCall.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req GenerateRequest) (string, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return f(ctx, req)
}

// Advisor is implemented by the advice gateway. Both methods always return
// displayable text; failures are already folded into a fallback message.
type Advisor interface {
	Ask(ctx context.Context, query string) string
	GenerateWorkflow(ctx context.Context, projectDetails string) string
}
