package ports

import (
	"context"

	"github.com/aretw0/termuxdev/pkg/catalog"
)

// Service is what the presentation adapters (HTTP, MCP, CLI) depend on.
// Ask and GenerateWorkflow return an error only for rejected input; service
// failures are already folded into the fallback text.
type Service interface {
	Catalog() *catalog.Catalog
	Ask(ctx context.Context, query string) (string, error)
	GenerateWorkflow(ctx context.Context, details string) (string, error)
}
