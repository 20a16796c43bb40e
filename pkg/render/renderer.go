package render

import (
	"context"

	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// Renderer converts formatter output into a byte representation (HTML, JSON,
// etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, elements formatter.Elements, options RenderOptions) ([]byte, error)
}
