package render

import (
	"context"
)

// Renderer turns component data into a byte representation (HTML, JSON).
// Implementations document the concrete data types they accept and return
// ErrUnsupportedData for anything else.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, data any, options RenderOptions) ([]byte, error)
}
