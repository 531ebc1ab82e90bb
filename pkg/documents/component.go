package documents

import (
	"context"
	"fmt"

	"github.com/goliatone/go-viewkit/pkg/render"
)

// Component adapts an ItemsRenderer to render.Renderer. Render accepts an
// ItemsRequest or *ItemsRequest; options fill the locale and theme when the
// request leaves them empty.
type Component struct {
	items *ItemsRenderer
}

var _ render.Renderer = Component{}

// AsComponent wraps r for registration in a render.Registry.
func (r *ItemsRenderer) AsComponent() Component {
	return Component{items: r}
}

// Name implements render.Renderer.
func (c Component) Name() string { return c.items.Name() }

// ContentType implements render.Renderer.
func (c Component) ContentType() string { return c.items.ContentType() }

// Render implements render.Renderer.
func (c Component) Render(ctx context.Context, data any, options render.RenderOptions) ([]byte, error) {
	var req ItemsRequest
	switch v := data.(type) {
	case ItemsRequest:
		req = v
	case *ItemsRequest:
		if v == nil {
			return nil, fmt.Errorf("documents: %w: nil request", render.ErrUnsupportedData)
		}
		req = *v
	default:
		return nil, fmt.Errorf("documents: %w: %T", render.ErrUnsupportedData, data)
	}

	if req.Locale == "" {
		req.Locale = options.Locale
	}
	if req.Theme == nil {
		req.Theme = options.Theme
	}

	items := c.items
	if options.Translator != nil {
		clone := *items
		clone.translator = options.Translator
		items = &clone
	}
	return items.Render(ctx, req)
}
