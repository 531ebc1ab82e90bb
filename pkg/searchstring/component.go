package searchstring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-viewkit/pkg/render"
)

// Component adapts a Builder to render.Renderer, producing the filter list as
// JSON. Render accepts a Request, *Request or a bare model name.
type Component struct {
	builder *Builder
}

var _ render.Renderer = Component{}

// AsComponent wraps b for registration in a render.Registry.
func (b *Builder) AsComponent() Component {
	return Component{builder: b}
}

func (c Component) Name() string { return "search-string" }

func (c Component) ContentType() string { return "application/json; charset=utf-8" }

func (c Component) Render(ctx context.Context, data any, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req Request
	switch v := data.(type) {
	case Request:
		req = v
	case *Request:
		if v == nil {
			return nil, fmt.Errorf("searchstring: %w: nil request", render.ErrUnsupportedData)
		}
		req = *v
	case string:
		req = Request{Model: v}
	default:
		return nil, fmt.Errorf("searchstring: %w: %T", render.ErrUnsupportedData, data)
	}
	if req.Locale == "" {
		req.Locale = options.Locale
	}

	builder := c.builder
	if builder != nil && options.Translator != nil {
		clone := *builder
		clone.translator = options.Translator
		builder = &clone
	}

	out, err := json.Marshal(builder.Filters(req))
	if err != nil {
		return nil, fmt.Errorf("searchstring: encode filters: %w", err)
	}
	return out, nil
}
