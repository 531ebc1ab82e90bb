// Package viewkit bundles the search bar filter builder and the document
// line-item table renderer behind a small facade.
package viewkit

import (
	"context"
	"fmt"

	"github.com/goliatone/go-viewkit/pkg/documents"
	"github.com/goliatone/go-viewkit/pkg/render"
	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

// Filter aliases searchstring.Filter.
type Filter = searchstring.Filter

// FilterRequest aliases searchstring.Request.
type FilterRequest = searchstring.Request

// ItemsRequest aliases documents.ItemsRequest.
type ItemsRequest = documents.ItemsRequest

// RenderOptions aliases render.RenderOptions for registry callers.
type RenderOptions = render.RenderOptions

// Renderer names registered by NewRegistry.
const (
	RendererFilters = "search-string"
	RendererItems   = "document-items"
)

// NewFilterBuilder exposes the filter builder constructor from the top-level
// module.
func NewFilterBuilder(options ...searchstring.Option) *searchstring.Builder {
	return searchstring.NewBuilder(options...)
}

// NewItemsRenderer exposes the items renderer constructor.
func NewItemsRenderer(options ...documents.Option) (*documents.ItemsRenderer, error) {
	return documents.NewItemsRenderer(options...)
}

// RenderItems builds a one-off items renderer and renders req with it.
// Callers rendering repeatedly should keep a renderer from NewItemsRenderer.
func RenderItems(ctx context.Context, req ItemsRequest, options ...documents.Option) ([]byte, error) {
	renderer, err := documents.NewItemsRenderer(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, req)
}

// NewRegistry registers both components so callers can render either by name.
// A nil builder or renderer is skipped.
func NewRegistry(builder *searchstring.Builder, items *documents.ItemsRenderer) (*render.Registry, error) {
	registry := render.NewRegistry()
	if builder != nil {
		if err := registry.Register(builder.AsComponent()); err != nil {
			return nil, fmt.Errorf("viewkit: register filters: %w", err)
		}
	}
	if items != nil {
		if err := registry.Register(items.AsComponent()); err != nil {
			return nil, fmt.Errorf("viewkit: register items: %w", err)
		}
	}
	return registry, nil
}
