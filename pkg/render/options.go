package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-viewkit/pkg/i18n"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the component data itself.
type RenderOptions struct {
	// Locale selects the translation locale. Data carrying its own locale wins.
	Locale string
	// Translator overrides the renderer's translator for this call.
	Translator i18n.Translator
	// Theme supplies class tokens and asset URLs resolved from a go-theme
	// selection.
	Theme *theme.RendererConfig
}
