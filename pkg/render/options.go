package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the elements.
type RenderOptions struct {
	// Locale is forwarded to Translator for strings the renderer adds itself.
	Locale     string
	Translator formatter.Translator
	OnMissing  formatter.MissingTranslationHandler
	// Theme carries the resolved go-theme selection. Renderers expose its CSS
	// variables on the wrapper element.
	Theme *theme.RendererConfig
}
