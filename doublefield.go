package doublefield

import (
	"context"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/formatters/details"
	"github.com/goliatone/go-doublefield/pkg/orchestrator"
	"github.com/goliatone/go-doublefield/pkg/render"
	"github.com/goliatone/go-doublefield/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-doublefield/pkg/renderers/json"
)

// Item is one double field value.
type Item = field.Item

// ItemList is the ordered list of values of a field instance.
type ItemList = field.ItemList

// Settings aliases field.Settings.
type Settings = field.Settings

// RenderOptions describes per-request renderer overrides (locale, translator,
// theme).
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers of Render.
type Request = orchestrator.Request

// NewFormatterRegistry returns a registry holding every built-in formatter,
// each constructed with options.
func NewFormatterRegistry(options ...formatter.Option) *formatter.Registry {
	registry := formatter.NewRegistry()
	registry.MustRegister(details.New(options...))
	return registry
}

// NewRendererRegistry returns a registry holding the html and json renderers.
func NewRendererRegistry(options ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(jsonrenderer.New())
	return registry, nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderDetails renders items with the details formatter bound to settings,
// using the named renderer ("html" when empty). It is the simplest entry
// point for callers that just want markup.
func RenderDetails(ctx context.Context, items ItemList, settings Settings, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	res, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Formatter: details.ID,
		Settings:  settings,
		Items:     items,
		Renderer:  rendererName,
	})
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}
