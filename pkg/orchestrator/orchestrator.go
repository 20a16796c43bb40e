package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/formatters/details"
	"github.com/goliatone/go-doublefield/pkg/metrics"
	"github.com/goliatone/go-doublefield/pkg/render"
	"github.com/goliatone/go-doublefield/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-doublefield/pkg/renderers/json"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFormatters injects the formatter registry.
func WithFormatters(registry *formatter.Registry) Option {
	return func(o *Orchestrator) {
		o.formatters = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDisplayStore lets requests address a configured field display instead
// of passing formatter and settings explicitly.
func WithDisplayStore(store *display.Store) Option {
	return func(o *Orchestrator) {
		o.displays = store
	}
}

// WithThemeSelector resolves theme/variant choices into renderer theme
// configuration ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator runs the formatter -> renderer pipeline for one field instance.
// Missing dependencies are initialised with the built-in details formatter
// and the html/json renderers.
type Orchestrator struct {
	formatters      *formatter.Registry
	renderers       *render.Registry
	displays        *display.Store
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	logger          *zap.SugaredLogger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of a field instance.
type Request struct {
	// Display selects a configured display from the store. When set, the
	// stored formatter and settings are used and Formatter/Settings are
	// ignored.
	Display *display.Key

	// Formatter names the formatter by ID. When empty, the default formatter
	// for FieldType is used.
	Formatter string
	FieldType string
	Settings  field.Settings

	Items field.ItemList

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Response carries the rendered output and the intermediate elements.
type Response struct {
	Formatter   formatter.Definition
	Elements    formatter.Elements
	Output      []byte
	ContentType string
}

// Generate resolves the formatter, builds its view elements and renders them.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Response{}, err
	}

	f, err := o.formatterFor(req)
	if err != nil {
		return Response{}, err
	}
	def := f.Definition()

	elements, err := f.ViewElements(ctx, req.Items)
	if err != nil {
		metrics.RenderErrors.WithLabelValues(def.ID).Inc()
		return Response{}, fmt.Errorf("orchestrator: view elements: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Response{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Response{}, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, elements, opts)
	if err != nil {
		metrics.RenderErrors.WithLabelValues(def.ID).Inc()
		return Response{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	metrics.RenderedElements.WithLabelValues(def.ID, renderer.Name()).Add(float64(elements.Len()))
	o.logger.Debugw("orchestrator: rendered field",
		"formatter", def.ID,
		"renderer", renderer.Name(),
		"elements", elements.Len(),
	)

	return Response{
		Formatter:   def,
		Elements:    elements,
		Output:      output,
		ContentType: renderer.ContentType(),
	}, nil
}

func (o *Orchestrator) formatterFor(req Request) (formatter.Formatter, error) {
	if req.Display != nil {
		if o.displays == nil {
			return nil, fmt.Errorf("orchestrator: display store is not configured: %w", display.ErrDisplayNotFound)
		}
		f, err := o.displays.Formatter(*req.Display, o.formatters)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: display %q: %w", req.Display.String(), err)
		}
		return f, nil
	}

	var (
		f   formatter.Formatter
		err error
	)
	switch id := strings.TrimSpace(req.Formatter); {
	case id != "":
		f, err = o.formatters.Get(id)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	default:
		fieldType := req.FieldType
		if fieldType == "" {
			fieldType = field.TypeDoubleField
		}
		var ok bool
		f, ok = o.formatters.Resolve(fieldType)
		if !ok {
			return nil, fmt.Errorf("orchestrator: no formatter for field type %q: %w", fieldType, formatter.ErrFormatterNotFound)
		}
	}
	return f.WithSettings(req.Settings), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	fallback := o.defaultRenderer
	if name == "" && !o.renderers.Has(fallback) {
		// A custom registry without the default renderer falls back to its
		// first renderer by name.
		if names := o.renderers.List(); len(names) > 0 {
			fallback = names[0]
		}
	}
	renderer, err := o.renderers.Resolve(name, fallback)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}

	tokens := map[string]string{}
	if selection.Manifest != nil {
		for key, value := range selection.Manifest.Tokens {
			tokens[key] = value
		}
		if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Tokens {
				tokens[key] = value
			}
		}
	}
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.formatters == nil {
		o.formatters = formatter.NewRegistry()
		o.formatters.MustRegister(details.New(formatter.WithLogger(o.logger)))
	}
	if o.renderers == nil {
		o.renderers = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.renderers.MustRegister(renderer)
		}
		o.renderers.MustRegister(jsonrenderer.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
