// Package html renders details elements as <details>/<summary> markup using
// the pongo2 template engine. Titles are reduced to plain text and values are
// sanitised with a user generated content policy before rendering.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/render"
	rendertemplate "github.com/goliatone/go-doublefield/pkg/render/template"
	"github.com/goliatone/go-doublefield/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

const detailsTemplate = "details"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	titlePolicy      *bluemonday.Policy
	valuePolicy      *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithValuePolicy replaces the sanitiser applied to element values.
func WithValuePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.valuePolicy = policy
		}
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	titlePolicy *bluemonday.Policy
	valuePolicy *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	title, value := policies()
	cfg := config{
		templateFS:  TemplatesFS(),
		titlePolicy: title,
		valuePolicy: value,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		titlePolicy: cfg.titlePolicy,
		valuePolicy: cfg.valuePolicy,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type itemView struct {
	Delta string `json:"delta"`
	Title string `json:"title"`
	Value string `json:"value"`
	Open  bool   `json:"open"`
}

type themeView struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	Style   string `json:"style"`
}

func (r *Renderer) Render(ctx context.Context, elements formatter.Elements, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]itemView, 0, elements.Len())
	for delta, element := range elements {
		details, ok := element.(formatter.DetailsElement)
		if !ok {
			return nil, fmt.Errorf("html renderer: unsupported element %T at delta %d", element, delta)
		}
		items = append(items, itemView{
			Delta: strconv.Itoa(delta),
			Title: r.titlePolicy.Sanitize(details.Title),
			Value: r.valuePolicy.Sanitize(details.Value),
			Open:  details.Open,
		})
	}

	funcs := render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{OnMissing: opts.OnMissing})
	data := map[string]any{
		"items":     items,
		"locale":    opts.Locale,
		"theme":     buildTheme(opts.Theme),
		"translate": funcs["translate"],
	}

	result, err := r.templates.RenderTemplate(detailsTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(strings.TrimSpace(result)), nil
}

func buildTheme(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(cfg.CSSVars),
	}
}

// cssVarsStyle renders vars as an inline style sorted by property name. Keys
// are normalised to "--name"; when both "name" and "--name" are set the
// prefixed spelling wins.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	props := make(map[string]string, len(vars))
	explicit := make(map[string]bool, len(vars))
	for key, raw := range vars {
		name := strings.TrimSpace(key)
		value := strings.TrimSpace(raw)
		if name == "" || value == "" {
			continue
		}
		prefixed := strings.HasPrefix(name, "--")
		if !prefixed {
			name = "--" + name
		}
		if _, seen := props[name]; seen && explicit[name] && !prefixed {
			continue
		}
		props[name] = value
		explicit[name] = explicit[name] || prefixed
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+props[name])
	}
	return strings.Join(parts, "; ")
}
