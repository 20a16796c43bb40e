package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }

func (n namedRenderer) Render(context.Context, formatter.Elements, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer("json"))
	reg.MustRegister(namedRenderer("html"))

	if err := reg.Register(namedRenderer("html")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected blank name error")
	}
	if diff := cmp.Diff([]string{"html", "json"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if !reg.Has("json") || reg.Has("pdf") {
		t.Fatalf("unexpected Has results")
	}

	got, err := reg.Resolve("", "html")
	if err != nil || got.Name() != "html" {
		t.Fatalf("expected fallback renderer, got %v (err=%v)", got, err)
	}
	if _, err := reg.Resolve("pdf", "html"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
