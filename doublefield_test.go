package doublefield_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	doublefield "github.com/goliatone/go-doublefield"
	"github.com/goliatone/go-doublefield/pkg/display"
)

func TestRenderDetails(t *testing.T) {
	items := doublefield.ItemList{{First: "Question", Second: "Answer"}}

	out, err := doublefield.RenderDetails(context.Background(), items, doublefield.Settings{"open": false}, "json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"0":{"#open":false,"#title":"Question","#type":"details","#value":"Answer"}}`
	if string(out) != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, out)
	}

	out, err = doublefield.RenderDetails(context.Background(), items, nil, "")
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(out), "<details") || !strings.Contains(string(out), " open>") {
		t.Fatalf("expected open details markup, got %s", out)
	}
}

func TestRegistries(t *testing.T) {
	formatters := doublefield.NewFormatterRegistry()
	if !formatters.Has("details") {
		t.Fatalf("details formatter not registered")
	}

	renderers, err := doublefield.NewRendererRegistry()
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	if got := strings.Join(renderers.List(), ","); got != "html,json" {
		t.Fatalf("unexpected renderers %q", got)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(doublefield.EmbeddedTemplates(), "details.tpl"); err != nil {
		t.Fatalf("details template missing: %v", err)
	}
}

func TestLoadDisplays(t *testing.T) {
	store, err := doublefield.LoadDisplays(fstest.MapFS{
		"d.yaml": {Data: []byte("displays:\n  - entity: node\n    bundle: faq\n    field: field_qa\n    type: details\n")},
	}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Get(display.Key{Entity: "node", Bundle: "faq", Field: "field_qa"}); !ok {
		t.Fatalf("display not loaded")
	}
}
