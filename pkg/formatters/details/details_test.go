package details

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestDefaultSettings_OpenTrue(t *testing.T) {
	defaults := New().DefaultSettings()
	if open, ok := defaults["open"].(bool); !ok || !open {
		t.Fatalf("expected open=true in defaults, got %#v", defaults["open"])
	}
	for _, key := range []string{formatter.SubfieldFirst, formatter.SubfieldSecond} {
		if _, ok := defaults[key]; !ok {
			t.Fatalf("expected base default %q to be merged, got %#v", key, defaults)
		}
	}
}

func TestSettings_MissingOpenFallsBackToDefault(t *testing.T) {
	for _, settings := range []field.Settings{nil, {}, {"open": nil}, {"open": "not-a-bool"}} {
		f := New(formatter.WithSettings(settings))
		if !f.Open() {
			t.Fatalf("expected open=true for settings %#v", settings)
		}
	}
}

func TestDefinition(t *testing.T) {
	def := New().Definition()
	want := formatter.Definition{ID: "details", Label: "Details", FieldTypes: []string{"double_field"}}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsForm_OpenCheckboxFirst(t *testing.T) {
	f := New(formatter.WithSettings(field.Settings{"open": false}))
	form := f.SettingsForm(&formatter.FormState{})

	if diff := cmp.Diff([]string{"open", "first", "second"}, form.Keys()); diff != "" {
		t.Fatalf("form keys mismatch (-want +got):\n%s", diff)
	}
	element, ok := form.Get("open")
	if !ok {
		t.Fatalf("expected open element")
	}
	checkbox, ok := element.(formatter.Checkbox)
	if !ok {
		t.Fatalf("expected checkbox, got %T", element)
	}
	if checkbox.Title != "Open" || checkbox.DefaultValue {
		t.Fatalf("unexpected checkbox: %+v", checkbox)
	}
}

func TestSettingsForm_TranslatesTitle(t *testing.T) {
	f := New(formatter.WithTranslator(stubTranslator{"Open": "Abierto"}), formatter.WithLocale("es"))
	element, _ := f.SettingsForm(nil).Get("open")
	if got := element.(formatter.Checkbox).Title; got != "Abierto" {
		t.Fatalf("expected translated title, got %q", got)
	}
}

func TestSettingsSummary(t *testing.T) {
	cases := []struct {
		name     string
		settings field.Settings
		want     []string
	}{
		{name: "defaults", want: []string{"Open: yes"}},
		{name: "closed", settings: field.Settings{"open": false}, want: []string{"Open: no"}},
		{
			name: "base lines follow in order",
			settings: field.Settings{
				"open":   true,
				"first":  map[string]any{"prefix": "Q: "},
				"second": map[string]any{"hidden": true},
			},
			want: []string{"Open: yes", "First subfield prefix: Q: ", "Second subfield: hidden"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := New(formatter.WithSettings(tc.settings))
			if diff := cmp.Diff(tc.want, f.SettingsSummary()); diff != "" {
				t.Fatalf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettingsSummary_Translated(t *testing.T) {
	f := New(
		formatter.WithSettings(field.Settings{"open": false}),
		formatter.WithTranslator(stubTranslator{"Open: %open": "Abierto: %open", "no": "no"}),
	)
	if got := f.SettingsSummary()[0]; got != "Abierto: no" {
		t.Fatalf("expected translated summary, got %q", got)
	}
}

func TestViewElements_ClosedScenario(t *testing.T) {
	f := New(formatter.WithSettings(field.Settings{"open": false}))
	elements, err := f.ViewElements(context.Background(), field.NewItemList(field.Item{First: "A", Second: "B"}))
	if err != nil {
		t.Fatalf("view elements: %v", err)
	}

	want := map[int]map[string]any{
		0: {"#title": "A", "#value": "B", "#type": "details", "#open": false},
	}
	if diff := cmp.Diff(want, elements.RenderArray()); diff != "" {
		t.Fatalf("render array mismatch (-want +got):\n%s", diff)
	}
}

func TestViewElements_DefaultScenario(t *testing.T) {
	f := New()
	items := field.NewItemList(
		field.Item{First: "X", Second: "Y"},
		field.Item{First: "P", Second: "Q"},
	)

	elements, err := f.ViewElements(context.Background(), items)
	if err != nil {
		t.Fatalf("view elements: %v", err)
	}

	want := formatter.Elements{
		formatter.DetailsElement{Title: "X", Value: "Y", Type: "details", Open: true},
		formatter.DetailsElement{Title: "P", Value: "Q", Type: "details", Open: true},
	}
	if diff := cmp.Diff(want, elements); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}

	again, err := f.ViewElements(context.Background(), items)
	if err != nil {
		t.Fatalf("view elements (second call): %v", err)
	}
	if diff := cmp.Diff(elements, again); diff != "" {
		t.Fatalf("repeated call differs (-first +second):\n%s", diff)
	}
}

func TestViewElements_RoundTripsValuesUnmodified(t *testing.T) {
	items := field.NewItemList(
		field.Item{First: "  padded  ", Second: "<b>markup</b>"},
		field.Item{First: "", Second: "only second"},
		field.Item{First: "ünïcode", Second: ""},
	)
	elements, err := New().ViewElements(context.Background(), items)
	if err != nil {
		t.Fatalf("view elements: %v", err)
	}
	if elements.Len() != items.Len() {
		t.Fatalf("expected %d elements, got %d", items.Len(), elements.Len())
	}
	for delta, item := range items {
		element, ok := elements.At(delta)
		if !ok {
			t.Fatalf("missing element at delta %d", delta)
		}
		details := element.(formatter.DetailsElement)
		if details.Title != item.First || details.Value != item.Second {
			t.Fatalf("delta %d: got %+v, want first=%q second=%q", delta, details, item.First, item.Second)
		}
	}
}

func TestViewElements_Empty(t *testing.T) {
	elements, err := New().ViewElements(context.Background(), field.ItemList{})
	if err != nil {
		t.Fatalf("expected no error for empty items, got %v", err)
	}
	if elements.Len() != 0 || len(elements.RenderArray()) != 0 {
		t.Fatalf("expected empty output, got %#v", elements)
	}

	elements, err = New().ViewElements(context.Background(), nil)
	if err != nil || elements.Len() != 0 {
		t.Fatalf("expected nil items to behave as empty, got %#v (err=%v)", elements, err)
	}
}

func TestViewElements_RunsPrepareItems(t *testing.T) {
	f := New(formatter.WithSettings(field.Settings{
		"first": map[string]any{"suffix": ":"},
	}))
	elements, err := f.ViewElements(context.Background(), field.NewItemList(field.Item{First: "Term", Second: "Definition"}))
	if err != nil {
		t.Fatalf("view elements: %v", err)
	}
	if got := elements[0].(formatter.DetailsElement).Title; got != "Term:" {
		t.Fatalf("expected prepared title, got %q", got)
	}
}

func TestViewElements_PropagatesPreparerError(t *testing.T) {
	boom := errors.New("access denied")
	f := New(formatter.WithItemPreparer(formatter.ItemPreparerFunc(func(context.Context, field.ItemList) (field.ItemList, error) {
		return nil, boom
	})))

	_, err := f.ViewElements(context.Background(), field.NewItemList(field.Item{First: "A", Second: "B"}))
	if err != boom {
		t.Fatalf("expected preparer error unchanged, got %v", err)
	}
}

func TestWithSettings_DoesNotMutateOriginal(t *testing.T) {
	base := New()
	closed := base.WithSettings(field.Settings{"open": false})

	if !base.Open() {
		t.Fatalf("original formatter changed after WithSettings")
	}
	if closed.Settings().Bool("open", true) {
		t.Fatalf("expected bound formatter to be closed")
	}
}
