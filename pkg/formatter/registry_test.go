package formatter

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doublefield/pkg/field"
)

type stubFormatter struct {
	Base
	def Definition
}

func newStub(id string, fieldTypes ...string) *stubFormatter {
	return &stubFormatter{
		Base: NewBase(nil),
		def:  Definition{ID: id, Label: id, FieldTypes: fieldTypes},
	}
}

func (s *stubFormatter) Definition() Definition { return s.def }

func (s *stubFormatter) WithSettings(settings field.Settings) Formatter {
	return &stubFormatter{Base: s.Bind(settings), def: s.def}
}

func (s *stubFormatter) ViewElements(context.Context, field.ItemList) (Elements, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(newStub("details", field.TypeDoubleField))

	got, err := reg.Get("details")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Definition().ID != "details" {
		t.Fatalf("unexpected formatter %+v", got.Definition())
	}
	if !reg.Has("details") || reg.Has("table") {
		t.Fatalf("unexpected Has results")
	}

	if _, err := reg.Get("table"); !errors.Is(err, ErrFormatterNotFound) {
		t.Fatalf("expected ErrFormatterNotFound, got %v", err)
	}
}

func TestRegistry_RejectsDuplicatesAndBlankIDs(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(newStub("details")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(newStub("details")); !errors.Is(err, ErrDuplicateFormatter) {
		t.Fatalf("expected ErrDuplicateFormatter, got %v", err)
	}
	if err := reg.Register(newStub("  ")); err == nil {
		t.Fatalf("expected error for blank id")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected error for nil formatter")
	}
}

func TestRegistry_ListAndForFieldType(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(newStub("table", field.TypeDoubleField))
	reg.MustRegister(newStub("details", field.TypeDoubleField))
	reg.MustRegister(newStub("plain", "string"))

	var ids []string
	for _, def := range reg.List() {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"details", "plain", "table"}, ids); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	ids = ids[:0]
	for _, def := range reg.ForFieldType(field.TypeDoubleField) {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"details", "table"}, ids); diff != "" {
		t.Fatalf("field type filter mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ResolvePriorityThenOrder(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(newStub("table", field.TypeDoubleField))
	reg.MustRegister(newStub("inline", field.TypeDoubleField))

	got, ok := reg.Resolve(field.TypeDoubleField)
	if !ok || got.Definition().ID != "table" {
		t.Fatalf("expected registration order tie break, got %v (ok=%v)", got, ok)
	}

	if err := reg.RegisterWithPriority(newStub("details", field.TypeDoubleField), 10); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, ok = reg.Resolve(field.TypeDoubleField)
	if !ok || got.Definition().ID != "details" {
		t.Fatalf("expected highest priority to win, got %v (ok=%v)", got, ok)
	}

	if _, ok := reg.Resolve("string"); ok {
		t.Fatalf("expected no formatter for unsupported field type")
	}
}
