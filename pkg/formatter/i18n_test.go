package formatter

import (
	"errors"
	"testing"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name       string
		source     string
		args       Args
		translator Translator
		want       string
	}{
		{name: "no translator uses source", source: "Open", want: "Open"},
		{name: "translated", source: "Open", translator: stubTranslator{"Open": "Abierto"}, want: "Abierto"},
		{name: "missing falls back", source: "Open", translator: stubTranslator{}, want: "Open"},
		{
			name:   "placeholders longest first",
			source: "%o and %open",
			args:   Args{"%o": "short", "%open": "long"},
			want:   "short and long",
		},
		{
			name:       "placeholders after translation",
			source:     "Open: %open",
			args:       Args{"%open": "sí"},
			translator: stubTranslator{"Open: %open": "Abierto: %open"},
			want:       "Abierto: sí",
		},
		{name: "empty source", source: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translate("es", tc.source, tc.args, tc.translator, nil); got != tc.want {
				t.Fatalf("translate(%q) = %q, want %q", tc.source, got, tc.want)
			}
		})
	}
}

func TestTranslate_OnMissingReceivesError(t *testing.T) {
	var gotErr error
	onMissing := func(_ string, key string, _ []any, err error) string {
		gotErr = err
		return "[" + key + "]"
	}

	if got := translate("es", "Open", nil, nil, onMissing); got != "[Open]" {
		t.Fatalf("unexpected result %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestTranslatorFunc(t *testing.T) {
	fn := TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		return locale + ":" + key, nil
	})
	b := NewBase(nil, WithTranslator(fn), WithLocale("fr"))
	if got := b.T("Open", nil); got != "fr:Open" {
		t.Fatalf("unexpected translation %q", got)
	}
}
