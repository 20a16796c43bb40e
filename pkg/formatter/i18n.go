package formatter

import (
	"errors"
	"sort"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("formatter: translator not configured")

// Translator resolves a source string (used as the message key) for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the string used when a translation is
// unavailable. err is ErrMissingTranslator when no translator is configured.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Args maps placeholders (e.g. "%open") to their replacement values.
type Args map[string]string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

// translate resolves source through t and substitutes args. Untranslated
// strings fall back to source, so a nil translator yields the source text.
func translate(locale, source string, args Args, t Translator, onMissing MissingTranslationHandler) string {
	if source == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	params := args.params()
	var msg string
	if t == nil {
		msg = onMissing(locale, source, params, ErrMissingTranslator)
	} else {
		result, err := t.Translate(locale, source, params...)
		if err != nil || strings.TrimSpace(result) == "" {
			msg = onMissing(locale, source, params, err)
		} else {
			msg = result
		}
	}
	return args.apply(msg)
}

func (a Args) params() []any {
	if len(a) == 0 {
		return nil
	}
	return []any{map[string]string(a)}
}

// apply substitutes placeholders, longest first so "%open" is not clobbered
// by a shorter "%o".
func (a Args) apply(msg string) string {
	if len(a) == 0 {
		return msg
	}
	keys := make([]string, 0, len(a))
	for key := range a {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) == len(keys[j]) {
			return keys[i] < keys[j]
		}
		return len(keys[i]) > len(keys[j])
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, a[key])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
