package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the key used to infer locale from template data when
	// callers pass a map instead of a raw string.
	LocaleKey string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName  string
	OnMissing formatter.MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers suitable for injecting into the template
// engine (see gotemplate.WithTemplateFunc).
//
//	translate(localeSrc, key, ...args) string
//
// localeSrc can be a locale string (e.g. "en-US") or a map holding the locale
// under cfg.LocaleKey.
func TemplateI18nFuncs(t formatter.Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}

	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = func(_ string, key string, _ []any, _ error) string { return key }
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc, localeKey)
			if t == nil {
				return onMissing(locale, key, params, formatter.ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]string:
		return data[key]
	case map[string]any:
		v, ok := data[key]
		if !ok || v == nil {
			return ""
		}
		if str, ok := v.(string); ok {
			return str
		}
		return strings.TrimSpace(fmt.Sprint(v))
	default:
		return ""
	}
}
