package formatter

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-doublefield/pkg/field"
)

// Option configures a formatter at construction time.
type Option func(*config)

type config struct {
	settings   field.Settings
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
	preparers  []ItemPreparer
	logger     *zap.SugaredLogger
}

// WithSettings binds stored settings. Missing keys fall back to defaults.
func WithSettings(settings field.Settings) Option {
	return func(cfg *config) {
		cfg.settings = settings.Clone()
	}
}

// WithTranslator injects the translator used for labels and summaries.
func WithTranslator(t Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithLocale selects the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(cfg *config) {
		cfg.locale = locale
	}
}

// WithMissingTranslationHandler overrides the fallback used when a string has
// no translation.
func WithMissingTranslationHandler(fn MissingTranslationHandler) Option {
	return func(cfg *config) {
		cfg.onMissing = fn
	}
}

// WithItemPreparer appends a pre-pass that runs after the subfield settings
// have been applied, in registration order.
func WithItemPreparer(p ItemPreparer) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.preparers = append(cfg.preparers, p)
		}
	}
}

// WithLogger sets the logger. Formatters log nothing when it is nil.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options ...Option) config {
	cfg := config{logger: zap.NewNop().Sugar()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
