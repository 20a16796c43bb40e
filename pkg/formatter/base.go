package formatter

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-doublefield/pkg/field"
)

// Subfield keys shared by every double field formatter.
const (
	SubfieldFirst  = "first"
	SubfieldSecond = "second"
)

var subfieldTitles = map[string]string{
	SubfieldFirst:  "First subfield",
	SubfieldSecond: "Second subfield",
}

// ItemPreparer is an extra PrepareItems stage, e.g. access filtering. Errors
// abort ViewElements and are returned unchanged.
type ItemPreparer interface {
	PrepareItems(ctx context.Context, items field.ItemList) (field.ItemList, error)
}

// ItemPreparerFunc adapts a function to ItemPreparer.
type ItemPreparerFunc func(ctx context.Context, items field.ItemList) (field.ItemList, error)

func (fn ItemPreparerFunc) PrepareItems(ctx context.Context, items field.ItemList) (field.ItemList, error) {
	return fn(ctx, items)
}

// DefaultSettings returns the Base defaults: per subfield hidden, prefix and
// suffix.
func DefaultSettings() field.Settings {
	return field.Settings{
		SubfieldFirst:  subfieldDefaults(),
		SubfieldSecond: subfieldDefaults(),
	}
}

func subfieldDefaults() map[string]any {
	return map[string]any{
		"hidden": false,
		"prefix": "",
		"suffix": "",
	}
}

// Base implements the behaviour shared by double field formatters. Concrete
// formatters embed it and pass their merged defaults to NewBase.
type Base struct {
	defaults   field.Settings
	settings   field.Settings
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
	preparers  []ItemPreparer
	logger     *zap.SugaredLogger
}

// NewBase builds a Base for a formatter whose complete defaults are defaults.
func NewBase(defaults field.Settings, options ...Option) Base {
	cfg := newConfig(options...)
	return Base{
		defaults:   defaults.Merge(DefaultSettings()),
		settings:   cfg.settings,
		translator: cfg.translator,
		locale:     cfg.locale,
		onMissing:  cfg.onMissing,
		preparers:  cfg.preparers,
		logger:     cfg.logger,
	}
}

// DefaultSettings returns the defaults the Base was constructed with.
func (b Base) DefaultSettings() field.Settings {
	return b.defaults.Clone()
}

// Settings returns the bound settings with defaults filled in.
func (b Base) Settings() field.Settings {
	return b.settings.Merge(b.defaults)
}

// Setting returns a single merged setting.
func (b Base) Setting(key string) any {
	return b.Settings()[key]
}

// Bind returns a copy of b holding settings.
func (b Base) Bind(settings field.Settings) Base {
	b.settings = settings.Clone()
	return b
}

// Logger returns the configured logger.
func (b Base) Logger() *zap.SugaredLogger {
	return b.logger
}

// T translates source for the configured locale and substitutes args.
func (b Base) T(source string, args Args) string {
	return translate(b.locale, source, args, b.translator, b.onMissing)
}

// SettingsForm returns one fieldset per subfield.
func (b Base) SettingsForm(_ *FormState) Form {
	settings := b.Settings()
	form := make(Form, 0, 2)
	for _, key := range []string{SubfieldFirst, SubfieldSecond} {
		sub := settings.Sub(key)
		form = append(form, Fieldset{
			Key:   key,
			Title: b.T(subfieldTitles[key], nil),
			Children: Form{
				Checkbox{Key: "hidden", Title: b.T("Hidden", nil), DefaultValue: sub.Bool("hidden", false)},
				Textfield{Key: "prefix", Title: b.T("Prefix", nil), DefaultValue: sub.String("prefix", ""), Size: 30},
				Textfield{Key: "suffix", Title: b.T("Suffix", nil), DefaultValue: sub.String("suffix", ""), Size: 30},
			},
		})
	}
	return form
}

// SettingsSummary describes subfields whose settings differ from the
// defaults, first subfield first.
func (b Base) SettingsSummary() []string {
	settings := b.Settings()
	var summary []string
	for _, key := range []string{SubfieldFirst, SubfieldSecond} {
		sub := settings.Sub(key)
		title := b.T(subfieldTitles[key], nil)
		if sub.Bool("hidden", false) {
			summary = append(summary, b.T("%subfield: hidden", Args{"%subfield": title}))
			continue
		}
		if prefix := sub.String("prefix", ""); prefix != "" {
			summary = append(summary, b.T("%subfield prefix: %prefix", Args{"%subfield": title, "%prefix": prefix}))
		}
		if suffix := sub.String("suffix", ""); suffix != "" {
			summary = append(summary, b.T("%subfield suffix: %suffix", Args{"%subfield": title, "%suffix": suffix}))
		}
	}
	return summary
}

// PrepareItems applies the subfield settings to a copy of items, then runs any
// configured preparers in order. It never reorders items.
func (b Base) PrepareItems(ctx context.Context, items field.ItemList) (field.ItemList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings := b.Settings()
	first := settings.Sub(SubfieldFirst)
	second := settings.Sub(SubfieldSecond)

	prepared := items.Map(func(_ int, item field.Item) field.Item {
		return field.Item{
			First:  applySubfield(item.First, first),
			Second: applySubfield(item.Second, second),
		}
	})

	for _, p := range b.preparers {
		next, err := p.PrepareItems(ctx, prepared)
		if err != nil {
			return nil, err
		}
		prepared = next
	}
	return prepared, nil
}

func applySubfield(value string, settings field.Settings) string {
	if settings.Bool("hidden", false) {
		return ""
	}
	if value == "" {
		return value
	}
	return settings.String("prefix", "") + value + settings.String("suffix", "")
}
