// Package details renders each double field item as a collapsible details
// block: the first subfield becomes the summary line, the second the body.
package details

import (
	"context"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// ID is the plugin identifier the formatter is registered under.
const ID = "details"

// settingOpen controls whether rendered blocks start expanded.
const settingOpen = "open"

// Formatter is the "details" double field formatter.
type Formatter struct {
	formatter.Base
}

var _ formatter.Formatter = (*Formatter)(nil)

// New constructs the formatter.
func New(options ...formatter.Option) *Formatter {
	return &Formatter{Base: formatter.NewBase(DefaultSettings(), options...)}
}

// DefaultSettings returns {open: true} plus the Base defaults.
func DefaultSettings() field.Settings {
	return field.Settings{settingOpen: true}.Merge(formatter.DefaultSettings())
}

func (f *Formatter) Definition() formatter.Definition {
	return formatter.Definition{
		ID:         ID,
		Label:      f.T("Details", nil),
		FieldTypes: []string{field.TypeDoubleField},
	}
}

func (f *Formatter) WithSettings(settings field.Settings) formatter.Formatter {
	return &Formatter{Base: f.Base.Bind(settings)}
}

// Open reports the configured initial state. Malformed values count as the
// default.
func (f *Formatter) Open() bool {
	return f.Settings().Bool(settingOpen, true)
}

func (f *Formatter) SettingsForm(state *formatter.FormState) formatter.Form {
	form := formatter.Form{
		formatter.Checkbox{
			Key:          settingOpen,
			Title:        f.T("Open", nil),
			DefaultValue: f.Open(),
		},
	}
	return form.Merge(f.Base.SettingsForm(state))
}

func (f *Formatter) SettingsSummary() []string {
	state := f.T("no", nil)
	if f.Open() {
		state = f.T("yes", nil)
	}
	summary := []string{f.T("Open: %open", formatter.Args{"%open": state})}
	return append(summary, f.Base.SettingsSummary()...)
}

func (f *Formatter) ViewElements(ctx context.Context, items field.ItemList) (formatter.Elements, error) {
	prepared, err := f.PrepareItems(ctx, items)
	if err != nil {
		return nil, err
	}

	open := f.Open()
	elements := make(formatter.Elements, 0, prepared.Len())
	prepared.Each(func(_ int, item field.Item) {
		elements = append(elements, formatter.NewDetailsElement(item.First, item.Second, open))
	})

	f.Logger().Debugw("details: view elements", "items", prepared.Len(), "open", open)
	return elements, nil
}
