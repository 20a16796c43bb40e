package formatter

import (
	"context"
	"errors"

	"github.com/goliatone/go-doublefield/pkg/field"
)

var (
	// ErrFormatterNotFound is returned when a registry lookup misses.
	ErrFormatterNotFound = errors.New("formatter: not found")
	// ErrDuplicateFormatter is returned when an ID is registered twice.
	ErrDuplicateFormatter = errors.New("formatter: already registered")
)

// Definition is the static plugin metadata a formatter is registered under.
type Definition struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	FieldTypes []string `json:"field_types"`
}

// Applies reports whether the formatter declares support for fieldType.
func (d Definition) Applies(fieldType string) bool {
	for _, candidate := range d.FieldTypes {
		if candidate == fieldType {
			return true
		}
	}
	return false
}

// Formatter is the host facing formatter contract.
type Formatter interface {
	Definition() Definition
	// DefaultSettings returns the formatter defaults merged with the Base
	// defaults.
	DefaultSettings() field.Settings
	// Settings returns the bound settings with defaults filled in.
	Settings() field.Settings
	// WithSettings returns a copy of the formatter bound to settings.
	WithSettings(settings field.Settings) Formatter
	SettingsForm(state *FormState) Form
	SettingsSummary() []string
	ViewElements(ctx context.Context, items field.ItemList) (Elements, error)
}

// FormState carries the in-progress settings form between host requests.
// Formatters pass it through untouched.
type FormState struct {
	Values field.Settings
}
