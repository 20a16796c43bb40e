package formatter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-doublefield/pkg/field"
)

// SettingsSchema derives an object schema from a formatter's defaults. Each
// default value fixes the type of its key and becomes the schema default.
// Keys the defaults do not mention are allowed.
func SettingsSchema(defaults field.Settings) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		schema.WithProperty(key, valueSchema(defaults[key]))
	}
	return schema
}

func valueSchema(value any) *openapi3.Schema {
	switch v := value.(type) {
	case bool:
		return openapi3.NewBoolSchema().WithDefault(v)
	case string:
		return openapi3.NewStringSchema().WithDefault(v)
	case int, int64, float64:
		return openapi3.NewFloat64Schema().WithDefault(v)
	case field.Settings:
		return SettingsSchema(v)
	case map[string]any:
		return SettingsSchema(field.Settings(v))
	default:
		return &openapi3.Schema{}
	}
}

// ValidateSettings checks settings against schema.
func ValidateSettings(schema *openapi3.Schema, settings field.Settings) error {
	if schema == nil {
		return nil
	}
	value, err := jsonValue(settings)
	if err != nil {
		return fmt.Errorf("formatter: normalise settings: %w", err)
	}
	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("formatter: invalid settings: %w", err)
	}
	return nil
}

// jsonValue converts YAML decoded values (int, map[string]any, ...) into the
// JSON types the schema validator expects.
func jsonValue(settings field.Settings) (any, error) {
	if settings == nil {
		settings = field.Settings{}
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
