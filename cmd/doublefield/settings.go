package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// parseSets turns repeated key=value flags into settings. Dotted keys address
// nested settings (first.prefix=Q:). Values take the type of the matching
// entry in defaults; unknown keys stay strings.
func parseSets(pairs []string, defaults field.Settings) (field.Settings, error) {
	out := field.Settings{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", pair)
		}

		path := strings.Split(key, ".")
		target := map[string]any(out)
		scope := defaults
		for _, segment := range path[:len(path)-1] {
			next, ok := target[segment].(map[string]any)
			if !ok {
				next = map[string]any{}
				target[segment] = next
			}
			target = next
			scope = scope.Sub(segment)
		}
		last := path[len(path)-1]
		typed, err := coerceValue(value, scope[last])
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
		target[last] = typed
	}
	return out, nil
}

// coerceValue converts raw to the type of def. Booleans accept the same
// spellings a submitted checkbox produces.
func coerceValue(raw string, def any) (any, error) {
	switch def.(type) {
	case bool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", raw)
	case int, int64, float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// resolveFormatter returns the formatter bound to a stored display when key
// is given, otherwise the formatter id bound to sets.
func resolveFormatter(opts *rootOptions, registry *formatter.Registry, displayKey, id string, sets []string) (formatter.Formatter, error) {
	if displayKey != "" {
		store, err := opts.displays(registry)
		if err != nil {
			return nil, err
		}
		key, err := display.ParseKey(displayKey)
		if err != nil {
			return nil, err
		}
		return store.Formatter(key, registry)
	}

	f, err := registry.Get(id)
	if err != nil {
		return nil, err
	}
	settings, err := parseSets(sets, f.DefaultSettings())
	if err != nil {
		return nil, err
	}
	if err := formatter.ValidateSettings(formatter.SettingsSchema(f.DefaultSettings()), settings); err != nil {
		return nil, err
	}
	return f.WithSettings(settings), nil
}
