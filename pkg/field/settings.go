package field

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings is the per-display configuration persisted by the host for a field
// instance. Values follow JSON/YAML decoding rules (bool, string, float64,
// map[string]any, ...).
type Settings map[string]any

// Clone returns a deep copy of nested maps so callers can modify the result
// without affecting the source.
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	out := make(Settings, len(s))
	for key, value := range s {
		out[key] = cloneValue(value)
	}
	return out
}

// Merge returns a copy of s with every key from defaults that s does not
// already define. Nested maps are merged the same way, so a partially
// configured subfield keeps the remaining defaults.
func (s Settings) Merge(defaults Settings) Settings {
	out := s.Clone()
	for key, def := range defaults {
		current, ok := out[key]
		if !ok {
			out[key] = cloneValue(def)
			continue
		}
		curMap, curOK := asMap(current)
		defMap, defOK := asMap(def)
		if curOK && defOK {
			out[key] = map[string]any(Settings(curMap).Merge(Settings(defMap)))
		}
	}
	return out
}

// Bool reads key as a boolean. Strings such as "true", "1" or "no" are
// coerced; anything else yields fallback.
func (s Settings) Bool(key string, fallback bool) bool {
	value, ok := s[key]
	if !ok || value == nil {
		return fallback
	}
	return coerceBool(value, fallback)
}

// String reads key as a string, falling back when missing or not scalar.
func (s Settings) String(key, fallback string) string {
	value, ok := s[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int64, float64:
		return fmt.Sprint(v)
	default:
		return fallback
	}
}

// Sub returns the nested settings stored under key, or an empty map.
func (s Settings) Sub(key string) Settings {
	value, ok := s[key]
	if !ok {
		return Settings{}
	}
	m, ok := asMap(value)
	if !ok {
		return Settings{}
	}
	return Settings(m)
}

func coerceBool(value any, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "on":
			return true
		case "no", "off", "":
			return false
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case Settings:
		return map[string]any(v), true
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func cloneValue(value any) any {
	m, ok := asMap(value)
	if !ok {
		return value
	}
	out := make(map[string]any, len(m))
	for key, val := range m {
		out[key] = cloneValue(val)
	}
	return out
}
