package display

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// DefaultViewMode is used when a display entry omits view_mode.
const DefaultViewMode = "default"

// ErrDisplayNotFound is returned when no display is configured for a key.
var ErrDisplayNotFound = errors.New("display: not found")

// Key identifies one field display.
type Key struct {
	Entity   string
	Bundle   string
	Field    string
	ViewMode string
}

// String renders the key as entity.bundle.field.view_mode.
func (k Key) String() string {
	mode := k.ViewMode
	if mode == "" {
		mode = DefaultViewMode
	}
	return strings.Join([]string{k.Entity, k.Bundle, k.Field, mode}, ".")
}

// ParseKey parses entity.bundle.field[.view_mode].
func ParseKey(raw string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) < 3 || len(parts) > 4 {
		return Key{}, fmt.Errorf("display: invalid key %q (want entity.bundle.field[.view_mode])", raw)
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return Key{}, fmt.Errorf("display: invalid key %q (empty segment)", raw)
		}
	}
	key := Key{Entity: parts[0], Bundle: parts[1], Field: parts[2], ViewMode: DefaultViewMode}
	if len(parts) == 4 {
		key.ViewMode = parts[3]
	}
	return key, nil
}

// Display binds a formatter and its settings to a field display.
type Display struct {
	Key       Key
	Formatter string
	Settings  field.Settings
	// Source is the file the display was loaded from, if any.
	Source string
}

type document struct {
	Displays []entry `json:"displays" yaml:"displays"`
}

type entry struct {
	Entity   string         `json:"entity" yaml:"entity"`
	Bundle   string         `json:"bundle" yaml:"bundle"`
	Field    string         `json:"field" yaml:"field"`
	ViewMode string         `json:"view_mode,omitempty" yaml:"view_mode,omitempty"`
	Type     string         `json:"type" yaml:"type"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Store holds display configuration keyed by Key.String().
type Store struct {
	mu       sync.RWMutex
	displays map[string]Display
	registry *formatter.Registry
}

// NewStore creates an empty store. When registry is non-nil every display
// added to the store is checked against it.
func NewStore(registry *formatter.Registry) *Store {
	return &Store{
		displays: make(map[string]Display),
		registry: registry,
	}
}

// LoadFS walks fsys and loads every JSON/YAML display file.
func LoadFS(fsys fs.FS, registry *formatter.Registry) (*Store, error) {
	store := NewStore(registry)
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isConfigFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("display: read %s: %w", path, err)
		}
		return store.load(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadPath loads a single file or a directory of display files.
func LoadPath(path string, registry *formatter.Registry) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("display: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path), registry)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("display: read %s: %w", path, err)
	}
	store := NewStore(registry)
	if err := store.load(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) load(data []byte, path string) error {
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("display: parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("display: parse %s: %w", path, err)
		}
	}

	for i, e := range doc.Displays {
		key := Key{Entity: e.Entity, Bundle: e.Bundle, Field: e.Field, ViewMode: e.ViewMode}
		if _, err := ParseKey(key.String()); err != nil {
			return fmt.Errorf("display: %s entry %d: %w", path, i, err)
		}
		if _, exists := s.Get(key); exists {
			return fmt.Errorf("display: duplicate display %q (file %s)", key, path)
		}
		display := Display{
			Key:       key,
			Formatter: strings.TrimSpace(e.Type),
			Settings:  field.Settings(e.Settings),
			Source:    path,
		}
		if err := s.Set(display); err != nil {
			return fmt.Errorf("display: %s: %w", path, err)
		}
	}
	return nil
}

// Set adds or replaces a display after validating it.
func (s *Store) Set(d Display) error {
	if d.Key.ViewMode == "" {
		d.Key.ViewMode = DefaultViewMode
	}
	if d.Formatter == "" {
		return fmt.Errorf("display %q: formatter type is required", d.Key)
	}
	if s.registry != nil {
		f, err := s.registry.Get(d.Formatter)
		if err != nil {
			return fmt.Errorf("display %q: %w", d.Key, err)
		}
		schema := formatter.SettingsSchema(f.DefaultSettings())
		if err := formatter.ValidateSettings(schema, d.Settings); err != nil {
			return fmt.Errorf("display %q: %w", d.Key, err)
		}
	}
	d.Settings = d.Settings.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays[d.Key.String()] = d
	return nil
}

// Get returns the display stored for key.
func (s *Store) Get(key Key) (Display, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.displays[key.String()]
	if !ok {
		return Display{}, false
	}
	d.Settings = d.Settings.Clone()
	return d, true
}

// Keys returns the configured display keys sorted.
func (s *Store) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]Key, 0, len(s.displays))
	for _, d := range s.displays {
		keys = append(keys, d.Key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Formatter returns the registered formatter for key bound to the stored
// settings.
func (s *Store) Formatter(key Key, registry *formatter.Registry) (formatter.Formatter, error) {
	d, ok := s.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDisplayNotFound, key)
	}
	if registry == nil {
		registry = s.registry
	}
	if registry == nil {
		return nil, errors.New("display: formatter registry is required")
	}
	f, err := registry.Get(d.Formatter)
	if err != nil {
		return nil, err
	}
	return f.WithSettings(d.Settings), nil
}

// Save writes every display as YAML, sorted by key.
func (s *Store) Save(w io.Writer) error {
	doc := document{}
	for _, key := range s.Keys() {
		d, _ := s.Get(key)
		doc.Displays = append(doc.Displays, entry{
			Entity:   key.Entity,
			Bundle:   key.Bundle,
			Field:    key.Field,
			ViewMode: key.ViewMode,
			Type:     d.Formatter,
			Settings: map[string]any(d.Settings),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("display: encode: %w", err)
	}
	return enc.Close()
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
