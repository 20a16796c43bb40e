package formatter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type entry struct {
	formatter Formatter
	priority  int
	order     int
}

// Registry stores formatters by ID and picks the default formatter for a
// field type. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]entry),
	}
}

// Register adds a formatter with priority 0.
func (r *Registry) Register(f Formatter) error {
	return r.RegisterWithPriority(f, 0)
}

// RegisterWithPriority adds a formatter by its Definition().ID. Duplicate IDs
// return ErrDuplicateFormatter.
func (r *Registry) RegisterWithPriority(f Formatter, priority int) error {
	if f == nil {
		return fmt.Errorf("formatter: formatter is required")
	}
	id := strings.TrimSpace(f.Definition().ID)
	if id == "" {
		return fmt.Errorf("formatter: formatter id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFormatter, id)
	}
	r.formatters[id] = entry{formatter: f, priority: priority, order: len(r.formatters)}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(f Formatter) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Get retrieves a formatter by ID.
func (r *Registry) Get(id string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.formatters[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormatterNotFound, id)
	}
	return e.formatter, nil
}

// Has reports whether a formatter is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.formatters[strings.TrimSpace(id)]
	return ok
}

// List returns the definitions of every registered formatter sorted by ID.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.formatters))
	for _, e := range r.formatters {
		defs = append(defs, e.formatter.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// ForFieldType returns the definitions applicable to fieldType, sorted by ID.
func (r *Registry) ForFieldType(fieldType string) []Definition {
	out := []Definition{}
	for _, def := range r.List() {
		if def.Applies(fieldType) {
			out = append(out, def)
		}
	}
	return out
}

// Resolve returns the default formatter for fieldType.
func (r *Registry) Resolve(fieldType string) (Formatter, bool) {
	r.mu.RLock()
	candidates := make([]entry, 0, len(r.formatters))
	for _, e := range r.formatters {
		if e.formatter.Definition().Applies(fieldType) {
			candidates = append(candidates, e)
		}
	}
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority == candidates[j].priority {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].priority > candidates[j].priority
	})
	return candidates[0].formatter, true
}
