package formatter

import "strings"

// Form element type tags understood by hosts.
const (
	ElementCheckbox  = "checkbox"
	ElementTextfield = "textfield"
	ElementFieldset  = "fieldset"
)

// FormElement is one typed entry of a settings form.
type FormElement interface {
	ElementKey() string
	ElementType() string
	// Descriptor returns the host render-array shape of the element.
	Descriptor() map[string]any
}

// Checkbox binds a boolean setting.
type Checkbox struct {
	Key          string
	Title        string
	DefaultValue bool
}

func (c Checkbox) ElementKey() string  { return c.Key }
func (c Checkbox) ElementType() string { return ElementCheckbox }

func (c Checkbox) Descriptor() map[string]any {
	return map[string]any{
		"#type":          ElementCheckbox,
		"#title":         c.Title,
		"#default_value": c.DefaultValue,
	}
}

// Textfield binds a single line string setting.
type Textfield struct {
	Key          string
	Title        string
	DefaultValue string
	Size         int
}

func (t Textfield) ElementKey() string  { return t.Key }
func (t Textfield) ElementType() string { return ElementTextfield }

func (t Textfield) Descriptor() map[string]any {
	out := map[string]any{
		"#type":          ElementTextfield,
		"#title":         t.Title,
		"#default_value": t.DefaultValue,
	}
	if t.Size > 0 {
		out["#size"] = t.Size
	}
	return out
}

// Fieldset groups nested settings under Key.
type Fieldset struct {
	Key      string
	Title    string
	Children Form
}

func (f Fieldset) ElementKey() string  { return f.Key }
func (f Fieldset) ElementType() string { return ElementFieldset }

func (f Fieldset) Descriptor() map[string]any {
	out := f.Children.Descriptor()
	out["#type"] = ElementFieldset
	out["#title"] = f.Title
	return out
}

// Form is an ordered list of settings form elements.
type Form []FormElement

// Merge appends the elements of other whose keys are not already present in f.
// Elements already in f take precedence.
func (f Form) Merge(other Form) Form {
	out := make(Form, 0, len(f)+len(other))
	out = append(out, f...)
	for _, element := range other {
		if element == nil {
			continue
		}
		if _, exists := out.Get(element.ElementKey()); exists {
			continue
		}
		out = append(out, element)
	}
	return out
}

// Get returns the element stored under key.
func (f Form) Get(key string) (FormElement, bool) {
	key = strings.TrimSpace(key)
	for _, element := range f {
		if element != nil && element.ElementKey() == key {
			return element, true
		}
	}
	return nil, false
}

// Keys lists element keys in form order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, element := range f {
		if element == nil {
			continue
		}
		keys = append(keys, element.ElementKey())
	}
	return keys
}

// Descriptor converts the form into the keyed render-array shape hosts expect.
func (f Form) Descriptor() map[string]any {
	out := make(map[string]any, len(f))
	for _, element := range f {
		if element == nil {
			continue
		}
		out[element.ElementKey()] = element.Descriptor()
	}
	return out
}
