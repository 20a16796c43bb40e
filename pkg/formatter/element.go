package formatter

// TypeDetails is the render element type of a collapsible details block.
const TypeDetails = "details"

// Element is one render descriptor produced by ViewElements.
type Element interface {
	ElementType() string
	// RenderArray returns the host render-array shape of the element.
	RenderArray() map[string]any
}

// DetailsElement renders Title as the summary line of a collapsible block
// holding Value.
type DetailsElement struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Type  string `json:"type"`
	Open  bool   `json:"open"`
}

// NewDetailsElement builds a details element with the type tag set.
func NewDetailsElement(title, value string, open bool) DetailsElement {
	return DetailsElement{
		Title: title,
		Value: value,
		Type:  TypeDetails,
		Open:  open,
	}
}

func (d DetailsElement) ElementType() string {
	if d.Type == "" {
		return TypeDetails
	}
	return d.Type
}

func (d DetailsElement) RenderArray() map[string]any {
	return map[string]any{
		"#title": d.Title,
		"#value": d.Value,
		"#type":  d.ElementType(),
		"#open":  d.Open,
	}
}

// Elements holds render elements indexed by delta.
type Elements []Element

// Len reports the number of elements.
func (e Elements) Len() int {
	return len(e)
}

// At returns the element rendered for delta.
func (e Elements) At(delta int) (Element, bool) {
	if delta < 0 || delta >= len(e) {
		return nil, false
	}
	return e[delta], true
}

// RenderArray converts the elements into a delta keyed render array.
func (e Elements) RenderArray() map[int]map[string]any {
	out := make(map[int]map[string]any, len(e))
	for delta, element := range e {
		if element == nil {
			continue
		}
		out[delta] = element.RenderArray()
	}
	return out
}
