package field

// TypeDoubleField identifies the double field type formatters declare support
// for.
const TypeDoubleField = "double_field"

// Item is one value of a double field.
type Item struct {
	First  string `json:"first" yaml:"first"`
	Second string `json:"second" yaml:"second"`
}

// ItemList is the ordered set of values stored for a field instance. The index
// of an item is its delta.
type ItemList []Item

// NewItemList copies the supplied items into a new list.
func NewItemList(items ...Item) ItemList {
	if len(items) == 0 {
		return ItemList{}
	}
	out := make(ItemList, len(items))
	copy(out, items)
	return out
}

// Len reports the number of items.
func (l ItemList) Len() int {
	return len(l)
}

// Get returns the item stored at delta.
func (l ItemList) Get(delta int) (Item, bool) {
	if delta < 0 || delta >= len(l) {
		return Item{}, false
	}
	return l[delta], true
}

// Each calls fn for every item in delta order.
func (l ItemList) Each(fn func(delta int, item Item)) {
	if fn == nil {
		return
	}
	for delta, item := range l {
		fn(delta, item)
	}
}

// Map returns a new list with fn applied to each item. The receiver is left
// untouched.
func (l ItemList) Map(fn func(delta int, item Item) Item) ItemList {
	out := make(ItemList, len(l))
	for delta, item := range l {
		if fn == nil {
			out[delta] = item
			continue
		}
		out[delta] = fn(delta, item)
	}
	return out
}
