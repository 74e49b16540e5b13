// Package catalog holds the business's inventory: an immutable, ordered list
// of items with a property map (size/color/brand) used for shop filtering.
package catalog

import "strings"

// FilterValueAll means "no constraint" for a property. Selecting it is
// equivalent to removing the filter.
const FilterValueAll = "all"

type Catalog interface {
	// List returns the full catalog in load order.
	List() []Item

	// Get returns the item with the given id. The boolean is false when the
	// id is unknown; callers treat that as a recoverable data-integrity miss,
	// not an error.
	Get(id string) (Item, bool)

	// FilterByProperties returns the items matching every selected property
	// value. Absent names and the value "all" impose no constraint. An empty
	// result is valid.
	FilterByProperties(selected map[string]string) []Item
}

type staticCatalog struct {
	items []Item
	byID  map[string]Item
}

func New(items []Item) Catalog {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &staticCatalog{items: items, byID: byID}
}

func (c *staticCatalog) List() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *staticCatalog) Get(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

func (c *staticCatalog) FilterByProperties(selected map[string]string) []Item {
	var out []Item
	for _, it := range c.items {
		if matches(it, selected) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it Item, selected map[string]string) bool {
	for name, value := range selected {
		if value == "" || strings.EqualFold(value, FilterValueAll) {
			continue
		}
		if !containsFold(it.Properties[name], value) {
			return false
		}
	}
	return true
}

func containsFold(options []string, value string) bool {
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return true
		}
	}
	return false
}
