// Package catalog holds the document headers that the landing page lists, grouped by category.
package catalog

import (
	"slices"

	"github.com/ancientlore/cryptonotes/category"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Header describes one note without its body.
type Header struct {
	Title       string `toml:"title"`       // Title of the note
	Date        string `toml:"date"`        // Date as written by the author
	Description string `toml:"description"` // Short summary, may be empty
}

// Document is a note header with the slug of its page.
type Document struct {
	Header Header
	Slug   string // Path segment of the note page, passed through as-is
}

// Categorized maps category keys to documents. Keys keep the order in which
// they were first added, and documents keep the order in which they were added.
type Categorized struct {
	m *orderedmap.OrderedMap[category.Key, []Document]
}

// New returns an empty Categorized.
func New() *Categorized {
	return &Categorized{m: orderedmap.New[category.Key, []Document]()}
}

// Add appends docs to the category key. A key added again keeps its first position.
func (c *Categorized) Add(key category.Key, docs ...Document) {
	cur, _ := c.m.Get(key)
	c.m.Set(key, append(slices.Clip(cur), docs...))
}

// Documents returns a copy of the documents of key.
func (c *Categorized) Documents(key category.Key) ([]Document, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.m.Get(key)
	return slices.Clone(d), ok
}

// Keys returns the category keys in insertion order.
func (c *Categorized) Keys() []category.Key {
	if c == nil {
		return nil
	}
	keys := make([]category.Key, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of categories.
func (c *Categorized) Len() int {
	if c == nil {
		return 0
	}
	return c.m.Len()
}
