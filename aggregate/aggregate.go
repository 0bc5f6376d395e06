// Package aggregate joins categorized documents with the category registry and
// orders them for display.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/ancientlore/cryptonotes/catalog"
	"github.com/ancientlore/cryptonotes/category"
)

// Section is one category as it appears on the landing page.
type Section struct {
	Key       category.Key
	Meta      category.Meta
	Documents []catalog.Document
}

// Categories returns one Section per key of docs, sorted by Meta.Order.
// Keys with the same order keep the order they have in docs, and the documents
// of each key keep their order.
//
// A key missing from reg fails the whole call with a *category.LookupError.
func Categories(reg *category.Registry, docs *catalog.Categorized) ([]Section, error) {
	keys := docs.Keys()
	sections := make([]Section, 0, len(keys))
	for _, k := range keys {
		meta, err := reg.MetaOf(k)
		if err != nil {
			return nil, fmt.Errorf("aggregate: %w", err)
		}
		d, _ := docs.Documents(k)
		sections = append(sections, Section{
			Key:       k,
			Meta:      meta,
			Documents: d,
		})
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Meta.Order < sections[j].Meta.Order
	})
	return sections, nil
}
