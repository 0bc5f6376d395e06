/*
Package category holds the registry of note categories shown on the landing page.

The registry is a fixed table mapping a category key, such as "zklearning", to the
metadata used to display it:

	Name         Type     Description
	-----------  ------   -----------------------------------------
	title        string   Heading shown above the category
	description  string   Foreword shown under the heading
	order        int      Position on the page, ascending

The table is decided at deployment time. It is either the built-in Default table
or a "categories.toml" file at the root of the site:

	[zklearning]
	title = "Zero-Knowledge"
	description = "Notes on zero-knowledge proofs."
	order = 1

A Registry is never modified after it is created, so it may be read from many
goroutines at once.
*/
package category

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Key identifies a category, for example a topic slug.
type Key string

// Meta is the display metadata of a category.
type Meta struct {
	Title       string `toml:"title"`       // Heading of the category
	Description string `toml:"description"` // Foreword shown under the heading
	Order       int    `toml:"order"`       // Sort position; need not be unique
}

// Validate checks that the metadata can be displayed.
func (m Meta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
	)
}

// ErrNotFound is wrapped by every LookupError.
var ErrNotFound = errors.New("category not registered")

// LookupError reports a category key that has no registry entry.
type LookupError struct {
	Key Key
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("category %q: %s", string(e.Key), ErrNotFound)
}

// Unwrap returns ErrNotFound.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// Registry is a read-only table of category metadata.
type Registry struct {
	metas map[Key]Meta
}

// New returns a Registry holding a copy of metas.
func New(metas map[Key]Meta) (*Registry, error) {
	r := Registry{metas: make(map[Key]Meta, len(metas))}
	for k, m := range metas {
		if k == "" {
			return nil, errors.New("category: empty key")
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("category %q: %w", string(k), err)
		}
		r.metas[k] = m
	}
	return &r, nil
}

// MetaOf returns the metadata registered for key, or a *LookupError.
// A nil Registry has no categories.
func (r *Registry) MetaOf(key Key) (Meta, error) {
	if r == nil {
		return Meta{}, &LookupError{Key: key}
	}
	m, ok := r.metas[key]
	if !ok {
		return Meta{}, &LookupError{Key: key}
	}
	return m, nil
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.metas)
}

// Keys returns the registered keys by order, then by key.
func (r *Registry) Keys() []Key {
	if r == nil {
		return nil
	}
	keys := make([]Key, 0, len(r.metas))
	for k := range r.metas {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := r.metas[keys[i]].Order, r.metas[keys[j]].Order
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
	return keys
}
