package catalog

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/ancientlore/cryptonotes/category"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

// A Loader supplies the categorized documents before a page is rendered.
type Loader interface {
	Load() (*Categorized, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() (*Categorized, error)

// Load calls f.
func (f LoaderFunc) Load() (*Categorized, error) {
	return f()
}

// FileLoader reads the manifest written by the document build into the site root.
//
// The manifest is TOML. Categories and their documents appear in display order:
//
//	[[category]]
//	key = "zklearning"
//
//	  [[category.document]]
//	  slug = "zklearning/sumcheck"
//	  title = "The Sumcheck Protocol"
//	  date = "2023-02-11"
type FileLoader struct {
	FS   fs.FS
	Name string
}

// Load reads and decodes the manifest. It is read again on every call.
func (l FileLoader) Load() (*Categorized, error) {
	b, err := fs.ReadFile(l.FS, l.Name)
	if err != nil {
		return nil, fmt.Errorf("Cannot read catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse catalog %q: %w", l.Name, err)
	}
	return c, nil
}

type manifest struct {
	Categories []manifestCategory `toml:"category"`
}

type manifestCategory struct {
	Key       string             `toml:"key"`
	Documents []manifestDocument `toml:"document"`
}

func (mc manifestCategory) Validate() error {
	return validation.ValidateStruct(&mc,
		validation.Field(&mc.Key, validation.Required),
		validation.Field(&mc.Documents),
	)
}

type manifestDocument struct {
	Slug        string `toml:"slug"`
	Title       string `toml:"title"`
	Date        string `toml:"date"`
	Description string `toml:"description"`
}

func (md manifestDocument) Validate() error {
	return validation.ValidateStruct(&md,
		validation.Field(&md.Slug, validation.Required),
	)
}

// Parse decodes a manifest. A category listed twice has its documents appended
// to the first listing.
func Parse(b []byte) (*Categorized, error) {
	var m manifest
	err := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(&m)
	if err != nil {
		return nil, err
	}
	c := New()
	for i, mc := range m.Categories {
		if err := mc.Validate(); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		docs := make([]Document, len(mc.Documents))
		for j, md := range mc.Documents {
			docs[j] = Document{
				Header: Header{
					Title:       md.Title,
					Date:        md.Date,
					Description: md.Description,
				},
				Slug: md.Slug,
			}
		}
		c.Add(category.Key(mc.Key), docs...)
	}
	return c, nil
}
