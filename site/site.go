/*
Package site renders the pages of a notes blog from a site folder given as a fs.FS.

The landing page lists categories of notes. Each category shows its title, a
separator, its description, and a preview of every note in it. Categories come
from the registry (see package category) and the notes in each category come from
a catalog manifest written by the document build (see package catalog).

A special file "cryptonotes.cfg" at the root holds settings in TOML format:

	Name           Type               Description
	-------------  -----------------  -----------------------------------------
	title          string             Site title shown in the header
	description    string             Meta description of the landing page
	author         string             Name shown in the footer
	repository     string             Repository link shown in the header
	catalog        string             Manifest of notes (default "notes.toml")
	categories     string             Category registry (default "categories.toml")
	notespath      string             URL prefix of note pages (default "/notes/")
	expires        duration           Expiry of rendered pages, like "5m"
	staticexpires  duration           Expiry of static files
	headers        table of strings   Headers added to every response

Templates

A special folder "template" at the root holds HTML templates should you want to
customize. Otherwise the built-in templates are used. The following templates are
expected:

	header   Opening of the page shell, with the site title linking to "/"
	footer   Closing of the page shell
	index    The landing page
	preview  One note on the landing page, given a catalog.Document
	error    Error pages, given a status and message

Page templates receive the configuration as .Site, the page title as .Title, the
ordered categories as .Sections, and for errors .Status and .Message. The
following helper functions are available:

	notelink(slug string) string
		URL of the note page with the given slug
	now() time.Time
		Current time
*/
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/ancientlore/cryptonotes/aggregate"
	"github.com/ancientlore/cryptonotes/catalog"
	"github.com/ancientlore/cryptonotes/category"
)

// Site renders the pages of a notes blog.
type Site struct {
	fs       fs.FS
	cfg      Config
	registry *category.Registry
	tpl      *template.Template
	tplMutex sync.RWMutex
}

// New returns a Site for the folder siteFS. The category registry is read from
// the configured categories file, falling back to category.Default.
func New(siteFS fs.FS) (*Site, error) {
	cfg, err := readConfig(siteFS)
	if err != nil {
		return nil, err
	}
	reg, err := category.Load(siteFS, cfg.Categories)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = category.Default()
	}
	return NewWithRegistry(siteFS, cfg, reg)
}

// NewWithRegistry returns a Site using the given configuration and registry.
func NewWithRegistry(siteFS fs.FS, cfg Config, reg *category.Registry) (*Site, error) {
	var s = Site{
		fs:       siteFS,
		cfg:      cfg,
		registry: reg,
	}
	_, err := s.loadTemplates()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Config returns the site configuration.
func (s *Site) Config() Config {
	return s.cfg
}

// Registry returns the category registry.
func (s *Site) Registry() *category.Registry {
	return s.registry
}

// Loader returns a loader that reads the configured catalog manifest.
func (s *Site) Loader() catalog.Loader {
	return catalog.FileLoader{FS: s.fs, Name: s.cfg.Catalog}
}

// data is what is passed to page templates.
type data struct {
	Site     Config              // site configuration
	Title    string              // page title
	Sections []aggregate.Section // ordered categories of the landing page
	Status   int                 // HTTP status of error pages
	Message  string              // message of error pages
}

// RenderIndex writes the landing page listing docs. If docs holds a category
// that is not registered, nothing is written and the *category.LookupError is returned.
func (s *Site) RenderIndex(w io.Writer, docs *catalog.Categorized) error {
	sections, err := aggregate.Categories(s.registry, docs)
	if err != nil {
		return fmt.Errorf("RenderIndex: %w", err)
	}
	d := data{
		Site:     s.cfg,
		Title:    s.cfg.Title,
		Sections: sections,
	}
	return s.execute(w, "index", d)
}

// RenderError writes the error page for the given HTTP status.
func (s *Site) RenderError(w io.Writer, status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	d := data{
		Site:    s.cfg,
		Title:   fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Status:  status,
		Message: message,
	}
	return s.execute(w, "error", d)
}

// execute renders into a buffer first so that a failing template writes nothing.
func (s *Site) execute(w io.Writer, name string, d data) error {
	var buf bytes.Buffer
	err := s.getTemplates().ExecuteTemplate(&buf, name, d)
	if err != nil {
		return fmt.Errorf("execute %q: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}
