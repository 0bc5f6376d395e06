package site

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed default.html
var defaultTemplate string

// getTemplates returns the current templates.
func (s *Site) getTemplates() *template.Template {
	s.tplMutex.RLock()
	defer s.tplMutex.RUnlock()
	return s.tpl
}

// notelink builds the URL of a note page from its slug.
func (s *Site) notelink(slug string) string {
	return strings.TrimSuffix(s.cfg.NotesPath, "/") + "/" + slug
}

// loadTemplates loads and parses the HTML templates, returning true if custom templates were found.
func (s *Site) loadTemplates() (bool, error) {
	funcMap := template.FuncMap{
		"notelink": s.notelink,
		"now":      time.Now,
	}
	s.tplMutex.Lock()
	defer s.tplMutex.Unlock()
	// Check if we are using default templates
	fi, err := fs.Stat(s.fs, "template")
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		tpl, err := template.New("cryptonotes").Funcs(funcMap).Parse(defaultTemplate)
		if err != nil {
			return false, fmt.Errorf("loadTemplates: %w", err)
		}
		s.tpl = tpl
		return false, nil
	}
	// custom templates may override only some of the defaults
	tpl, err := template.New("cryptonotes").Funcs(funcMap).Parse(defaultTemplate)
	if err != nil {
		return true, fmt.Errorf("loadTemplates: %w", err)
	}
	tpl, err = tpl.ParseFS(s.fs, "template/*.html")
	if err != nil {
		return true, fmt.Errorf("loadTemplates: %w", err)
	}
	s.tpl = tpl
	return true, nil
}

// Reload parses the templates again, returning true if custom templates were found.
func (s *Site) Reload() (bool, error) {
	return s.loadTemplates()
}
