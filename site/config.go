package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the configuration file at the root of the site.
const ConfigFile = "cryptonotes.cfg"

// Config contains configuration data from the cryptonotes.cfg file.
type Config struct {
	Title         string            `toml:"title"`         // Site title shown in the header
	Description   string            `toml:"description"`   // Meta description of the landing page
	Author        string            `toml:"author"`        // Name shown in the footer
	Repository    string            `toml:"repository"`    // Link shown in the header, may be empty
	Catalog       string            `toml:"catalog"`       // Manifest of categorized documents
	Categories    string            `toml:"categories"`    // Category registry file
	NotesPath     string            `toml:"notespath"`     // URL prefix of note pages
	Expires       Duration          `toml:"expires"`       // Expiry of rendered pages
	StaticExpires Duration          `toml:"staticexpires"` // Expiry of static files
	Headers       map[string]string `toml:"headers"`       // Headers added to every response
}

// DefaultConfig returns the configuration used when the site has no cryptonotes.cfg.
func DefaultConfig() Config {
	return Config{
		Title:       "Cryptonotes",
		Description: "My Cryptography notes.",
		Author:      "dani",
		Repository:  "https://github.com/danivilardell/crypto-notes",
		Catalog:     "notes.toml",
		Categories:  "categories.toml",
		NotesPath:   "/notes/",
	}
}

// Validate checks the configuration for missing settings.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Catalog, validation.Required),
		validation.Field(&c.Categories, validation.Required),
		validation.Field(&c.NotesPath, validation.Required),
	)
}

// readConfig returns configuration from the cryptonotes.cfg file layered over
// DefaultConfig. It is not an error if the file does not exist.
func readConfig(fsys fs.FS) (Config, error) {
	cfg := DefaultConfig()
	cfgBytes, err := fs.ReadFile(fsys, ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("Cannot read config file: %w", err)
	}
	err = toml.NewDecoder(bytes.NewReader(cfgBytes)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("Cannot parse config file: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return cfg, fmt.Errorf("Invalid config file: %w", err)
	}
	return cfg, nil
}
