package category

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a registry from the TOML file name in fsys.
// It is not an error if the file does not exist; nil is returned instead.
func Load(fsys fs.FS, name string) (*Registry, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("Cannot read categories file: %w", err)
	}
	var metas map[Key]Meta
	err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(&metas)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse categories file: %w", err)
	}
	r, err := New(metas)
	if err != nil {
		return nil, fmt.Errorf("Invalid categories file: %w", err)
	}
	return r, nil
}
