/*
Package assets serves the static files of a site, such as style sheets and images,
from the "static" folder at the site root.

Files are read through a groupcache-backed cache:

	// Setup groupcache (in this example with no peers)
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })

	// Cache static files in group "static", a 10MB cache, and a ten second expiration
	staticFS, err := assets.New(os.DirFS("."), &assets.Config{GroupName: "static", SizeInBytes: 10*1024*1024, Duration: 10*time.Second})

Hidden files and folders (those starting with ".") are never served.

See https://pkg.go.dev/github.com/ancientlore/cachefs for more information on the cache.
*/
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	cfs "github.com/ancientlore/cachefs"
)

// Folder is the name of the static folder at the site root.
const Folder = "static"

// Config stores the configuration settings of the cache.
type Config = cfs.Config

// New returns a read-only, cached FS of the static folder of siteFS.
// If config is nil, it defaults to a 1MB cache using a random GUID as a name.
func New(siteFS fs.FS, config *Config) (fs.FS, error) {
	sub, err := fs.Sub(siteFS, Folder)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return cfs.New(hidingFS{sub}, config), nil
}

// hidingFS hides special files of the inner file system.
type hidingFS struct {
	fs fs.FS
}

// Open opens the named file unless it is hidden.
func (h hidingFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if containsSpecialFile(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	f, err := h.fs.Open(name)
	if err != nil {
		return nil, err
	}
	if d, ok := f.(fs.ReadDirFile); ok {
		return &hidingDir{ReadDirFile: d}, nil
	}
	return f, nil
}

// hidingDir leaves special files out of directory listings.
type hidingDir struct {
	fs.ReadDirFile
}

// ReadDir reads the contents of the directory, skipping special files.
func (d *hidingDir) ReadDir(n int) ([]fs.DirEntry, error) {
	var r []fs.DirEntry
	for {
		entries, err := d.ReadDirFile.ReadDir(n)
		for _, e := range entries {
			if !containsSpecialFile(e.Name()) {
				r = append(r, e)
			}
		}
		// keep reading when everything returned was hidden
		if n <= 0 || len(r) > 0 || err != nil {
			if n > 0 && len(r) > 0 && errors.Is(err, io.EOF) {
				err = nil
			}
			return r, err
		}
	}
}

// containsSpecialFile reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed by the fs.FS interface.
func containsSpecialFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
