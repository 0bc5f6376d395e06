package web

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/ancientlore/cryptonotes/cache"
	"github.com/ancientlore/cryptonotes/catalog"
	"github.com/ancientlore/cryptonotes/site"
	log "github.com/sirupsen/logrus"
)

// StaticPrefix is the URL path static files are served under.
const StaticPrefix = "/static/"

// IndexPage is the name of the landing page in the page cache.
const IndexPage = "index"

// A PageGetter returns rendered pages by name.
type PageGetter interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// RenderIndex returns a cache.RenderFunc that loads the catalog from l and
// renders the landing page of s. The catalog is loaded again on every call.
func RenderIndex(s *site.Site, l catalog.Loader) cache.RenderFunc {
	return func(ctx context.Context, name string) ([]byte, error) {
		docs, err := l.Load()
		if err != nil {
			return nil, fmt.Errorf("RenderIndex: %w", err)
		}
		var buf bytes.Buffer
		err = s.RenderIndex(&buf, docs)
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// IndexHandler serves the landing page from pages.
func IndexHandler(pages PageGetter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		b, err := pages.Get(r.Context(), IndexPage)
		if err != nil {
			log.WithError(err).Error("IndexHandler: cannot render landing page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(b))
	})
}

// Routes returns the handler of the whole site: the landing page at "/", static
// files under StaticPrefix, and the error page for everything else.
func Routes(s *site.Site, pages PageGetter, static fs.FS) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/{$}", IndexHandler(pages))
	mux.Handle(StaticPrefix, http.StripPrefix(StaticPrefix, http.FileServer(http.FS(static))))
	mux.Handle("/", http.NotFoundHandler())

	cfg := s.Config()
	return HeaderHandler(
		ExpiresHandler(
			ErrorHandler(mux, s),
			time.Duration(cfg.Expires),
			time.Duration(cfg.StaticExpires),
		),
		cfg.Headers)
}
