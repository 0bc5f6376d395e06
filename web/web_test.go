package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ancientlore/cryptonotes/assets"
	"github.com/ancientlore/cryptonotes/cache"
	"github.com/ancientlore/cryptonotes/site"
	"github.com/stretchr/testify/require"
)

const testManifest = `
[[category]]
key = "zklearning"

  [[category.document]]
  slug = "zklearning/sumcheck"
  title = "The Sumcheck Protocol"
  date = "2023-02-11"

[[category]]
key = "mpc"

  [[category.document]]
  slug = "mpc/garbled"
  title = "Garbled Circuits"
`

const testCategories = `
[zklearning]
title = "Zero-Knowledge"
order = 2

[mpc]
title = "Multi-Party Computation"
order = 1
`

func newServer(t *testing.T, fsys fstest.MapFS) *httptest.Server {
	t.Helper()
	s, err := site.New(fsys)
	require.NoError(t, err)
	pages := cache.New(t.Name()+"-pages", 1024*1024, 0, RenderIndex(s, s.Loader()))
	static, err := assets.New(fsys, &assets.Config{GroupName: t.Name() + "-static", SizeInBytes: 1024 * 1024})
	require.NoError(t, err)
	srv := httptest.NewServer(Routes(s, pages, static))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

const testConfig = `
expires = "5m"
staticexpires = "24h"

[headers]
X-Frame-Options = "DENY"
`

func testSite() fstest.MapFS {
	return fstest.MapFS{
		"notes.toml":       {Data: []byte(testManifest)},
		"categories.toml":  {Data: []byte(testCategories)},
		"static/style.css": {Data: []byte("main { max-width: 40em; }")},
		site.ConfigFile:    {Data: []byte(testConfig)},
	}
}

func TestIndex(t *testing.T) {
	srv := newServer(t, testSite())

	resp, body := get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	require.NotEmpty(t, resp.Header.Get("Expires"))

	mpc := strings.Index(body, "<h1>Multi-Party Computation</h1>")
	zk := strings.Index(body, "<h1>Zero-Knowledge</h1>")
	require.True(t, mpc >= 0 && zk > mpc, body)
	require.Contains(t, body, `href="/notes/zklearning/sumcheck"`)
	require.Contains(t, body, `href="/notes/mpc/garbled"`)
}

func TestIndexUnknownCategory(t *testing.T) {
	fsys := testSite()
	fsys["notes.toml"] = &fstest.MapFile{Data: []byte(testManifest + "\n[[category]]\nkey = \"unregistered\"\n")}
	srv := newServer(t, fsys)

	resp, body := get(t, srv.URL+"/")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Contains(t, body, "<h1>500</h1>")
	require.NotContains(t, body, "Multi-Party Computation")
}

func TestIndexMissingCatalog(t *testing.T) {
	fsys := testSite()
	delete(fsys, "notes.toml")
	srv := newServer(t, fsys)

	resp, _ := get(t, srv.URL+"/")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	srv := newServer(t, testSite())

	for _, p := range []string{"/notes/zklearning/sumcheck", "/static/missing.css", "/index.html"} {
		resp, body := get(t, srv.URL+p)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, p)
		require.Contains(t, body, "<h1>404</h1>", p)
	}
}

func TestStatic(t *testing.T) {
	srv := newServer(t, testSite())

	resp, body := get(t, srv.URL+"/static/style.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "main { max-width: 40em; }", body)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	exp, err := time.Parse(time.RFC1123, resp.Header.Get("Expires"))
	require.NoError(t, err)
	require.True(t, exp.After(time.Now().Add(time.Hour)), "static expiry %v", exp)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(t, testSite())

	resp, err := http.Post(srv.URL+"/", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
}

type pageFunc func(ctx context.Context, name string) ([]byte, error)

func (f pageFunc) Get(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

type brokenRenderer struct{}

func (brokenRenderer) RenderError(w io.Writer, status int, message string) error {
	return errors.New("no error page")
}

func TestErrorHandlerFallback(t *testing.T) {
	h := ErrorHandler(IndexHandler(pageFunc(func(ctx context.Context, name string) ([]byte, error) {
		return nil, errors.New("broken")
	})), brokenRenderer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error\n", rec.Body.String())
}

func TestIndexHandler(t *testing.T) {
	var names []string
	h := IndexHandler(pageFunc(func(ctx context.Context, name string) ([]byte, error) {
		names = append(names, name)
		return []byte("<p>hello</p>"), nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<p>hello</p>", rec.Body.String())
	require.Equal(t, []string{IndexPage}, names)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestHeaderHandler(t *testing.T) {
	h := HeaderHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), map[string]string{"Cache-Control": "public"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "public", rec.Header().Get("Cache-Control"))
}

func TestHeaderHandlerCanonical(t *testing.T) {
	headers := map[string]string{"x-frame-options": "DENY", "Server": ""}
	h := HeaderHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), headers)
	headers["x-frame-options"] = "SAMEORIGIN"

	rec := httptest.NewRecorder()
	rec.Header().Set("Server", "cryptonotes")
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"DENY"}, rec.Header()["X-Frame-Options"])
	_, ok := rec.Header()["Server"]
	require.False(t, ok)
}

func TestHeaderHandlerNone(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := HeaderHandler(ok, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, rec.Header())
}

func TestExpiresHandler(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := ExpiresHandler(ok, 0, time.Hour)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, rec.Header().Get("Expires"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	exp, err := http.ParseTime(rec.Header().Get("Expires"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(rec.Header().Get("Expires"), " GMT"))
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}
