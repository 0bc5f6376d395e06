package web

import (
	"net/http"
	"strings"
	"time"
)

// HeaderHandler returns an http.Handler that sets the configured response headers
// before calling h. Names are canonicalized once; an empty value removes the header.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	if len(headers) == 0 {
		return h
	}
	set := make(map[string]string, len(headers))
	for k, v := range headers {
		set[http.CanonicalHeaderKey(k)] = v
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dst := w.Header()
		for k, v := range set {
			if v == "" {
				dst.Del(k)
				continue
			}
			dst[k] = []string{v}
		}
		h.ServeHTTP(w, r)
	})
}

// ExpiresHandler adds the expires header choosing staticExpires for files under
// StaticPrefix and expires for rendered pages. A zero duration adds no header.
func ExpiresHandler(h http.Handler, expires, staticExpires time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expiry := expires
		if strings.HasPrefix(r.URL.Path, StaticPrefix) {
			expiry = staticExpires
		}
		if expiry != 0 {
			w.Header().Set("Expires", time.Now().Add(expiry).UTC().Format(http.TimeFormat))
		}
		h.ServeHTTP(w, r)
	})
}
