package web

import (
	"bytes"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// An ErrorRenderer writes the error page for an HTTP status.
type ErrorRenderer interface {
	RenderError(w io.Writer, status int, message string) error
}

// ErrorHandler captures 404 and 500 errors and replaces the response body with the
// error page from r. If r fails, the original response is sent.
func ErrorHandler(h http.Handler, r ErrorRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writer := &responseWriter{
			ResponseWriter: w,
			renderer:       r,
		}
		h.ServeHTTP(writer, req)
	})
}

type responseWriter struct {
	http.ResponseWriter
	renderer ErrorRenderer
	noWrite  bool
	err      error
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.noWrite {
		return len(b), w.err
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if statusCode == http.StatusNotFound || statusCode == http.StatusInternalServerError {
		// special processing of response
		var buf bytes.Buffer
		err := w.renderer.RenderError(&buf, statusCode, "")
		if err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Del("X-Content-Type-Options")
			w.Header().Del("Content-Length")
			w.ResponseWriter.WriteHeader(statusCode)
			w.noWrite = true
			_, w.err = buf.WriteTo(w.ResponseWriter)
			return
		}
		log.Printf("ErrorHandler: %s", err)
	}
	// normal processing
	w.ResponseWriter.WriteHeader(statusCode)
}
