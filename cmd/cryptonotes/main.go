// Command cryptonotes serves the landing page of a notes blog.
//
// Every flag may also be set with an environment variable named after it, like
// CRYPTONOTES_PORT or CRYPTONOTES_ROOT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cryptonotes/assets"
	"github.com/ancientlore/cryptonotes/cache"
	"github.com/ancientlore/cryptonotes/site"
	"github.com/ancientlore/cryptonotes/web"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fRoot              = flag.String("root", ".", "Root of web site.")
		fCacheSize         = flag.Int64("cachesize", 10*1024*1024, "Size of each cache in bytes.")
		fCacheDuration     = flag.Duration("cacheduration", 10*time.Second, "Time before cached pages are rendered again; 0 caches forever.")
	)
	flag.Parse()
	flagenv.Prefix = "CRYPTONOTES_"
	flagenv.Parse()

	// Setup groupcache (with no peers)
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })

	// Load the site
	siteFS := os.DirFS(*fRoot)
	s, err := site.New(siteFS)
	if err != nil {
		log.Printf("Cannot load site %q: %s", *fRoot, err)
		os.Exit(1)
	}
	cfg := s.Config()
	log.Printf("Loaded site %q from %q", cfg.Title, *fRoot)
	log.Printf("Categories: %v", s.Registry().Keys())

	// Create the caches
	pages := cache.New("pages", *fCacheSize, *fCacheDuration, web.RenderIndex(s, s.Loader()))
	static, err := assets.New(siteFS, &assets.Config{GroupName: "static", SizeInBytes: *fCacheSize, Duration: *fCacheDuration})
	if err != nil {
		log.Printf("Cannot open static files: %s", err)
		os.Exit(2)
	}

	// Create HTTP server
	var srv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		Handler:           gziphandler.GzipHandler(web.Routes(s, pages, static)),
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// Reload templates on SIGHUP
	go func() {
		sighup := make(chan os.Signal, 1)
		signal.Notify(sighup, syscall.SIGHUP)
		for range sighup {
			custom, err := s.Reload()
			if err != nil {
				log.Printf("Cannot reload templates: %s", err)
				continue
			}
			log.WithField("custom", custom).Info("Reloaded templates")
		}
	}()

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint

		// We received an interrupt signal, shut down.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	// Listen for requests
	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
		os.Exit(3)
	}
	log.Print("Goodbye.")
}
