/*
Package cache keeps rendered pages in a groupcache group.

groupcache does not support expiration, so keys carry a quantized time value: a
page is rendered again once the quantum it was cached in has passed. Each page
name is offset within the quantum so that pages don't all expire at once.
Expiration is disabled by specifying 0 for the duration.

Errors returned by the render function are not cached.
*/
package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/groupcache"
)

// RenderFunc renders the page with the given name.
type RenderFunc func(ctx context.Context, name string) ([]byte, error)

// Pages provides cached access to rendered pages.
type Pages struct {
	duration time.Duration
	cache    *groupcache.Group
}

// New creates a page cache using groupcache with the given groupName and sizeInBytes.
// Group names must be unique within the process.
func New(groupName string, sizeInBytes int64, duration time.Duration, render RenderFunc) *Pages {
	return &Pages{
		duration: duration,
		cache: groupcache.NewGroup(groupName, sizeInBytes, groupcache.GetterFunc(
			func(ctx context.Context, key string, dest groupcache.Sink) error {
				// Parse query which contains quantize info and page name
				q, err := url.ParseQuery(key)
				if err != nil {
					return fmt.Errorf("Invalid cache key: %w", err)
				}
				b, err := render(ctx, q.Get("page"))
				if err != nil {
					return err
				}
				return dest.SetBytes(b)
			})),
	}
}

// Get returns the rendered page, rendering it if it is not cached.
func (p *Pages) Get(ctx context.Context, name string) ([]byte, error) {
	var (
		buf []byte
		q   = make(url.Values, 2)
	)
	q.Set("t", strconv.FormatInt(quantize(time.Now(), p.duration, name), 10))
	q.Set("page", name)
	err := p.cache.Get(ctx, q.Encode(), groupcache.AllocatingByteSliceSink(&buf))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// quantize returns the number of the quantum of length d that t falls in,
// shifting the boundaries by an offset derived from name.
func quantize(t time.Time, d time.Duration, name string) int64 {
	if d <= 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	offset := int64(h.Sum64() % uint64(d))
	return (t.UnixNano() + offset) / int64(d)
}
