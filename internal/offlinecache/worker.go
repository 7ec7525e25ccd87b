// Package offlinecache implements a network-first caching transport for
// a web client, with an install/activate/fetch lifecycle: Install
// precaches a fixed asset list into a versioned bucket, Activate evicts
// buckets left behind by older versions, and RoundTrip intercepts every
// outgoing request, falling back to the cache when the network is gone.
package offlinecache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
)

type entry struct {
	status int
	header http.Header
	body   []byte
}

func (e entry) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.status, http.StatusText(e.status)),
		StatusCode:    e.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}

// Store holds named cache buckets.
type Store struct {
	mu      sync.RWMutex
	buckets map[string]map[string]entry
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{buckets: map[string]map[string]entry{}}
}

func (s *Store) put(bucket, key string, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		b = map[string]entry{}
		s.buckets[bucket] = b
	}
	b[key] = e
}

func (s *Store) get(bucket, key string) (entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.buckets[bucket][key]
	return e, ok
}

func (s *Store) names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		names = append(names, name)
	}
	return names
}

func (s *Store) delete(bucket string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, bucket)
}

// Options configures a Worker.
type Options struct {
	// Bucket is the versioned cache bucket name; bumping the version
	// retires every older bucket on Activate.
	Bucket string
	// Assets are absolute URLs precached during Install.
	Assets []string
	// RootURL is the cached document served to navigations that miss
	// both network and cache.
	RootURL string
	// ExcludeHosts are remote-API hostnames never intercepted.
	ExcludeHosts []string
	// Base is the underlying transport; http.DefaultTransport when nil.
	Base http.RoundTripper
	// Store may be shared across worker generations; a fresh one is
	// created when nil.
	Store *Store
}

// Worker is the caching transport.
type Worker struct {
	bucket       string
	assets       []string
	rootURL      string
	excludeHosts map[string]struct{}
	base         http.RoundTripper
	store        *Store

	mu    sync.Mutex
	ready bool
}

// NewWorker builds a Worker from Options.
func NewWorker(opts Options) *Worker {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	store := opts.Store
	if store == nil {
		store = NewStore()
	}
	exclude := make(map[string]struct{}, len(opts.ExcludeHosts))
	for _, host := range opts.ExcludeHosts {
		exclude[host] = struct{}{}
	}
	return &Worker{
		bucket:       opts.Bucket,
		assets:       opts.Assets,
		rootURL:      opts.RootURL,
		excludeHosts: exclude,
		base:         base,
		store:        store,
	}
}

// Install precaches the asset list. Individual asset failures are logged
// and skipped. The worker becomes ready immediately, without waiting for
// an older generation to wind down.
func (w *Worker) Install(ctx context.Context) error {
	for _, asset := range w.assets {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset, nil)
		if err != nil {
			log.Printf("offline cache: precache %s: %v", asset, err)
			continue
		}
		resp, err := w.base.RoundTrip(req)
		if err != nil {
			log.Printf("offline cache: precache %s: %v", asset, err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("offline cache: precache %s: status %d", asset, resp.StatusCode)
			resp.Body.Close()
			continue
		}
		if _, err := w.cacheResponse(req, resp); err != nil {
			log.Printf("offline cache: precache %s: %v", asset, err)
		}
		resp.Body.Close()
	}

	w.mu.Lock()
	w.ready = true
	w.mu.Unlock()
	return nil
}

// Activate drops every bucket that does not belong to this version and
// claims request handling.
func (w *Worker) Activate() {
	for _, name := range w.store.names() {
		if name != w.bucket {
			w.store.delete(name)
		}
	}
	w.mu.Lock()
	w.ready = true
	w.mu.Unlock()
}

// RoundTrip serves GET requests network-first with a cache fallback.
// Non-GET requests, excluded hosts and requests arriving before the
// worker is ready pass straight through.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	w.mu.Lock()
	ready := w.ready
	w.mu.Unlock()
	if !ready || req.Method != http.MethodGet {
		return w.base.RoundTrip(req)
	}
	if _, excluded := w.excludeHosts[req.URL.Host]; excluded {
		return w.base.RoundTrip(req)
	}

	resp, err := w.base.RoundTrip(req)
	if err == nil {
		if resp.StatusCode == http.StatusOK {
			body, readErr := w.cacheResponse(req, resp)
			if readErr != nil {
				resp.Body.Close()
				return nil, readErr
			}
			resp.Body = io.NopCloser(bytes.NewReader(body))
		}
		return resp, nil
	}

	if cached, ok := w.store.get(w.bucket, req.URL.String()); ok {
		return cached.response(req), nil
	}
	if isNavigation(req) {
		if cached, ok := w.store.get(w.bucket, w.rootURL); ok {
			return cached.response(req), nil
		}
	}
	return nil, err
}

func (w *Worker) cacheResponse(req *http.Request, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	w.store.put(w.bucket, req.URL.String(), entry{
		status: resp.StatusCode,
		header: resp.Header.Clone(),
		body:   body,
	})
	return body, nil
}

func isNavigation(req *http.Request) bool {
	return req.Header.Get("Sec-Fetch-Mode") == "navigate"
}

var _ http.RoundTripper = (*Worker)(nil)
