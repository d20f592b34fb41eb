// Package registry maps opaque repository handles to local clone paths.
package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ReleaseFunc is called with the path of every entry that is released,
// expired or dropped on Close.
type ReleaseFunc func(path string)

// Registry is a concurrency-safe handle table with optional expiry.
type Registry struct {
	mu    sync.Mutex
	items *cache.Cache
}

// New creates a registry. Entries expire after ttl (0 keeps them until
// released); expired entries are swept every cleanupInterval. onRelease may
// be nil.
func New(ttl, cleanupInterval time.Duration, onRelease ReleaseFunc) *Registry {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	items := cache.New(ttl, cleanupInterval)
	if onRelease != nil {
		items.OnEvicted(func(_ string, v interface{}) {
			onRelease(v.(string))
		})
	}

	return &Registry{items: items}
}

// Register stores path under a fresh random handle and returns the handle.
func (r *Registry) Register(path string) string {
	id := uuid.NewString()
	r.items.Set(id, path, cache.DefaultExpiration)
	return id
}

// Resolve returns the path for id and restarts its expiry, so a handle in
// use is not swept. Expired handles do not resolve.
func (r *Registry) Resolve(id string) (string, bool) {
	v, ok := r.items.Get(id)
	if !ok {
		return "", false
	}
	path := v.(string)
	if err := r.items.Replace(id, path, cache.DefaultExpiration); err != nil {
		// Released or expired between the lookup and the refresh.
		return "", false
	}
	return path, true
}

// Release drops id and reports whether it was registered.
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items.Get(id); !ok {
		return false
	}
	r.items.Delete(id)
	return true
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	return len(r.items.Items())
}

// Close releases every entry, expired or not.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items.DeleteExpired()
	for id := range r.items.Items() {
		r.items.Delete(id)
	}
}
