// Package cache holds rendered list views so repeated reads skip the store.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Views caches rendered responses keyed by view path and user. It is safe
// for concurrent use.
type Views struct {
	store *gocache.Cache
}

// NewViews creates a view cache. A non-positive ttl disables caching.
func NewViews(ttl time.Duration) *Views {
	if ttl <= 0 {
		return &Views{}
	}
	return &Views{store: gocache.New(ttl, 2*ttl)}
}

// Key builds the cache key for a view seen by a user. An empty userID is a
// shared view.
func Key(path, userID string) string {
	return path + "\x00" + userID
}

// Get returns the cached value for key.
func (v *Views) Get(key string) (any, bool) {
	if v == nil || v.store == nil {
		return nil, false
	}
	return v.store.Get(key)
}

// Set stores value under key with the default expiry.
func (v *Views) Set(key string, value any) {
	if v == nil || v.store == nil {
		return
	}
	v.store.SetDefault(key, value)
}

// Invalidate drops every entry whose path starts with one of the prefixes.
func (v *Views) Invalidate(prefixes ...string) int {
	if v == nil || v.store == nil || len(prefixes) == 0 {
		return 0
	}
	dropped := 0
	for key := range v.store.Items() {
		path, _, _ := strings.Cut(key, "\x00")
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				v.store.Delete(key)
				dropped++
				break
			}
		}
	}
	return dropped
}

// Len returns the number of live entries.
func (v *Views) Len() int {
	if v == nil || v.store == nil {
		return 0
	}
	return v.store.ItemCount()
}

// Remember returns the cached value for key or computes, stores and returns
// it. Errors are not cached.
func Remember[T any](v *Views, key string, fn func() (T, error)) (T, error) {
	if cached, ok := v.Get(key); ok {
		if typed, ok := cached.(T); ok {
			return typed, nil
		}
	}
	value, err := fn()
	if err != nil {
		return value, err
	}
	v.Set(key, value)
	return value, nil
}
