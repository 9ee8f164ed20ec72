// Package cache provides caching for fetched query results.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/datacell/graphtable/pkg/client"
)

// ResultCache is a thread-safe LRU cache of result envelopes keyed by the
// query input signature. A cached envelope is served for unchanged inputs; a
// forced refresh bypasses and replaces the entry.
type ResultCache struct {
	cache *lru.Cache[string, *client.Envelope]
}

// NewResultCache creates a cache holding at most maxItems envelopes.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *client.Envelope](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Get retrieves the envelope cached for a signature.
func (c *ResultCache) Get(signature string) (*client.Envelope, bool) {
	return c.cache.Get(signature)
}

// Put stores or replaces the envelope for a signature.
func (c *ResultCache) Put(signature string, env *client.Envelope) {
	c.cache.Add(signature, env)
}

// Remove drops the envelope for a signature, if present.
func (c *ResultCache) Remove(signature string) {
	c.cache.Remove(signature)
}

// Len returns the current number of cached envelopes.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}
