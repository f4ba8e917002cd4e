// Package cache provides a caching wrapper around macaroon verification
// for callers that verify the same macaroon-plus-discharge-set repeatedly
// (a service checking the same bearer token on every request, say), where
// recomputing the signature chain on each call is wasted work.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/quaycrest/macaroon"
)

// CachingVerifier wraps a macaroon.Verifier with a bounded LRU cache keyed
// on the macaroon, root key, and discharge set being verified. A cache hit
// skips the signature chain walk entirely.
type CachingVerifier struct {
	verifier *macaroon.Verifier
	cache    *lru.Cache[string, error]
}

// NewCachingVerifier wraps v with an LRU cache holding up to size entries.
func NewCachingVerifier(v *macaroon.Verifier, size int) (*CachingVerifier, error) {
	c, err := lru.New[string, error](size)
	if err != nil {
		return nil, err
	}
	return &CachingVerifier{verifier: v, cache: c}, nil
}

// Verify behaves as macaroon.Verifier.Verify, except that a prior result
// for the same (m, rootKey, discharges) combination is returned from cache
// without re-walking the signature chain.
func (c *CachingVerifier) Verify(m *macaroon.Macaroon, rootKey macaroon.Key, discharges []*macaroon.Macaroon) error {
	key := cacheKey(m, rootKey, discharges)
	if err, ok := c.cache.Get(key); ok {
		return err
	}
	err := c.verifier.Verify(m, rootKey, discharges)
	c.cache.Add(key, err)
	return err
}

// cacheKey hashes the V2 binary encoding of the macaroon, the root key, and
// the V2 binary encoding of each discharge into a single digest. A stored
// signature does not commit to the rest of a token until the chain has been
// verified, so the full encodings are hashed: two inputs that differ in any
// field never share a cache entry.
func cacheKey(m *macaroon.Macaroon, rootKey macaroon.Key, discharges []*macaroon.Macaroon) string {
	h := sha256.New()
	primary, _ := macaroon.Slice{m}.MarshalBinary()
	h.Write(primary)
	rk := rootKey.Bytes()
	h.Write(rk)
	bag, _ := macaroon.Slice(discharges).MarshalBinary()
	h.Write(bag)
	return hex.EncodeToString(h.Sum(nil))
}
