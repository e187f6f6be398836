package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface behind the source-profile and fetched
// document caches. Entries expire by TTL and are never invalidated
// mid-computation: a stale hit is acceptable background-data staleness,
// not a correctness hazard.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from an arbitrary identifier (URL, domain,
// or claim id). Keys are filename-safe so the disk layer can use them as-is.
func Key(id string) string {
	sum := sha256.Sum256([]byte(id))
	return "veridex-v1-" + hex.EncodeToString(sum[:])
}
