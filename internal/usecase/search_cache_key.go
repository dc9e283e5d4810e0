package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const searchCachePrefix = "upwork:search:"

// SearchCacheKey derives the cache key of a compiled search URL. Compiled
// URLs are canonical, so equal filter sets share a key.
func SearchCacheKey(searchURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(searchURL)))
	return searchCachePrefix + hex.EncodeToString(sum[:])
}
