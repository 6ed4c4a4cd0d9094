// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering a graph through graphviz is the slow part of an export; the
// DOT text fully determines the output, so image bytes are cached under a
// hash of the DOT source plus the output format. Keys are content hashes,
// which makes entries immutable: there is no expiration, only eviction by
// clearing the cache directory.
package cache

import "context"

// Cache is a byte store addressed by content-hash keys. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: a namespace
// for the artifact kind ("graph", "table"), the hash of the source content,
// and the output format.
func ArtifactKey(kind, contentHash, format string) string {
	return hashKey(kind, contentHash, format)
}
