package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey builds a key of the form kind:sha256(parts). The kind prefix
// stays readable when listing the cache directory; the parts collapse into
// one digest so key length is bounded regardless of how large the rendered
// source was. Parts are joined with NUL so ("ab","c") and ("a","bc") never
// collide.
func hashKey(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the sha256 of data as a 64-char hex string. This is the
// content identity that addresses a rendered artifact.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
