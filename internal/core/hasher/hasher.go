// Package hasher fingerprints note contents so listings show when a note changed.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	prefix = "sha256:"
	// ShortLen is the number of hex digits Short keeps.
	ShortLen = 8
)

// CalculateSHA256 returns the fingerprint of content as "sha256:<hex>".
func CalculateSHA256(content []byte) string {
	sum := sha256.Sum256(content)
	return prefix + hex.EncodeToString(sum[:])
}

// Short abbreviates a fingerprint to its first ShortLen hex digits.
func Short(fingerprint string) string {
	h := strings.TrimPrefix(fingerprint, prefix)
	if len(h) > ShortLen {
		h = h[:ShortLen]
	}
	return h
}
