// Package hash fingerprints document content for the run manifest.
//
// Source and generated documents are already held in memory during a run,
// so hashing works on byte slices. The package provides a SHA-256
// implementation and a fake for testing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher provides an abstraction for content hashing.
type Hasher interface {
	// HashBytes computes the hash of data.
	HashBytes(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes returns the hex-encoded SHA-256 digest of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the hash returned for specific content.
func (h *FakeHasher) SetHash(content, hash string) {
	h.hashes[content] = hash
}

// HashBytes returns the predetermined hash for data.
func (h *FakeHasher) HashBytes(data []byte) string {
	if hash, ok := h.hashes[string(data)]; ok {
		return hash
	}
	return "fakehash"
}
