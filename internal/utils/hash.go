package utils

import (
	"encoding/hex"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// hasherPool is a package-level pool of reusable unkeyed BLAKE2b-256 hashers.
var hasherPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			// New256 only fails for keys longer than 64 bytes.
			panic(err)
		}
		return h
	},
}

// Hash computes a BLAKE2b-256 digest over data using a hasher pulled from the
// pool.
//
// Example usage:
//
//	digest := utils.Hash([]byte(`{"email":"a@b.c"}`))
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString returns the hex-encoded BLAKE2b-256 digest of data.
// An empty payload hashes to an empty string so that body-less requests keep
// readable cache keys.
func HashString(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return hex.EncodeToString(Hash(data))
}
