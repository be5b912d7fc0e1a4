// Package rng derives reproducible random streams for scatter layers.
package rng

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// New returns a generator seeded with seed. Each layer gets its own instance;
// generators are not shared between goroutines.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// HashID returns the 64-bit FNV-1a hash of id.
func HashID(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

// LayerSeed combines a base seed with the layer id, so that each layer's
// stream depends only on the base seed and its own id.
func LayerSeed(base int64, layerID string) int64 {
	return base ^ int64(HashID(layerID))
}

// RandomSeed returns a seed for callers that did not supply one.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}
