package cache

import (
	"hash/fnv"
	"math"
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Float64Hasher hashes the bit pattern of f.
func Float64Hasher(f float64) uint64 {
	return Mix(math.Float64bits(f))
}

// Mix scrambles an integer so that nearby values land in different shards
// (splitmix64 finalizer).
func Mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Combine merges two hashes, for keys made of several fields.
func Combine(a, b uint64) uint64 {
	return Mix(a ^ (b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2)))
}
