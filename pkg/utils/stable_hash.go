package utils

import "unicode/utf16"

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// StableHash is a 32-bit FNV-1a style hash over the UTF-16 code units of key,
// one unit per step. For ASCII keys it equals plain FNV-1a over the bytes.
// Same key, same hash, in every process.
func StableHash(key string) uint32 {
	h := uint32(fnvOffset32)
	for _, u := range utf16.Encode([]rune(key)) {
		h ^= uint32(u)
		h *= fnvPrime32
	}
	return h
}

// StableJitter maps key to a deterministic multiplier in [min, max].
func StableJitter(key string, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	t := float64(StableHash(key)%10000) / 10000
	return min + t*(max-min)
}

// StablePick chooses one entry of pool for key; "" for an empty pool.
func StablePick(pool []string, key string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[StableHash(key)%uint32(len(pool))]
}
