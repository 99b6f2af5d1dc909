package value

import "encoding/binary"

// xxHash64 constants, as specified: the five 64-bit primes used by the
// reference algorithm this hash is ported from (original_source/clox's
// hash.cpp). Seed is always 0 for string objects.
const (
	prime1 uint64 = 0x9E3779B185EBCA87
	prime2 uint64 = 0xC2B2AE3D27D4EB4F
	prime3 uint64 = 0x165667B19E3779F9
	prime4 uint64 = 0x85EBCA77C2B2AE63
	prime5 uint64 = 0x27D4EB2F165667C5
)

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

func hashRound(acc, input uint64) uint64 {
	acc += input * prime2
	acc = rotl64(acc, 31)
	acc *= prime1
	return acc
}

func hashMergeRound(acc, val uint64) uint64 {
	val = hashRound(0, val)
	acc ^= val
	acc = acc*prime1 + prime4
	return acc
}

func hashAvalanche(h64 uint64) uint64 {
	h64 ^= h64 >> 33
	h64 *= prime2
	h64 ^= h64 >> 29
	h64 *= prime3
	h64 ^= h64 >> 32
	return h64
}

func hashFinalize(h64 uint64, p []byte) uint64 {
	length := len(p) & 31

	for length >= 8 {
		k1 := hashRound(0, binary.LittleEndian.Uint64(p))
		p = p[8:]
		h64 ^= k1
		h64 = rotl64(h64, 27)*prime1 + prime4
		length -= 8
	}
	if length >= 4 {
		h64 ^= uint64(binary.LittleEndian.Uint32(p)) * prime1
		p = p[4:]
		h64 = rotl64(h64, 23)*prime2 + prime3
		length -= 4
	}
	for length > 0 {
		h64 ^= uint64(p[0]) * prime5
		h64 = rotl64(h64, 11) * prime1
		p = p[1:]
		length--
	}
	return hashAvalanche(h64)
}

// hash64 is a direct port of the reference xxHash64 implementation: a
// four-lane accumulator for inputs over 32 bytes, a seed-only accumulator
// otherwise, both folded through hashFinalize.
func hash64(input []byte, seed uint64) uint64 {
	length := len(input)
	var h64 uint64
	p := input

	if length > 32 {
		limit := length - 32
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed + 0
		v4 := seed - prime1

		i := 0
		for i <= limit {
			v1 = hashRound(v1, binary.LittleEndian.Uint64(p[i:]))
			v2 = hashRound(v2, binary.LittleEndian.Uint64(p[i+8:]))
			v3 = hashRound(v3, binary.LittleEndian.Uint64(p[i+16:]))
			v4 = hashRound(v4, binary.LittleEndian.Uint64(p[i+24:]))
			i += 32
		}

		h64 = rotl64(v1, 1) + rotl64(v2, 7) + rotl64(v3, 12) + rotl64(v4, 18)
		h64 = hashMergeRound(h64, v1)
		h64 = hashMergeRound(h64, v2)
		h64 = hashMergeRound(h64, v3)
		h64 = hashMergeRound(h64, v4)

		p = p[i:]
	} else {
		h64 = seed + prime5
	}

	h64 += uint64(length)
	return hashFinalize(h64, p)
}

// hashTruncate folds a 64-bit hash into 32 bits by XOR-ing its two halves.
func hashTruncate(h uint64) uint32 {
	a := uint32(h)
	b := uint32(h >> 32)
	return a ^ b
}

// HashBytes computes the 32-bit content hash used by string objects. It is a
// pure function of the byte content: equal content always yields an equal
// hash, with seed fixed at 0.
func HashBytes(data []byte) uint32 {
	return hashTruncate(hash64(data, 0))
}
