// Package crc implements the 32-bit block checksum of the container format.
//
// The checksum is the reflected CRC-32 (polynomial 0xEDB88320) without the
// initial and final inversion applied by hash/crc32, so a running value can
// be fed back in as the seed of the next call.
package crc

import "hash/crc32"

// Compute continues the checksum seed over data.
// Compute(Compute(s, a), b) == Compute(s, append(a, b...)).
func Compute(seed uint32, data []byte) uint32 {
	return ^crc32.Update(^seed, crc32.IEEETable, data)
}
