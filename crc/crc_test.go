package crc

import (
	"hash/crc32"
	"math/rand"
	"testing"
)

func TestComputeEmptyKeepsSeed(t *testing.T) {
	for _, seed := range []uint32{0, 1, 0xDEADBEEF} {
		if got := Compute(seed, nil); got != seed {
			t.Errorf("seed 0x%x: expected unchanged seed, got 0x%x", seed, got)
		}
	}
}

func TestComputeMatchesIEEEWithoutInversion(t *testing.T) {
	data := []byte("123456789")

	// an all-ones seed reproduces the standard pre-inversion,
	// only the final inversion remains.
	got := Compute(0xFFFFFFFF, data)
	expected := ^crc32.ChecksumIEEE(data)

	if got != expected {
		t.Errorf("expected 0x%08x, got 0x%08x", expected, got)
	}
}

func TestComputeComposes(t *testing.T) {
	data := make([]byte, 512)
	rand.New(rand.NewSource(7)).Read(data)

	whole := Compute(0, data)

	for _, split := range []int{0, 1, 63, 256, 511, 512} {
		chained := Compute(Compute(0, data[:split]), data[split:])
		if chained != whole {
			t.Errorf("split %d: expected 0x%08x, got 0x%08x", split, whole, chained)
		}
	}
}

func TestComputeDetectsFlip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	before := Compute(0, data)
	data[2] ^= 0x10
	if Compute(0, data) == before {
		t.Errorf("single bit flip not detected")
	}
}

func BenchmarkCompute8k(b *testing.B) {
	data := make([]byte, 8192)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(0, data)
	}
}
