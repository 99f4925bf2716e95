package core_test

import (
	"testing"

	"github.com/koru3d/present/core"
)

func TestSliceUint32(t *testing.T) {
	data := []byte{0x03, 0x02, 0x23, 0x07, 0xaa, 0xbb, 0xcc, 0xdd, 0x01}
	words := core.SliceUint32(data)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
