package fast

import (
	"math/rand"
	"testing"

	"github.com/yzays8/riscv-emu/rvgo/asm"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

const (
	smallDataset = 1_000
	largeDataset = 1_000_000
)

func BenchmarkMemoryOperations(b *testing.B) {
	benchmarks := []struct {
		name string
		fn   func(b *testing.B, m *Memory)
	}{
		{"RandomReadWrite_Small", benchRandomReadWrite(smallDataset)},
		{"RandomReadWrite_Large", benchRandomReadWrite(largeDataset)},
		{"SequentialReadWrite", benchSequentialReadWrite},
		{"HashSparse", benchHash(16)},
		{"HashDense", benchHash(4096)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			m := NewMemory(riscv.DramBase, riscv.DramSize)
			b.ResetTimer()
			bm.fn(b, m)
		})
	}
}

func benchRandomReadWrite(size int) func(b *testing.B, m *Memory) {
	return func(b *testing.B, m *Memory) {
		addresses := make([]uint64, size)
		for i := range addresses {
			addresses[i] = m.Base() + rand.Uint64()%(m.Size()-8)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			addr := addresses[i%len(addresses)]
			if i%2 == 0 {
				_ = m.Store(addr, 64, uint64(i))
			} else {
				_, _ = m.Load(addr, 64)
			}
		}
	}
}

func benchSequentialReadWrite(b *testing.B, m *Memory) {
	for i := 0; i < b.N; i++ {
		addr := m.Base() + uint64(i*8)%(m.Size()-8)
		if i%2 == 0 {
			_ = m.Store(addr, 64, uint64(i))
		} else {
			_, _ = m.Load(addr, 64)
		}
	}
}

func benchHash(pages int) func(b *testing.B, m *Memory) {
	return func(b *testing.B, m *Memory) {
		for i := 0; i < pages; i++ {
			_ = m.Store(m.Base()+uint64(i)*PageSize, 64, uint64(i)+1)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = m.Hash()
		}
	}
}

func BenchmarkCPUStep(b *testing.B) {
	// a tight loop that never halts
	program := asm.Program(
		asm.ADDI(riscv.RegT0, riscv.RegT0, 1),
		asm.SD(riscv.RegT0, riscv.RegSP, -8),
		asm.J(-8),
	)
	cpu, err := NewCPU(program)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cpu.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
