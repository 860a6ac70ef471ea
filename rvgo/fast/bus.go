package fast

// MemoryBus is what the execution engine needs from the memory system.
// Sizes are in bits: 8, 16, 32 or 64.
type MemoryBus interface {
	Load(addr uint64, size uint64) (uint64, error)
	Store(addr uint64, size uint64, value uint64) error
}

// Bus routes accesses to the device mapped at the address. Today only DRAM is mapped;
// memory-mapped peripherals would get their own range check here.
type Bus struct {
	dram *Memory
}

var _ MemoryBus = (*Bus)(nil)

func NewBus(dram *Memory) *Bus {
	return &Bus{dram: dram}
}

func (b *Bus) DRAM() *Memory {
	return b.dram
}

func (b *Bus) inDRAM(addr uint64) bool {
	return addr >= b.dram.Base() && addr-b.dram.Base() < b.dram.Size()
}

func (b *Bus) Load(addr uint64, size uint64) (uint64, error) {
	if !b.inDRAM(addr) {
		return 0, &AddressError{Addr: addr, Size: size}
	}
	return b.dram.Load(addr, size)
}

func (b *Bus) Store(addr uint64, size uint64, value uint64) error {
	if !b.inDRAM(addr) {
		return &AddressError{Addr: addr, Size: size}
	}
	return b.dram.Store(addr, size, value)
}
