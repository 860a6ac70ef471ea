package fast

import (
	"bytes"
	"fmt"

	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

// CPU drives a single hart: it owns the registers, the pc and the bus.
type CPU struct {
	Registers Registers
	PC        uint64

	// LastPC is the address of the most recently executed instruction.
	LastPC uint64
	// Steps counts executed instructions.
	Steps  uint64
	Halted bool

	bus *Bus

	memSize  uint64
	maxSteps uint64 // 0 means no limit
	stepHook func(c *CPU) error
}

// Option configures a CPU.
type Option func(c *CPU)

// WithMemorySize overrides the DRAM capacity in bytes.
func WithMemorySize(size uint64) Option {
	return func(c *CPU) {
		c.memSize = size
	}
}

// WithMaxSteps makes Run fail with ErrMaxSteps after max instructions. 0 means no limit.
func WithMaxSteps(max uint64) Option {
	return func(c *CPU) {
		c.maxSteps = max
	}
}

// WithStepHook registers fn to be called after every executed instruction.
func WithStepHook(fn func(c *CPU) error) Option {
	return func(c *CPU) {
		c.stepHook = fn
	}
}

// NewCPU creates a CPU with program copied to the start of DRAM and the pc at the DRAM base.
func NewCPU(program []byte, opts ...Option) (*CPU, error) {
	c := &CPU{
		PC:      riscv.DramBase,
		memSize: riscv.DramSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	mem := NewMemory(riscv.DramBase, c.memSize)
	if err := mem.SetMemoryRange(riscv.DramBase, bytes.NewReader(program)); err != nil {
		return nil, fmt.Errorf("failed to load program of %d bytes: %w", len(program), err)
	}
	c.bus = NewBus(mem)
	c.Registers.Write(riscv.RegSP, riscv.DramBase+c.memSize-1)
	return c, nil
}

// NewCPUFromState resumes a CPU from a snapshot. The snapshot memory is adopted, not copied.
func NewCPUFromState(state *VMState, opts ...Option) (*CPU, error) {
	if state.Memory == nil {
		return nil, ErrNoMemory
	}
	c := &CPU{
		Registers: state.Registers,
		PC:        state.PC,
		LastPC:    state.LastPC,
		Steps:     state.Step,
		Halted:    state.Halted,
		bus:       NewBus(state.Memory),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.memSize = state.Memory.Size()
	return c, nil
}

func (c *CPU) Bus() *Bus {
	return c.bus
}

// Fetch loads the 32-bit instruction word at the pc.
func (c *CPU) Fetch() (uint32, error) {
	v, err := c.bus.Load(c.PC, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch instruction: %w", err)
	}
	return uint32(v), nil
}

// Step fetches and executes one instruction, then adopts the returned pc.
// A next pc of exactly zero halts the CPU; stepping a halted CPU does nothing.
func (c *CPU) Step() (halted bool, err error) {
	if c.Halted {
		return true, nil
	}
	instr, err := c.Fetch()
	if err != nil {
		return false, err
	}
	nextPC, err := Step(instr, &c.Registers, c.PC, c.bus)
	if err != nil {
		return false, fmt.Errorf("failed to execute instruction %08x at pc %016x: %w", instr, c.PC, err)
	}
	c.LastPC = c.PC
	c.PC = nextPC
	c.Steps++
	c.Halted = nextPC == 0
	if c.stepHook != nil {
		if err := c.stepHook(c); err != nil {
			return c.Halted, err
		}
	}
	return c.Halted, nil
}

// Run steps until the CPU halts.
func (c *CPU) Run() error {
	for !c.Halted {
		if c.maxSteps != 0 && c.Steps >= c.maxSteps {
			return fmt.Errorf("%w: %d", ErrMaxSteps, c.maxSteps)
		}
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// State captures the CPU as a snapshot. The memory is shared with the CPU.
func (c *CPU) State() *VMState {
	return &VMState{
		Memory:    c.bus.DRAM(),
		PC:        c.PC,
		LastPC:    c.LastPC,
		Step:      c.Steps,
		Halted:    c.Halted,
		Registers: c.Registers,
	}
}
