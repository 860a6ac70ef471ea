package fast

import (
	"errors"
	"fmt"
)

var ErrMaxSteps = errors.New("max steps reached")

var ErrNoMemory = errors.New("state has no memory")

// UnknownOpcodeError is returned for a word whose opcode bits match no instruction family.
type UnknownOpcodeError struct {
	Opcode uint8
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode: 0b%07b", e.Opcode)
}

type UnknownFunct3Error struct {
	Opcode uint8
	Funct3 uint8
}

func (e *UnknownFunct3Error) Error() string {
	return fmt.Sprintf("unknown funct3: 0b%03b in opcode: 0b%07b", e.Funct3, e.Opcode)
}

// UnknownFunct7Error covers both the funct7 field of register-register instructions
// and the high immediate bits that select the shift kind of immediate shifts.
type UnknownFunct7Error struct {
	Opcode uint8
	Funct3 uint8
	Funct7 uint8
	// Bits is the width of the selector field: 7 for funct7, 6 or 7 for immediate selectors.
	Bits uint8
	// Immediate marks a selector taken from the immediate rather than the funct7 field.
	Immediate bool
}

func (e *UnknownFunct7Error) Error() string {
	name := "funct7"
	if e.Immediate {
		name = fmt.Sprintf("imm_11_%d", 12-e.Bits)
	}
	return fmt.Sprintf("unknown %s: 0b%0*b in funct3: 0b%03b, opcode: 0b%07b", name, int(e.Bits), e.Funct7, e.Funct3, e.Opcode)
}

type InvalidSizeError struct {
	Size uint64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid access size: %d", e.Size)
}

// AddressError reports an access that does not fit inside any mapped address range.
type AddressError struct {
	Addr uint64
	Size uint64
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address: 0x%016x (size %d)", e.Addr, e.Size)
}
