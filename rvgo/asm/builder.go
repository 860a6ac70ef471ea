package asm

import (
	"encoding/binary"
	"fmt"
)

// Builder lays out instruction words as a little-endian flat image, the format the emulator loads.
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Emit appends the given instruction words at the current position.
func (b *Builder) Emit(instrs ...uint32) *Builder {
	for _, instr := range instrs {
		b.buf = binary.LittleEndian.AppendUint32(b.buf, instr)
	}
	return b
}

// Org moves the current position to offset bytes from the image start, zero-filling the gap.
// Moving backwards is an error.
func (b *Builder) Org(offset int) (*Builder, error) {
	if offset < len(b.buf) {
		return b, fmt.Errorf("cannot move back to offset %d, already at %d", offset, len(b.buf))
	}
	b.buf = append(b.buf, make([]byte, offset-len(b.buf))...)
	return b, nil
}

// PC returns the current byte offset, for computing relative branch targets.
func (b *Builder) PC() int {
	return len(b.buf)
}

func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Program encodes a straight sequence of instructions.
func Program(instrs ...uint32) []byte {
	return NewBuilder().Emit(instrs...).Bytes()
}
