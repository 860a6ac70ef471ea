package asm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

// Expected words are what a GNU toolchain emits for the same assembly.
func TestEncodeKnownWords(t *testing.T) {
	cases := []struct {
		desc  string
		instr uint32
		want  uint32
	}{
		{"addi a0, zero, 42", LI(riscv.RegA0, 42), 0x02a00513},
		{"addi sp, sp, -16", ADDI(riscv.RegSP, riscv.RegSP, -16), 0xff010113},
		{"ret", RET(), 0x00008067},
		{"nop", NOP(), 0x00000013},
		{"add t6, t5, t4", ADD(riscv.RegT6, riscv.RegT5, riscv.RegT4), 0x01df0fb3},
		{"sub a0, a1, a2", SUB(riscv.RegA0, riscv.RegA1, riscv.RegA2), 0x40c58533},
		{"sd t0, 8(sp)", SD(riscv.RegT0, riscv.RegSP, 8), 0x00513423},
		{"ld ra, 8(sp)", LD(riscv.RegRA, riscv.RegSP, 8), 0x00813083},
		{"lui a0, 42", LUI(riscv.RegA0, 42), 0x0002a537},
		{"auipc a0, 42", AUIPC(riscv.RegA0, 42), 0x0002a517},
		{"jal ra, 16", JAL(riscv.RegRA, 16), 0x010000ef},
		{"j -4", J(-4), 0xffdff06f},
		{"beq a0, a1, 8", BEQ(riscv.RegA0, riscv.RegA1, 8), 0x00b50463},
		{"bne a0, zero, -8", BNE(riscv.RegA0, riscv.RegZero, -8), 0xfe051ce3},
		{"srai a0, a0, 2", SRAI(riscv.RegA0, riscv.RegA0, 2), 0x40255513},
		{"slli a0, a0, 63", SLLI(riscv.RegA0, riscv.RegA0, 63), 0x03f51513},
		{"sraiw a0, a0, 1", SRAIW(riscv.RegA0, riscv.RegA0, 1), 0x4015551b},
		{"addw a2, a0, a1", ADDW(riscv.RegA2, riscv.RegA0, riscv.RegA1), 0x00b5063b},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			require.Equal(t, c.want, c.instr, "got %08x, want %08x", c.instr, c.want)
		})
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder().Emit(NOP(), RET())
	require.Equal(t, 8, b.PC())
	require.Equal(t, []byte{0x13, 0, 0, 0, 0x67, 0x80, 0, 0}, b.Bytes())

	_, err := b.Org(10)
	require.NoError(t, err)
	b.Emit(RET())
	require.Equal(t, 14, b.PC())
	require.Equal(t, []byte{0, 0}, b.Bytes()[8:10])

	_, err = b.Org(4)
	require.ErrorContains(t, err, "cannot move back")

	// Bytes returns a copy
	img := b.Bytes()
	img[0] = 0xFF
	require.Equal(t, byte(0x13), b.Bytes()[0])

	require.Equal(t, NewBuilder().Emit(NOP(), RET()).Bytes()[:8], Program(NOP(), RET()))
}
