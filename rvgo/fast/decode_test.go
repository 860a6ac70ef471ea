package fast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yzays8/riscv-emu/rvgo/asm"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

func TestSignExtend(t *testing.T) {
	cases := []struct {
		v    uint64
		bits uint
		want int64
	}{
		{0x800, 12, -2048},
		{0x7FF, 12, 2047},
		{0xFFF, 12, -1},
		{0x1000, 13, -4096},
		{0x80000, 20, -524288},
		{0x100000, 21, -1048576},
		{0x8000_0000, 32, -2147483648},
		{0x7FFF_FFFF, 32, 2147483647},
		{0x1_0000_0001, 32, 1},
		{0xFFFF_FFFF_FFFF_FFFE, 64, -2},
		{0x42, 64, 0x42},
	}
	for _, c := range cases {
		require.Equal(t, c.want, int64(SignExtend(c.v, c.bits)), "SignExtend(%#x, %d)", c.v, c.bits)
	}
}

func TestDecodeShapes(t *testing.T) {
	cases := []struct {
		desc  string
		instr uint32
		want  Instruction
	}{
		{"add", asm.ADD(riscv.RegT6, riscv.RegT5, riscv.RegT4),
			RType{Opcode: riscv.OpReg, Rd: riscv.RegT6, Rs1: riscv.RegT5, Rs2: riscv.RegT4}},
		{"sraw", asm.SRAW(riscv.RegA0, riscv.RegA1, riscv.RegA2),
			RType{Opcode: riscv.OpReg32, Rd: riscv.RegA0, Funct3: 0b101, Rs1: riscv.RegA1, Rs2: riscv.RegA2, Funct7: riscv.Funct7Alt}},
		{"addi negative", asm.ADDI(riscv.RegSP, riscv.RegSP, -16),
			IType{Opcode: riscv.OpImm, Rd: riscv.RegSP, Rs1: riscv.RegSP, Imm: SignExtend(0xFF0, 12)}},
		{"ld", asm.LD(riscv.RegT0, riscv.RegSP, 8),
			IType{Opcode: riscv.OpLoad, Rd: riscv.RegT0, Funct3: 0b011, Rs1: riscv.RegSP, Imm: 8}},
		{"jalr", asm.RET(),
			IType{Opcode: riscv.OpJalr, Rs1: riscv.RegRA}},
		{"sd split immediate", asm.SD(riscv.RegT0, riscv.RegSP, -40),
			SType{Opcode: riscv.OpStore, Funct3: 0b011, Rs1: riscv.RegSP, Rs2: riscv.RegT0, Imm: neg(-40)}},
		{"beq backwards", asm.BEQ(riscv.RegT0, riscv.RegZero, -20),
			BType{Opcode: riscv.OpBranch, Rs1: riscv.RegT0, Imm: neg(-20)}},
		{"bgeu max forward", asm.BGEU(riscv.RegA0, riscv.RegA1, 4094),
			BType{Opcode: riscv.OpBranch, Funct3: 0b111, Rs1: riscv.RegA0, Rs2: riscv.RegA1, Imm: 4094}},
		{"lui", asm.LUI(riscv.RegA0, 42),
			UType{Opcode: riscv.OpLui, Rd: riscv.RegA0, Imm: 42 << 12}},
		{"lui sign", asm.LUI(riscv.RegA0, 0x80000),
			UType{Opcode: riscv.OpLui, Rd: riscv.RegA0, Imm: 0xFFFF_FFFF_8000_0000}},
		{"auipc", asm.AUIPC(riscv.RegA0, 42),
			UType{Opcode: riscv.OpAuipc, Rd: riscv.RegA0, Imm: 42 << 12}},
		{"jal", asm.JAL(riscv.RegA0, 42),
			JType{Opcode: riscv.OpJal, Rd: riscv.RegA0, Imm: 42}},
		{"jal min", asm.JAL(riscv.RegZero, -1<<20),
			JType{Opcode: riscv.OpJal, Imm: neg(-1 << 20)}},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			got, err := Decode(c.instr)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
			require.Equal(t, c.want.Op(), got.Op())
		})
	}
}

func TestDecodeKnownWords(t *testing.T) {
	// words taken from a real toolchain
	got, err := Decode(0x02a00513) // addi a0, zero, 42
	require.NoError(t, err)
	require.Equal(t, IType{Opcode: riscv.OpImm, Rd: riscv.RegA0, Imm: 42}, got)

	got, err = Decode(0x00008067) // ret
	require.NoError(t, err)
	require.Equal(t, IType{Opcode: riscv.OpJalr, Rs1: riscv.RegRA}, got)

	require.Equal(t, uint32(0x02a00513), asm.LI(riscv.RegA0, 42))
	require.Equal(t, uint32(0x00008067), asm.RET())
}

func TestDecodeUnknownOpcode(t *testing.T) {
	for _, instr := range []uint32{0x0000_0000, 0xFFFF_FFFF, 0x0000_000F, 0x0000_0073} {
		_, err := Decode(instr)
		var opErr *UnknownOpcodeError
		require.ErrorAs(t, err, &opErr)
		require.Equal(t, uint8(instr&0x7F), opErr.Opcode)
	}
	require.EqualError(t, &UnknownOpcodeError{Opcode: 0b1110011}, "unknown opcode: 0b1110011")
}

func TestDecodeDeterministic(t *testing.T) {
	instr := asm.BLT(riscv.RegA0, riscv.RegA1, -2048)
	a, err := Decode(instr)
	require.NoError(t, err)
	b, err := Decode(instr)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
