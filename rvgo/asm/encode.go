// Package asm encodes RV64I instructions into machine words and lays them out as flat
// program images. It is the inverse of the decoder in package fast and is used to build
// test programs and the built-in fixtures.
package asm

import "github.com/yzays8/riscv-emu/rvgo/riscv"

func EncodeR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | opcode&0x7F
}

// EncodeI encodes a 12-bit signed immediate. Out of range immediates are truncated.
func EncodeI(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	return u<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | opcode&0x7F
}

func EncodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	return (u>>5)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (u&0x1F)<<7 | opcode&0x7F
}

// EncodeB encodes a 13-bit signed, even branch offset: [12|10:5] in the top, [4:1|11] in the rd slot.
func EncodeB(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>12)&0x1)<<31 | ((u>>5)&0x3F)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 |
		(funct3&0x7)<<12 | ((u>>1)&0xF)<<8 | ((u>>11)&0x1)<<7 | opcode&0x7F
}

// EncodeU takes the 20 upper immediate bits, as written in assembly (lui a0, 42).
func EncodeU(opcode, rd, imm20 uint32) uint32 {
	return (imm20&0xFFFFF)<<12 | (rd&0x1F)<<7 | opcode&0x7F
}

// EncodeJ encodes a 21-bit signed, even jump offset as [20|10:1|11|19:12].
func EncodeJ(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>20)&0x1)<<31 | ((u>>1)&0x3FF)<<21 | ((u>>11)&0x1)<<20 | ((u>>12)&0xFF)<<12 |
		(rd&0x1F)<<7 | opcode&0x7F
}

// Register arguments use the riscv.Reg* indices.
type Reg = uint32

func load(funct3 uint32) func(rd, rs1 Reg, imm int32) uint32 {
	return func(rd, rs1 Reg, imm int32) uint32 {
		return EncodeI(riscv.OpLoad, rd, funct3, rs1, imm)
	}
}

func store(funct3 uint32) func(rs2, rs1 Reg, imm int32) uint32 {
	return func(rs2, rs1 Reg, imm int32) uint32 {
		return EncodeS(riscv.OpStore, funct3, rs1, rs2, imm)
	}
}

func branch(funct3 uint32) func(rs1, rs2 Reg, offset int32) uint32 {
	return func(rs1, rs2 Reg, offset int32) uint32 {
		return EncodeB(riscv.OpBranch, funct3, rs1, rs2, offset)
	}
}

func opImm(opcode, funct3 uint32) func(rd, rs1 Reg, imm int32) uint32 {
	return func(rd, rs1 Reg, imm int32) uint32 {
		return EncodeI(opcode, rd, funct3, rs1, imm)
	}
}

// shiftImm places the selector above the shift amount: imm[11:6] for 64-bit shifts
// and imm[11:5] for the W variants.
func shiftImm(opcode, funct3, sel, shamtBits uint32) func(rd, rs1 Reg, shamt uint32) uint32 {
	return func(rd, rs1 Reg, shamt uint32) uint32 {
		imm := sel<<shamtBits | shamt&(1<<shamtBits-1)
		return EncodeI(opcode, rd, funct3, rs1, int32(imm))
	}
}

func op(opcode, funct3, funct7 uint32) func(rd, rs1, rs2 Reg) uint32 {
	return func(rd, rs1, rs2 Reg) uint32 {
		return EncodeR(opcode, rd, funct3, rs1, rs2, funct7)
	}
}

// Loads: LB rd, imm(rs1).
var (
	LB  = load(0b000)
	LH  = load(0b001)
	LW  = load(0b010)
	LD  = load(0b011)
	LBU = load(0b100)
	LHU = load(0b101)
	LWU = load(0b110)
)

// Stores: SB rs2, imm(rs1).
var (
	SB = store(0b000)
	SH = store(0b001)
	SW = store(0b010)
	SD = store(0b011)
)

var (
	BEQ  = branch(0b000)
	BNE  = branch(0b001)
	BLT  = branch(0b100)
	BGE  = branch(0b101)
	BLTU = branch(0b110)
	BGEU = branch(0b111)
)

var (
	ADDI  = opImm(riscv.OpImm, 0b000)
	SLTI  = opImm(riscv.OpImm, 0b010)
	SLTIU = opImm(riscv.OpImm, 0b011)
	XORI  = opImm(riscv.OpImm, 0b100)
	ORI   = opImm(riscv.OpImm, 0b110)
	ANDI  = opImm(riscv.OpImm, 0b111)
	SLLI  = shiftImm(riscv.OpImm, 0b001, 0b000000, 6)
	SRLI  = shiftImm(riscv.OpImm, 0b101, 0b000000, 6)
	SRAI  = shiftImm(riscv.OpImm, 0b101, 0b010000, 6)

	ADDIW = opImm(riscv.OpImm32, 0b000)
	SLLIW = shiftImm(riscv.OpImm32, 0b001, riscv.Funct7Zero, 5)
	SRLIW = shiftImm(riscv.OpImm32, 0b101, riscv.Funct7Zero, 5)
	SRAIW = shiftImm(riscv.OpImm32, 0b101, riscv.Funct7Alt, 5)
)

var (
	ADD  = op(riscv.OpReg, 0b000, riscv.Funct7Zero)
	SUB  = op(riscv.OpReg, 0b000, riscv.Funct7Alt)
	SLL  = op(riscv.OpReg, 0b001, riscv.Funct7Zero)
	SLT  = op(riscv.OpReg, 0b010, riscv.Funct7Zero)
	SLTU = op(riscv.OpReg, 0b011, riscv.Funct7Zero)
	XOR  = op(riscv.OpReg, 0b100, riscv.Funct7Zero)
	SRL  = op(riscv.OpReg, 0b101, riscv.Funct7Zero)
	SRA  = op(riscv.OpReg, 0b101, riscv.Funct7Alt)
	OR   = op(riscv.OpReg, 0b110, riscv.Funct7Zero)
	AND  = op(riscv.OpReg, 0b111, riscv.Funct7Zero)

	ADDW = op(riscv.OpReg32, 0b000, riscv.Funct7Zero)
	SUBW = op(riscv.OpReg32, 0b000, riscv.Funct7Alt)
	SLLW = op(riscv.OpReg32, 0b001, riscv.Funct7Zero)
	SRLW = op(riscv.OpReg32, 0b101, riscv.Funct7Zero)
	SRAW = op(riscv.OpReg32, 0b101, riscv.Funct7Alt)
)

func LUI(rd Reg, imm20 uint32) uint32 {
	return EncodeU(riscv.OpLui, rd, imm20)
}

func AUIPC(rd Reg, imm20 uint32) uint32 {
	return EncodeU(riscv.OpAuipc, rd, imm20)
}

func JAL(rd Reg, offset int32) uint32 {
	return EncodeJ(riscv.OpJal, rd, offset)
}

func JALR(rd, rs1 Reg, imm int32) uint32 {
	return EncodeI(riscv.OpJalr, rd, 0b000, rs1, imm)
}

// Pseudo instructions.

func NOP() uint32 {
	return ADDI(riscv.RegZero, riscv.RegZero, 0)
}

func MV(rd, rs Reg) uint32 {
	return ADDI(rd, rs, 0)
}

func LI(rd Reg, imm int32) uint32 {
	return ADDI(rd, riscv.RegZero, imm)
}

// RET jumps to ra without linking.
func RET() uint32 {
	return JALR(riscv.RegZero, riscv.RegRA, 0)
}

func J(offset int32) uint32 {
	return JAL(riscv.RegZero, offset)
}
