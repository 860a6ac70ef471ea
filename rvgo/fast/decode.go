package fast

import "github.com/yzays8/riscv-emu/rvgo/riscv"

// Instruction is one of the six RV64I encoding shapes: RType, IType, SType, BType, UType or JType.
type Instruction interface {
	Op() uint8
}

// RType is the register-register layout.
type RType struct {
	Opcode uint8
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
	Funct7 uint8
}

// IType is the register-immediate layout, used by loads, immediate arithmetic and JALR.
type IType struct {
	Opcode uint8
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Imm    uint64 // sign-extended imm[11:0]
}

// SType is the store layout; the immediate is split over two fields.
type SType struct {
	Opcode uint8
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
	Imm    uint64 // sign-extended imm[11:5|4:0]
}

// BType is the branch layout; the immediate is split over four fields.
type BType struct {
	Opcode uint8
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
	Imm    uint64 // sign-extended imm[12|11|10:5|4:1], bit 0 is always zero
}

// UType is the upper-immediate layout.
type UType struct {
	Opcode uint8
	Rd     uint8
	Imm    uint64 // imm[31:12] placed at bit 12, sign-extended from bit 31
}

// JType is the jump layout; the immediate is split over four fields.
type JType struct {
	Opcode uint8
	Rd     uint8
	Imm    uint64 // sign-extended imm[20|19:12|11|10:1], bit 0 is always zero
}

func (i RType) Op() uint8 { return i.Opcode }
func (i IType) Op() uint8 { return i.Opcode }
func (i SType) Op() uint8 { return i.Opcode }
func (i BType) Op() uint8 { return i.Opcode }
func (i UType) Op() uint8 { return i.Opcode }
func (i JType) Op() uint8 { return i.Opcode }

// Decode maps a raw instruction word to its structured layout.
// The opcode alone selects the layout; funct fields are validated by the engine.
func Decode(instr uint32) (Instruction, error) {
	opcode := parseOpcode(instr)
	switch opcode {
	case riscv.OpReg, riscv.OpReg32:
		return RType{
			Opcode: opcode,
			Rd:     parseRd(instr),
			Funct3: parseFunct3(instr),
			Rs1:    parseRs1(instr),
			Rs2:    parseRs2(instr),
			Funct7: parseFunct7(instr),
		}, nil
	case riscv.OpLoad, riscv.OpImm, riscv.OpImm32, riscv.OpJalr:
		return IType{
			Opcode: opcode,
			Rd:     parseRd(instr),
			Funct3: parseFunct3(instr),
			Rs1:    parseRs1(instr),
			Imm:    parseImmTypeI(instr),
		}, nil
	case riscv.OpStore:
		return SType{
			Opcode: opcode,
			Funct3: parseFunct3(instr),
			Rs1:    parseRs1(instr),
			Rs2:    parseRs2(instr),
			Imm:    parseImmTypeS(instr),
		}, nil
	case riscv.OpBranch:
		return BType{
			Opcode: opcode,
			Funct3: parseFunct3(instr),
			Rs1:    parseRs1(instr),
			Rs2:    parseRs2(instr),
			Imm:    parseImmTypeB(instr),
		}, nil
	case riscv.OpLui, riscv.OpAuipc:
		return UType{
			Opcode: opcode,
			Rd:     parseRd(instr),
			Imm:    parseImmTypeU(instr),
		}, nil
	case riscv.OpJal:
		return JType{
			Opcode: opcode,
			Rd:     parseRd(instr),
			Imm:    parseImmTypeJ(instr),
		}, nil
	default:
		return nil, &UnknownOpcodeError{Opcode: opcode}
	}
}

// Field extraction. Each helper takes exactly the documented bit range.

func parseOpcode(instr uint32) uint8 {
	return uint8(instr & 0x7F)
}

func parseRd(instr uint32) uint8 {
	return uint8((instr >> 7) & 0x1F)
}

func parseFunct3(instr uint32) uint8 {
	return uint8((instr >> 12) & 0x7)
}

func parseRs1(instr uint32) uint8 {
	return uint8((instr >> 15) & 0x1F)
}

func parseRs2(instr uint32) uint8 {
	return uint8((instr >> 20) & 0x1F)
}

func parseFunct7(instr uint32) uint8 {
	return uint8(instr >> 25)
}

func parseImmTypeI(instr uint32) uint64 {
	return SignExtend(uint64(instr>>20), 12)
}

func parseImmTypeS(instr uint32) uint64 {
	imm := (instr>>25)<<5 | (instr>>7)&0x1F
	return SignExtend(uint64(imm), 12)
}

func parseImmTypeB(instr uint32) uint64 {
	imm := (instr>>31)<<12 |
		((instr>>7)&0x1)<<11 |
		((instr>>25)&0x3F)<<5 |
		((instr>>8)&0xF)<<1
	return SignExtend(uint64(imm), 13)
}

func parseImmTypeU(instr uint32) uint64 {
	return SignExtend(uint64(instr&0xFFFF_F000), 32)
}

func parseImmTypeJ(instr uint32) uint64 {
	imm := (instr>>31)<<20 |
		((instr>>12)&0xFF)<<12 |
		((instr>>20)&0x1)<<11 |
		((instr>>21)&0x3FF)<<1
	return SignExtend(uint64(imm), 21)
}
