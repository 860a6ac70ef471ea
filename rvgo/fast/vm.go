package fast

import (
	"fmt"

	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

// Step executes a single instruction word located at pc and returns the next pc.
// Register and memory side effects are applied through regs and bus.
// The engine keeps no state between calls.
func Step(instr uint32, regs *Registers, pc uint64, bus MemoryBus) (uint64, error) {
	decoded, err := Decode(instr)
	if err != nil {
		return 0, err
	}
	nextPC := pc + riscv.InstrSize

	switch inst := decoded.(type) {
	case IType:
		switch inst.Opcode {
		case riscv.OpLoad:
			err = execLoad(inst, regs, bus)
		case riscv.OpImm:
			err = execOpImm(inst, regs)
		case riscv.OpImm32:
			err = execOpImm32(inst, regs)
		case riscv.OpJalr:
			if inst.Funct3 != 0 {
				return 0, &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
			}
			// rs1 is read before rd is written, so rd == rs1 still jumps to the old value
			target := (regs.Read(inst.Rs1) + inst.Imm) &^ 1
			regs.Write(inst.Rd, pc+riscv.InstrSize)
			nextPC = target
		}
	case RType:
		switch inst.Opcode {
		case riscv.OpReg:
			err = execOp(inst, regs)
		case riscv.OpReg32:
			err = execOp32(inst, regs)
		}
	case SType:
		err = execStore(inst, regs, bus)
	case BType:
		var taken bool
		taken, err = branchTaken(inst, regs)
		if taken {
			nextPC = pc + inst.Imm
		}
	case UType:
		switch inst.Opcode {
		case riscv.OpLui: // LUI = Load upper immediate
			regs.Write(inst.Rd, inst.Imm)
		case riscv.OpAuipc: // AUIPC = Add upper immediate to PC
			regs.Write(inst.Rd, pc+inst.Imm)
		}
	case JType: // JAL = Jump and link
		regs.Write(inst.Rd, pc+riscv.InstrSize)
		nextPC = pc + inst.Imm
	}
	if err != nil {
		return 0, err
	}
	return nextPC, nil
}

func execLoad(inst IType, regs *Registers, bus MemoryBus) error {
	addr := regs.Read(inst.Rs1) + inst.Imm
	var size, signBits uint64
	switch inst.Funct3 {
	case 0b000: // LB
		size, signBits = 8, 8
	case 0b001: // LH
		size, signBits = 16, 16
	case 0b010: // LW
		size, signBits = 32, 32
	case 0b011: // LD
		size, signBits = 64, 64
	case 0b100: // LBU
		size = 8
	case 0b101: // LHU
		size = 16
	case 0b110: // LWU
		size = 32
	default:
		return &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
	}
	v, err := bus.Load(addr, size)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if signBits != 0 {
		v = SignExtend(v, uint(signBits))
	}
	regs.Write(inst.Rd, v)
	return nil
}

func execStore(inst SType, regs *Registers, bus MemoryBus) error {
	addr := regs.Read(inst.Rs1) + inst.Imm
	var size uint64
	switch inst.Funct3 {
	case 0b000: // SB
		size = 8
	case 0b001: // SH
		size = 16
	case 0b010: // SW
		size = 32
	case 0b011: // SD
		size = 64
	default:
		return &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
	}
	if err := bus.Store(addr, size, regs.Read(inst.Rs2)); err != nil {
		return fmt.Errorf("store failed: %w", err)
	}
	return nil
}

func execOpImm(inst IType, regs *Registers) error {
	rs1Value := regs.Read(inst.Rs1)
	imm := inst.Imm
	shamt := imm & 0x3F // lower 6 bits in 64 bit mode
	var rdValue uint64
	switch inst.Funct3 {
	case 0b000: // ADDI
		rdValue = rs1Value + imm
	case 0b001: // SLLI
		if sel := uint8((imm >> 6) & 0x3F); sel != 0 {
			return &UnknownFunct7Error{Opcode: inst.Opcode, Funct3: inst.Funct3, Funct7: sel, Bits: 6, Immediate: true}
		}
		rdValue = rs1Value << shamt
	case 0b010: // SLTI
		rdValue = slt64(rs1Value, imm)
	case 0b011: // SLTIU
		rdValue = lt64(rs1Value, imm)
	case 0b100: // XORI
		rdValue = rs1Value ^ imm
	case 0b101: // SR~
		// in rv64i the top 6 bits select the shift type
		switch sel := uint8((imm >> 6) & 0x3F); sel {
		case 0b000000: // SRLI
			rdValue = rs1Value >> shamt
		case 0b010000: // SRAI
			rdValue = sar64(shamt, rs1Value)
		default:
			return &UnknownFunct7Error{Opcode: inst.Opcode, Funct3: inst.Funct3, Funct7: sel, Bits: 6, Immediate: true}
		}
	case 0b110: // ORI
		rdValue = rs1Value | imm
	case 0b111: // ANDI
		rdValue = rs1Value & imm
	}
	regs.Write(inst.Rd, rdValue)
	return nil
}

func execOpImm32(inst IType, regs *Registers) error {
	rs1Value := regs.Read(inst.Rs1)
	imm := inst.Imm
	shamt := imm & 0x1F
	sel := uint8((imm >> 5) & 0x7F)
	var rdValue uint64
	switch inst.Funct3 {
	case 0b000: // ADDIW
		rdValue = mask32Signed64(rs1Value + imm)
	case 0b001: // SLLIW
		if sel != 0 {
			return &UnknownFunct7Error{Opcode: inst.Opcode, Funct3: inst.Funct3, Funct7: sel, Bits: 7, Immediate: true}
		}
		rdValue = mask32Signed64(rs1Value << shamt)
	case 0b101: // SR~W
		switch sel {
		case riscv.Funct7Zero: // SRLIW
			rdValue = mask32Signed64(uint64(uint32(rs1Value) >> shamt))
		case riscv.Funct7Alt: // SRAIW
			rdValue = mask32Signed64(uint64(int32(uint32(rs1Value)) >> shamt))
		default:
			return &UnknownFunct7Error{Opcode: inst.Opcode, Funct3: inst.Funct3, Funct7: sel, Bits: 7, Immediate: true}
		}
	default:
		return &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
	}
	regs.Write(inst.Rd, rdValue)
	return nil
}

func execOp(inst RType, regs *Registers) error {
	rs1Value := regs.Read(inst.Rs1)
	rs2Value := regs.Read(inst.Rs2)
	shamt := rs2Value & 0x3F // only the low 6 bits are considered in RV64I
	var rdValue uint64
	switch inst.Funct3 {
	case 0b000: // ADD/SUB
		switch inst.Funct7 {
		case riscv.Funct7Zero: // ADD
			rdValue = rs1Value + rs2Value
		case riscv.Funct7Alt: // SUB
			rdValue = rs1Value - rs2Value
		default:
			return unknownFunct7(inst)
		}
	case 0b101: // SR~
		switch inst.Funct7 {
		case riscv.Funct7Zero: // SRL: fill with zeroes
			rdValue = rs1Value >> shamt
		case riscv.Funct7Alt: // SRA: sign bit is extended
			rdValue = sar64(shamt, rs1Value)
		default:
			return unknownFunct7(inst)
		}
	default:
		if inst.Funct7 != riscv.Funct7Zero {
			return unknownFunct7(inst)
		}
		switch inst.Funct3 {
		case 0b001: // SLL
			rdValue = rs1Value << shamt
		case 0b010: // SLT
			rdValue = slt64(rs1Value, rs2Value)
		case 0b011: // SLTU
			rdValue = lt64(rs1Value, rs2Value)
		case 0b100: // XOR
			rdValue = rs1Value ^ rs2Value
		case 0b110: // OR
			rdValue = rs1Value | rs2Value
		case 0b111: // AND
			rdValue = rs1Value & rs2Value
		}
	}
	regs.Write(inst.Rd, rdValue)
	return nil
}

func execOp32(inst RType, regs *Registers) error {
	rs1Value := regs.Read(inst.Rs1)
	rs2Value := regs.Read(inst.Rs2)
	shamt := rs2Value & 0x1F
	var rdValue uint64
	switch inst.Funct3 {
	case 0b000: // ADDW/SUBW
		switch inst.Funct7 {
		case riscv.Funct7Zero: // ADDW
			rdValue = mask32Signed64(rs1Value + rs2Value)
		case riscv.Funct7Alt: // SUBW
			rdValue = mask32Signed64(rs1Value - rs2Value)
		default:
			return unknownFunct7(inst)
		}
	case 0b001: // SLLW
		if inst.Funct7 != riscv.Funct7Zero {
			return unknownFunct7(inst)
		}
		rdValue = mask32Signed64(rs1Value << shamt)
	case 0b101: // SR~W
		switch inst.Funct7 {
		case riscv.Funct7Zero: // SRLW
			rdValue = mask32Signed64(uint64(uint32(rs1Value) >> shamt))
		case riscv.Funct7Alt: // SRAW
			rdValue = mask32Signed64(uint64(int32(uint32(rs1Value)) >> shamt))
		default:
			return unknownFunct7(inst)
		}
	default:
		return &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
	}
	regs.Write(inst.Rd, rdValue)
	return nil
}

func unknownFunct7(inst RType) error {
	return &UnknownFunct7Error{Opcode: inst.Opcode, Funct3: inst.Funct3, Funct7: inst.Funct7, Bits: 7}
}

func branchTaken(inst BType, regs *Registers) (bool, error) {
	rs1Value := regs.Read(inst.Rs1)
	rs2Value := regs.Read(inst.Rs2)
	switch inst.Funct3 {
	case 0b000: // BEQ
		return rs1Value == rs2Value, nil
	case 0b001: // BNE
		return rs1Value != rs2Value, nil
	case 0b100: // BLT
		return int64(rs1Value) < int64(rs2Value), nil
	case 0b101: // BGE
		return int64(rs1Value) >= int64(rs2Value), nil
	case 0b110: // BLTU
		return rs1Value < rs2Value, nil
	case 0b111: // BGEU
		return rs1Value >= rs2Value, nil
	default:
		return false, &UnknownFunct3Error{Opcode: inst.Opcode, Funct3: inst.Funct3}
	}
}
