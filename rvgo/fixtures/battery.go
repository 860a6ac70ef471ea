package fixtures

import (
	"github.com/yzays8/riscv-emu/rvgo/asm"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

const base = riscv.DramBase

func u64(v int64) uint64 {
	return uint64(v)
}

// All returns the built-in fixture battery in a stable order.
// Each program halts by returning through ra, which starts out as zero.
func All() []Fixture {
	return []Fixture{
		addAddi(), lui(), auipc(), jal(), storeLoad(), slt(),
		xor(), or(), and(), sll(), sraSrl(), op(), fib(),
		branch(), word(), loadStoreWidths(), jalr(),
	}
}

func addAddi() Fixture {
	return Fixture{
		Name: "add-addi",
		Program: asm.Program(
			asm.ADDI(riscv.RegT4, riscv.RegZero, 5),
			asm.ADDI(riscv.RegT5, riscv.RegZero, 37),
			asm.ADD(riscv.RegT6, riscv.RegT5, riscv.RegT4),
			asm.RET(),
		),
		Expect: []Expect{{"t6", 42}},
	}
}

func lui() Fixture {
	return Fixture{
		Name:    "lui",
		Program: asm.Program(asm.LUI(riscv.RegA0, 42), asm.RET()),
		Expect:  []Expect{{"a0", 42 << 12}},
	}
}

func auipc() Fixture {
	return Fixture{
		Name:    "auipc",
		Program: asm.Program(asm.AUIPC(riscv.RegA0, 42), asm.RET()),
		Expect:  []Expect{{"a0", base + 42<<12}},
	}
}

func jal() Fixture {
	b := asm.NewBuilder().Emit(asm.JAL(riscv.RegA0, 42))
	org(b, 42).Emit(asm.RET())
	return Fixture{
		Name:    "jal",
		Program: b.Bytes(),
		Expect:  []Expect{{"a0", base + 4}, {PC, base + 42}},
	}
}

func storeLoad() Fixture {
	return Fixture{
		Name: "store-load",
		Program: asm.Program(
			asm.ADDI(riscv.RegT0, riscv.RegZero, 256),
			asm.ADDI(riscv.RegSP, riscv.RegSP, -16),
			asm.SD(riscv.RegT0, riscv.RegSP, 8),
			asm.LB(riscv.RegT1, riscv.RegSP, 8),
			asm.LH(riscv.RegT2, riscv.RegSP, 8),
			asm.RET(),
		),
		Expect: []Expect{{"t1", 0}, {"t2", 256}},
	}
}

func slt() Fixture {
	return Fixture{
		Name: "slt",
		Program: asm.Program(
			asm.ADDI(riscv.RegT0, riscv.RegZero, 14),
			asm.ADDI(riscv.RegT1, riscv.RegZero, 24),
			asm.SLT(riscv.RegT2, riscv.RegT0, riscv.RegT1),
			asm.SLTI(riscv.RegT3, riscv.RegT0, 42),
			asm.SLTIU(riscv.RegT4, riscv.RegT0, 84),
			asm.RET(),
		),
		Expect: []Expect{{"t2", 1}, {"t3", 1}, {"t4", 1}},
	}
}

func xor() Fixture {
	return Fixture{
		Name: "xor",
		Program: asm.Program(
			asm.ADDI(riscv.RegA0, riscv.RegZero, 0b10),
			asm.XORI(riscv.RegA1, riscv.RegA0, 0b01),
			asm.XOR(riscv.RegA2, riscv.RegA1, riscv.RegA1),
			asm.RET(),
		),
		Expect: []Expect{{"a1", 3}, {"a2", 0}},
	}
}

func or() Fixture {
	return Fixture{
		Name: "or",
		Program: asm.Program(
			asm.ADDI(riscv.RegA0, riscv.RegZero, 0b10),
			asm.ORI(riscv.RegA1, riscv.RegA0, 0b01),
			asm.OR(riscv.RegA2, riscv.RegA0, riscv.RegA0),
			asm.RET(),
		),
		Expect: []Expect{{"a1", 0b11}, {"a2", 0b10}},
	}
}

func and() Fixture {
	return Fixture{
		Name: "and",
		Program: asm.Program(
			asm.ADDI(riscv.RegA0, riscv.RegZero, 0b10),
			asm.ANDI(riscv.RegA1, riscv.RegA0, 0b11),
			asm.AND(riscv.RegA2, riscv.RegA0, riscv.RegA0),
			asm.RET(),
		),
		Expect: []Expect{{"a1", 0b10}, {"a2", 0b10}},
	}
}

func sll() Fixture {
	return Fixture{
		Name: "sll",
		Program: asm.Program(
			asm.ADDI(riscv.RegA0, riscv.RegZero, 1),
			asm.ADDI(riscv.RegA1, riscv.RegZero, 5),
			asm.SLL(riscv.RegA2, riscv.RegA0, riscv.RegA1),
			asm.SLLI(riscv.RegA3, riscv.RegA0, 5),
			asm.ADDI(riscv.RegS0, riscv.RegZero, 64),
			asm.SLL(riscv.RegA4, riscv.RegA0, riscv.RegS0), // shift amount wraps to 0
			asm.RET(),
		),
		Expect: []Expect{{"a2", 1 << 5}, {"a3", 1 << 5}, {"a4", 1}},
	}
}

func sraSrl() Fixture {
	return Fixture{
		Name: "sra-srl",
		Program: asm.Program(
			asm.ADDI(riscv.RegA0, riscv.RegZero, -8),
			asm.ADDI(riscv.RegA1, riscv.RegZero, 1),
			asm.SRA(riscv.RegA2, riscv.RegA0, riscv.RegA1),
			asm.SRAI(riscv.RegA3, riscv.RegA0, 2),
			asm.SRLI(riscv.RegA4, riscv.RegA0, 2),
			asm.SRL(riscv.RegA5, riscv.RegA0, riscv.RegA1),
			asm.RET(),
		),
		Expect: []Expect{
			{"a2", u64(-4)},
			{"a3", u64(-2)},
			{"a4", u64(-8) >> 2},
			{"a5", u64(-8) >> 1},
		},
	}
}

func op() Fixture {
	return Fixture{
		Name: "op",
		Program: asm.Program(
			asm.LUI(riscv.RegA0, 0x7f000),
			asm.ADDI(riscv.RegA1, riscv.RegZero, 42),
			asm.ADDW(riscv.RegA2, riscv.RegA0, riscv.RegA1),
			asm.RET(),
		),
		Expect: []Expect{{"a2", 0x7f00002a}},
	}
}

// fib computes the 10th fibonacci number in a0 with a counted loop.
func fib() Fixture {
	return Fixture{
		Name: "fib",
		Program: asm.Program(
			asm.LI(riscv.RegA0, 0),
			asm.LI(riscv.RegA1, 1),
			asm.LI(riscv.RegT0, 10),
			// loop:
			asm.BEQ(riscv.RegT0, riscv.RegZero, 24), // to done
			asm.ADD(riscv.RegT1, riscv.RegA0, riscv.RegA1),
			asm.MV(riscv.RegA0, riscv.RegA1),
			asm.MV(riscv.RegA1, riscv.RegT1),
			asm.ADDI(riscv.RegT0, riscv.RegT0, -1),
			asm.J(-20), // to loop
			// done:
			asm.RET(),
		),
		Expect: []Expect{{"a0", 55}},
	}
}

// branch checks every predicate once taken and once not taken.
// A taken branch skips a failure counter bump in a1; a fall-through bumps a0.
func branch() Fixture {
	const t0, t1 = riscv.RegT0, riscv.RegT1
	taken := []uint32{
		asm.BEQ(t0, t0, 8),
		asm.BNE(t0, t1, 8),
		asm.BLT(t0, t1, 8),
		asm.BGE(t1, t0, 8),
		asm.BLTU(t1, t0, 8),
		asm.BGEU(t0, t1, 8),
	}
	notTaken := []uint32{
		asm.BEQ(t0, t1, 8),
		asm.BNE(t1, t1, 8),
		asm.BLT(t1, t0, 8),
		asm.BGE(t0, t1, 8),
		asm.BLTU(t0, t1, 8),
		asm.BGEU(t1, t0, 8),
	}
	b := asm.NewBuilder().Emit(
		asm.LI(t0, -1),
		asm.LI(t1, 1),
	)
	for _, instr := range taken {
		b.Emit(instr, asm.ADDI(riscv.RegA1, riscv.RegA1, 1))
	}
	for _, instr := range notTaken {
		b.Emit(instr, asm.ADDI(riscv.RegA0, riscv.RegA0, 1))
	}
	b.Emit(asm.RET())
	return Fixture{
		Name:    "branch",
		Program: b.Bytes(),
		Expect:  []Expect{{"a0", 6}, {"a1", 0}},
	}
}

func word() Fixture {
	return Fixture{
		Name: "word",
		Program: asm.Program(
			asm.LUI(riscv.RegT0, 0x80000),
			asm.ADDIW(riscv.RegA0, riscv.RegT0, -1),
			asm.SLLIW(riscv.RegA1, riscv.RegA0, 1),
			asm.SRLIW(riscv.RegA2, riscv.RegT0, 4),
			asm.SRAIW(riscv.RegA3, riscv.RegT0, 4),
			asm.LI(riscv.RegT1, 1),
			asm.SUBW(riscv.RegA4, riscv.RegZero, riscv.RegT1),
			asm.LI(riscv.RegT2, 31),
			asm.SLLW(riscv.RegA5, riscv.RegT1, riscv.RegT2),
			asm.SRLW(riscv.RegA6, riscv.RegT0, riscv.RegT2),
			asm.SRAW(riscv.RegA7, riscv.RegT0, riscv.RegT2),
			asm.RET(),
		),
		Expect: []Expect{
			{"t0", 0xFFFF_FFFF_8000_0000},
			{"a0", 0x7FFF_FFFF},
			{"a1", u64(-2)},
			{"a2", 0x0800_0000},
			{"a3", 0xFFFF_FFFF_F800_0000},
			{"a4", u64(-1)},
			{"a5", 0xFFFF_FFFF_8000_0000},
			{"a6", 1},
			{"a7", u64(-1)},
		},
	}
}

func loadStoreWidths() Fixture {
	const sp = riscv.RegSP
	return Fixture{
		Name: "load-store",
		Program: asm.Program(
			asm.ADDI(sp, sp, -32),
			asm.LI(riscv.RegT0, -2),
			asm.SB(riscv.RegT0, sp, 0),
			asm.SH(riscv.RegT0, sp, 8),
			asm.SW(riscv.RegT0, sp, 16),
			asm.SD(riscv.RegT0, sp, 24),
			asm.LB(riscv.RegA0, sp, 0),
			asm.LBU(riscv.RegA1, sp, 0),
			asm.LH(riscv.RegA2, sp, 8),
			asm.LHU(riscv.RegA3, sp, 8),
			asm.LW(riscv.RegA4, sp, 16),
			asm.LWU(riscv.RegA5, sp, 16),
			asm.LD(riscv.RegA6, sp, 24),
			asm.LBU(riscv.RegA7, sp, 1),
			asm.RET(),
		),
		Expect: []Expect{
			{"a0", u64(-2)},
			{"a1", 0xFE},
			{"a2", u64(-2)},
			{"a3", 0xFFFE},
			{"a4", u64(-2)},
			{"a5", 0xFFFF_FFFE},
			{"a6", u64(-2)},
			{"a7", 0},
		},
	}
}

// jalr calls a routine through a register with t1 as link, and returns with an odd target.
func jalr() Fixture {
	b := asm.NewBuilder().Emit(
		asm.AUIPC(riscv.RegT0, 0),               // 0
		asm.JALR(riscv.RegT1, riscv.RegT0, 20),  // 4
		asm.LI(riscv.RegA1, 1),                  // 8
		asm.RET(),                               // 12
		asm.ADDI(riscv.RegA2, riscv.RegA2, 1),   // 16, never reached
		asm.LI(riscv.RegA0, 7),                  // 20
		asm.JALR(riscv.RegZero, riscv.RegT1, 1), // 24, low bit is cleared
	)
	return Fixture{
		Name:    "jalr",
		Program: b.Bytes(),
		Expect: []Expect{
			{"a0", 7},
			{"a1", 1},
			{"a2", 0},
			{"t1", base + 8},
			{PC, base + 12},
		},
	}
}

func org(b *asm.Builder, offset int) *asm.Builder {
	if _, err := b.Org(offset); err != nil {
		panic(err)
	}
	return b
}
