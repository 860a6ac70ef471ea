package riscv

const (
	DramBase = uint64(0x8000_0000)
	DramSize = uint64(128 << 20) // 128 MiB

	InstrSize = uint64(4)
)

// Major opcodes of the RV64I base integer ISA.
const (
	OpLoad   = 0b000_0011
	OpImm    = 0b001_0011
	OpAuipc  = 0b001_0111
	OpImm32  = 0b001_1011
	OpStore  = 0b010_0011
	OpReg    = 0b011_0011
	OpLui    = 0b011_0111
	OpReg32  = 0b011_1011
	OpBranch = 0b110_0011
	OpJalr   = 0b110_0111
	OpJal    = 0b110_1111
)

const (
	Funct7Zero = 0b000_0000
	Funct7Alt  = 0b010_0000 // SUB, SRA and the W variants of both
)

// Register indices by ABI name.
const (
	RegZero = 0
	RegRA   = 1
	RegSP   = 2
	RegGP   = 3
	RegTP   = 4
	RegT0   = 5
	RegT1   = 6
	RegT2   = 7
	RegS0   = 8
	RegFP   = 8
	RegS1   = 9
	RegA0   = 10
	RegA1   = 11
	RegA2   = 12
	RegA3   = 13
	RegA4   = 14
	RegA5   = 15
	RegA6   = 16
	RegA7   = 17
	RegS2   = 18
	RegS3   = 19
	RegS4   = 20
	RegS5   = 21
	RegS6   = 22
	RegS7   = 23
	RegS8   = 24
	RegS9   = 25
	RegS10  = 26
	RegS11  = 27
	RegT3   = 28
	RegT4   = 29
	RegT5   = 30
	RegT6   = 31
)
