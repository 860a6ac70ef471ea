package fast

// SignExtend treats the low bits of v as a two's complement number and widens it to 64 bits.
func SignExtend(v uint64, bits uint) uint64 {
	if bits >= 64 {
		return v
	}
	v &= 1<<bits - 1
	m := uint64(1) << (bits - 1)
	return (v ^ m) - m
}

// mask32Signed64 truncates v to 32 bits and sign-extends the result back to 64 bits.
func mask32Signed64(v uint64) uint64 {
	return SignExtend(v, 32)
}

func lt64(x, y uint64) uint64 {
	if x < y {
		return 1
	}
	return 0
}

func slt64(x, y uint64) uint64 {
	if int64(x) < int64(y) {
		return 1
	}
	return 0
}

func sar64(shamt, v uint64) uint64 {
	return uint64(int64(v) >> shamt)
}
