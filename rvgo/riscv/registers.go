package riscv

import (
	"fmt"
	"strconv"
	"strings"
)

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterName returns the ABI name of register i, or "x<i>" when i is out of range.
func RegisterName(i uint8) string {
	if int(i) < len(abiNames) {
		return abiNames[i]
	}
	return fmt.Sprintf("x%d", i)
}

// RegisterIndex resolves an ABI name ("a0", "fp") or a numeric name ("x10") to its index.
func RegisterIndex(name string) (uint8, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "fp" {
		return RegFP, nil
	}
	for i, n := range abiNames {
		if n == name {
			return uint8(i), nil
		}
	}
	if strings.HasPrefix(name, "x") {
		if v, err := strconv.ParseUint(name[1:], 10, 8); err == nil && v < 32 {
			return uint8(v), nil
		}
	}
	return 0, fmt.Errorf("unknown register name %q", name)
}
