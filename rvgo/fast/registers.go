package fast

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

// Registers is the integer register file. x0 always reads as zero and writes to it are dropped.
type Registers [32]uint64

func (r *Registers) Read(i uint8) uint64 {
	if i == riscv.RegZero {
		return 0
	}
	return r[i&31]
}

func (r *Registers) Write(i uint8, v uint64) {
	if i == riscv.RegZero {
		return
	}
	r[i&31] = v
}

// DumpRegisters writes all registers and the pc in hex, one line, followed by a separator.
func DumpRegisters(w io.Writer, regs *Registers, pc uint64) error {
	for i := range regs {
		if _, err := fmt.Fprintf(w, "x%d: %s, ", i, hexutil.Uint64(regs.Read(uint8(i)))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "PC: %s\n---------------------\n", hexutil.Uint64(pc))
	return err
}
