package fast

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// VMState is the serializable snapshot of a CPU.
type VMState struct {
	Memory *Memory `json:"memory"`

	PC     uint64 `json:"pc"`
	LastPC uint64 `json:"lastPC"`

	Halted bool   `json:"halted"`
	Step   uint64 `json:"step"`

	Registers Registers `json:"registers"`
}

// StateWitness is the fixed-size binary encoding of a VMState, with memory reduced to its hash.
type StateWitness []byte

const StateWitnessSize = 32 + 8 + 8 + 1 + 8 + 32*8

func (state *VMState) EncodeWitness() StateWitness {
	out := make([]byte, 0, StateWitnessSize)
	memRoot := state.Memory.Hash()
	out = append(out, memRoot[:]...)
	out = binary.BigEndian.AppendUint64(out, state.PC)
	out = binary.BigEndian.AppendUint64(out, state.LastPC)
	if state.Halted {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = binary.BigEndian.AppendUint64(out, state.Step)
	for _, r := range state.Registers {
		out = binary.BigEndian.AppendUint64(out, r)
	}
	return out
}

func (sw StateWitness) StateHash() (common.Hash, error) {
	if len(sw) != StateWitnessSize {
		return common.Hash{}, errors.New("invalid witness length")
	}
	return crypto.Keccak256Hash(sw), nil
}

// Instr returns the instruction word at the pc, or zero when the pc is outside memory.
func (state *VMState) Instr() uint32 {
	v, err := state.Memory.Load(state.PC, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
