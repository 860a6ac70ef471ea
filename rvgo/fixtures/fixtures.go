// Package fixtures holds the named test programs of the emulator together with the register
// values each one must leave behind when it halts.
package fixtures

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yzays8/riscv-emu/rvgo/fast"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

// PC names the pseudo-register holding the address of the last executed instruction.
// The live pc is zero once a program halts, so this is the only useful pc to check.
const PC = "pc"

// Expect is one expected register value. Reg is an ABI name ("a0"), "xN", or PC.
type Expect struct {
	Reg   string
	Value uint64
}

type Fixture struct {
	Name    string
	Program []byte
	Expect  []Expect
}

// RegisterMismatchError reports a register that holds a different value than the fixture expects.
// Reg is the ABI name of the register, or PC.
type RegisterMismatchError struct {
	Fixture  string
	Reg      string
	Actual   uint64
	Expected uint64
}

func (e *RegisterMismatchError) Error() string {
	return fmt.Sprintf("%s: register %s is %s, expected %s",
		e.Fixture, e.Reg, hexutil.Uint64(e.Actual), hexutil.Uint64(e.Expected))
}

// Run executes the fixture program to its halt, then checks the expectations.
// The CPU is returned even when the check fails, for inspection.
func (f Fixture) Run(opts ...fast.Option) (*fast.CPU, error) {
	cpu, err := fast.NewCPU(f.Program, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	if err := cpu.Run(); err != nil {
		return cpu, fmt.Errorf("%s: %w", f.Name, err)
	}
	return cpu, Check(f.Name, cpu, f.Expect)
}

// Check compares every expectation against the cpu, in order. All mismatches are reported,
// each as a *RegisterMismatchError.
func Check(name string, cpu *fast.CPU, expects []Expect) error {
	var errs []error
	for _, e := range expects {
		var actual uint64
		reg := e.Reg
		if reg == PC {
			actual = cpu.LastPC
		} else {
			idx, err := riscv.RegisterIndex(reg)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			actual = cpu.Registers.Read(idx)
			reg = riscv.RegisterName(idx)
		}
		if actual != e.Value {
			errs = append(errs, &RegisterMismatchError{Fixture: name, Reg: reg, Actual: actual, Expected: e.Value})
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the built-in fixture with the given name.
func Lookup(name string) (Fixture, bool) {
	for _, f := range All() {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

// FromDir replaces the fixture program with the image at <dir>/<name>/<name>.bin.
func (f Fixture) FromDir(dir string) (Fixture, error) {
	path := filepath.Join(dir, f.Name, f.Name+".bin")
	program, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("failed to read fixture program %q: %w", path, err)
	}
	f.Program = program
	return f, nil
}
