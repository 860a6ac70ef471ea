package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yzays8/riscv-emu/rvgo/asm"
	"github.com/yzays8/riscv-emu/rvgo/fast"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

func TestBattery(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range All() {
		require.False(t, seen[f.Name], "duplicate fixture %s", f.Name)
		seen[f.Name] = true
		t.Run(f.Name, func(t *testing.T) {
			cpu, err := f.Run()
			require.NoError(t, err)
			require.True(t, cpu.Halted)
			require.Zero(t, cpu.PC)
		})
	}
}

func TestBatterySmallMemory(t *testing.T) {
	for _, f := range All() {
		t.Run(f.Name, func(t *testing.T) {
			_, err := f.Run(fast.WithMemorySize(0x1000), fast.WithMaxSteps(10_000))
			require.NoError(t, err)
		})
	}
}

func TestCheck(t *testing.T) {
	f, ok := Lookup("add-addi")
	require.True(t, ok)
	cpu, err := f.Run()
	require.NoError(t, err)

	t.Run("mismatch", func(t *testing.T) {
		err := Check("add-addi", cpu, []Expect{{"t6", 42}, {"t5", 1}, {PC, 0}})
		var mismatch *RegisterMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Equal(t, "t5", mismatch.Reg)
		require.Equal(t, uint64(37), mismatch.Actual)
		require.Equal(t, uint64(1), mismatch.Expected)
		require.ErrorContains(t, err, "add-addi: register t5 is 0x25, expected 0x1")
		require.ErrorContains(t, err, "add-addi: register pc is 0x8000000c, expected 0x0")
	})
	t.Run("numeric names", func(t *testing.T) {
		require.NoError(t, Check("add-addi", cpu, []Expect{{"x31", 42}, {"x0", 0}}))
		// mismatches are reported under the ABI name
		require.EqualError(t, Check("add-addi", cpu, []Expect{{"x30", 0}}), "add-addi: register t5 is 0x25, expected 0x0")
	})
	t.Run("unknown register", func(t *testing.T) {
		require.ErrorContains(t, Check("add-addi", cpu, []Expect{{"r9", 0}}), "unknown register name")
	})
}

func TestRunFailure(t *testing.T) {
	f := Fixture{
		Name:    "bad",
		Program: asm.Program(asm.LI(riscv.RegA0, 1), 0),
		Expect:  []Expect{{"a0", 1}},
	}
	cpu, err := f.Run(fast.WithMemorySize(0x100))
	var opErr *fast.UnknownOpcodeError
	require.ErrorAs(t, err, &opErr)
	require.ErrorContains(t, err, "bad: ")
	require.Equal(t, uint64(1), cpu.Registers.Read(riscv.RegA0))

	_, ok := Lookup("bad")
	require.False(t, ok)
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	f, ok := Lookup("lui")
	require.True(t, ok)

	_, err := f.FromDir(dir)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lui"), 0o755))
	// a different program that leaves a0 at the wrong value
	program := asm.Program(asm.LUI(riscv.RegA0, 43), asm.RET())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lui", "lui.bin"), program, 0o644))

	loaded, err := f.FromDir(dir)
	require.NoError(t, err)
	require.Equal(t, program, loaded.Program)
	require.Equal(t, f.Expect, loaded.Expect)

	_, err = loaded.Run()
	var mismatch *RegisterMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, uint64(43<<12), mismatch.Actual)
}

// TestPrebuiltImages runs the battery against prebuilt images when a test directory is present.
func TestPrebuiltImages(t *testing.T) {
	dir := filepath.Join("..", "..", "test")
	if _, err := os.Stat(dir); err != nil {
		t.Skipf("fixture image directory %q not present: %v", dir, err)
	}
	for _, f := range All() {
		t.Run(f.Name, func(t *testing.T) {
			loaded, err := f.FromDir(dir)
			if err != nil {
				t.Skipf("no image for %s: %v", f.Name, err)
			}
			_, err = loaded.Run(fast.WithMaxSteps(1_000_000))
			require.NoError(t, err)
		})
	}
}
