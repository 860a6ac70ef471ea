package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pkg/profile"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/yzays8/riscv-emu/rvgo/fast"
	"github.com/yzays8/riscv-emu/rvgo/riscv"
)

var OutFilePerm = os.FileMode(0o755)

var errNoProgram = errors.New("no program given: pass a program binary or --input state")

// loadCPU builds the cpu from the positional program binary, or resumes it from the --input state.
func loadCPU(ctx *cli.Context, opts ...fast.Option) (*fast.CPU, error) {
	if path := ctx.Args().First(); path != "" {
		program, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read program: %w", err)
		}
		return fast.NewCPU(program, opts...)
	}
	if path := ctx.Path(RunInputFlag.Name); path != "" {
		state, err := jsonutil.LoadJSON[fast.VMState](path)
		if err != nil {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		cpu, err := fast.NewCPUFromState(state, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to resume state %q: %w", path, err)
		}
		return cpu, nil
	}
	return nil, errNoProgram
}

func Run(ctx *cli.Context) error {
	if ctx.Bool(RunPProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	l, err := FlagLogger(ctx)
	if err != nil {
		return err
	}
	infoAt, err := ParseStepMatcher(ctx.String(RunInfoAtFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", RunInfoAtFlag.Name, err)
	}
	snapshotAt, err := ParseStepMatcher(ctx.String(RunSnapshotAtFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", RunSnapshotAtFlag.Name, err)
	}
	snapshotFmt := ctx.String(RunSnapshotFmtFlag.Name)
	maxSteps := ctx.Uint64(RunMaxStepsFlag.Name)

	var opts []fast.Option
	if ctx.Bool(RunDumpRegsFlag.Name) {
		out := ctx.App.Writer
		opts = append(opts, fast.WithStepHook(func(c *fast.CPU) error {
			return fast.DumpRegisters(out, &c.Registers, c.PC)
		}))
	}
	cpu, err := loadCPU(ctx, opts...)
	if err != nil {
		return err
	}
	mem := cpu.Bus().DRAM()

	start := time.Now()
	startStep := cpu.Steps

	for !cpu.Halted {
		if cpu.Steps%100 == 0 { // don't do the ctx err check (includes lock) too often
			if err := ctx.Context.Err(); err != nil {
				return err
			}
		}

		step := cpu.Steps
		if maxSteps != 0 && step-startStep >= maxSteps {
			return fmt.Errorf("%w: %d, pc %016x", fast.ErrMaxSteps, maxSteps, cpu.PC)
		}

		if infoAt(cpu) {
			delta := time.Since(start)
			insn := cpu.State().Instr()
			l.Info("processing",
				"step", step,
				"pc", HexU64(cpu.PC),
				"insn", HexU32(insn),
				"ips", float64(step-startStep)/(float64(delta)/float64(time.Second)),
				"pages", mem.PageCount(),
				"mem", mem.Usage(),
			)
		}

		if snapshotAt(cpu) {
			if err := jsonutil.WriteJSON(fmt.Sprintf(snapshotFmt, step), cpu.State(), OutFilePerm); err != nil {
				return fmt.Errorf("failed to write state snapshot: %w", err)
			}
		}

		if _, err := cpu.Step(); err != nil {
			return fmt.Errorf("failed at step %d: %w", step, err)
		}
	}

	l.Info("halted",
		"steps", cpu.Steps-startStep,
		"last_pc", HexU64(cpu.LastPC),
		"a0", HexU64(cpu.Registers.Read(riscv.RegA0)),
		"duration", time.Since(start),
	)

	if output := ctx.Path(RunOutputFlag.Name); output != "" {
		if err := jsonutil.WriteJSON(output, cpu.State(), OutFilePerm); err != nil {
			return fmt.Errorf("failed to write state output: %w", err)
		}
	}
	return nil
}

var RunFlags = []cli.Flag{
	RunInputFlag,
	RunOutputFlag,
	RunDumpRegsFlag,
	RunMaxStepsFlag,
	RunInfoAtFlag,
	RunSnapshotAtFlag,
	RunSnapshotFmtFlag,
	RunPProfCPUFlag,
	LogLevelFlag,
}

var RunCommand = &cli.Command{
	Name:        "run",
	Usage:       "Run a flat RV64I program until it returns to address zero",
	Description: "Run a flat RV64I program, loaded at the DRAM base, until it jumps to address zero. Alternatively resume from a JSON state with --input.",
	ArgsUsage:   "[program.bin]",
	Action:      Run,
	Flags:       RunFlags,
}
