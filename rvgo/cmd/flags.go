package cmd

import (
	"github.com/urfave/cli/v2"
)

var (
	RunInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of input JSON state, used instead of a program binary to resume a run",
		TakesFile: true,
	}
	RunOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "path of output JSON state, written when the program halts. Not written if empty.",
		TakesFile: true,
	}
	RunDumpRegsFlag = &cli.BoolFlag{
		Name:  "dump-regs",
		Usage: "print all registers and the pc to stdout after every step",
		Value: true,
	}
	RunMaxStepsFlag = &cli.Uint64Flag{
		Name:  "max-steps",
		Usage: "fail once this many instructions ran without a halt. 0 means no limit.",
	}
	RunInfoAtFlag = &cli.StringFlag{
		Name:  "info-at",
		Usage: "step pattern to log progress at: " + StepMatcherUsage,
		Value: "never",
	}
	RunSnapshotAtFlag = &cli.StringFlag{
		Name:  "snapshot-at",
		Usage: "step pattern to write a state snapshot at: " + StepMatcherUsage,
		Value: "never",
	}
	RunSnapshotFmtFlag = &cli.StringFlag{
		Name:  "snapshot-fmt",
		Usage: "format for snapshot output file names, gets the step number",
		Value: "state-%d.json",
	}
	RunPProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "enable pprof cpu profiling",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "lowest log level to print: debug, info, warn or error",
		Value:   "info",
		EnvVars: []string{"RV64EMU_LOG_LEVEL"},
	}

	LoadBinPathFlag = &cli.PathFlag{
		Name:      "path",
		Usage:     "path to the flat RV64I program binary",
		TakesFile: true,
		Required:  true,
	}
	LoadBinOutFlag = &cli.PathFlag{
		Name:      "out",
		Usage:     "output path of the initial JSON state",
		TakesFile: true,
		Value:     "state.json",
	}

	WitnessInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "path of input JSON state",
		TakesFile: true,
		Required:  true,
	}
	WitnessOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "path to write the witness and state hash as JSON. Not written if empty.",
		TakesFile: true,
	}

	TestDirFlag = &cli.PathFlag{
		Name:      "dir",
		Usage:     "directory holding <name>/<name>.bin images to run instead of the built-in programs",
		TakesFile: true,
	}
)
