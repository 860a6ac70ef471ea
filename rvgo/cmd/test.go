package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yzays8/riscv-emu/rvgo/fast"
	"github.com/yzays8/riscv-emu/rvgo/fixtures"
)

var TestMaxStepsFlag = &cli.Uint64Flag{
	Name:  "max-steps",
	Usage: "per-fixture instruction limit, so a broken program cannot hang the battery",
	Value: 1_000_000,
}

// selectFixtures returns the fixtures named in args, or all of them when args is empty.
func selectFixtures(args []string) ([]fixtures.Fixture, error) {
	if len(args) == 0 {
		return fixtures.All(), nil
	}
	out := make([]fixtures.Fixture, 0, len(args))
	for _, name := range args {
		f, ok := fixtures.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown fixture %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}

func Test(ctx *cli.Context) error {
	l, err := FlagLogger(ctx)
	if err != nil {
		return err
	}
	selected, err := selectFixtures(ctx.Args().Slice())
	if err != nil {
		return err
	}
	dir := ctx.Path(TestDirFlag.Name)
	maxSteps := ctx.Uint64(TestMaxStepsFlag.Name)

	var failures []error
	for _, f := range selected {
		if err := ctx.Context.Err(); err != nil {
			return err
		}
		if dir != "" {
			if f, err = f.FromDir(dir); err != nil {
				failures = append(failures, err)
				l.Error("fixture failed", "name", f.Name, "err", err)
				continue
			}
		}
		cpu, err := f.Run(fast.WithMaxSteps(maxSteps))
		if err != nil {
			failures = append(failures, err)
			l.Error("fixture failed", "name", f.Name, "err", err)
			continue
		}
		l.Debug("fixture passed", "name", f.Name, "steps", cpu.Steps)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d fixtures failed: %w", len(failures), len(selected), errors.Join(failures...))
	}
	_, err = fmt.Fprintln(ctx.App.Writer, "All tests passed!")
	return err
}

var TestCommand = &cli.Command{
	Name:        "test",
	Usage:       "Run the fixture battery",
	Description: "Run the named fixtures, or all of them, and compare the registers each leaves behind against the expected values.",
	ArgsUsage:   "[fixture names...]",
	Action:      Test,
	Flags: []cli.Flag{
		TestDirFlag,
		TestMaxStepsFlag,
		LogLevelFlag,
	},
}
