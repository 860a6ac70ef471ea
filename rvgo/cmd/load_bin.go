package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/urfave/cli/v2"

	"github.com/yzays8/riscv-emu/rvgo/fast"
)

func LoadBin(ctx *cli.Context) error {
	binPath := ctx.Path(LoadBinPathFlag.Name)
	program, err := os.ReadFile(binPath)
	if err != nil {
		return fmt.Errorf("failed to read program %q: %w", binPath, err)
	}
	cpu, err := fast.NewCPU(program)
	if err != nil {
		return fmt.Errorf("failed to load program into VM state: %w", err)
	}
	return jsonutil.WriteJSON(ctx.Path(LoadBinOutFlag.Name), cpu.State(), OutFilePerm)
}

var LoadBinCommand = &cli.Command{
	Name:        "load-bin",
	Usage:       "Load a flat program binary into a JSON state",
	Description: "Load a flat RV64I program binary at the DRAM base and write the initial JSON state, to be resumed with run --input.",
	Action:      LoadBin,
	Flags: []cli.Flag{
		LoadBinPathFlag,
		LoadBinOutFlag,
	},
}
