package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yzays8/riscv-emu/rvgo/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "rv64emu"
	app.Usage = "RV64I functional emulator"
	app.Description = "Runs flat RV64I program binaries loaded at 0x80000000 until they return to address zero."
	app.ArgsUsage = "<program.bin>"
	app.Flags = cmd.RunFlags
	app.Action = cmd.Run
	app.Commands = []*cli.Command{
		cmd.RunCommand,
		cmd.LoadBinCommand,
		cmd.WitnessCommand,
		cmd.TestCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted\n")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}
