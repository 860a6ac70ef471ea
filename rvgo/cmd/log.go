package cmd

import (
	"fmt"
	"io"

	"log/slog"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

func Logger(w io.Writer, lvl slog.Level) log.Logger {
	return log.NewLogger(log.LogfmtHandlerWithLevel(w, lvl))
}

// FlagLogger builds a logfmt logger writing to the app's error writer at the --log.level level.
func FlagLogger(ctx *cli.Context) (log.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(ctx.String(LogLevelFlag.Name))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", ctx.String(LogLevelFlag.Name), err)
	}
	return Logger(ctx.App.ErrWriter, lvl), nil
}

// HexU32 lazy-formats instruction words in log attributes.
type HexU32 uint32

func (v HexU32) String() string {
	return fmt.Sprintf("%08x", uint32(v))
}

func (v HexU32) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// HexU64 lazy-formats addresses and register values in log attributes.
type HexU64 uint64

func (v HexU64) String() string {
	return fmt.Sprintf("%016x", uint64(v))
}

func (v HexU64) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
