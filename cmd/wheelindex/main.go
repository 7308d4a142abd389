package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/wheelindex/cmd/wheelindex/commands"
	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
	"git.home.luguber.info/inful/wheelindex/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("wheelindex"),
		kong.Description("Generate the CUDA build matrix and the wheel index pages for Flash-Attention 3."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	global := &commands.Global{Logger: slog.Default(), RunID: uuid.NewString()}
	if err := parser.Run(global, cli); err != nil {
		stop()
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
