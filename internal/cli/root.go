package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lowip/swift-create-xcframework/internal"
)

// Represents the root command.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Create  CreateCmd  `cmd:"" default:"withargs" help:"Build the package for every requested platform and merge the results into xcframework bundles."`
	List    ListCmd    `cmd:"" help:"List the package's products and the destinations a build would cover."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Creates multi-platform xcframework bundles from a Swift package."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Reconfigures the global logger based on CLI flags.
//
// The merged flag state is stored back into the shared mode variables so
// code running after flag parsing sees one answer regardless of whether a
// mode came from a flag or a linker default.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	level := slog.LevelInfo
	if internal.IsDebug() {
		level = slog.LevelDebug
	} else if internal.IsQuiet() {
		level = slog.LevelWarn
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: internal.IsVerbose(),
	})))
}
