package xcodebuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lowip/swift-create-xcframework/internal/catalog"
	"github.com/lowip/swift-create-xcframework/internal/command"
)

// Executable driven for all build and merge operations.
const program = "xcodebuild"

// Lines of tool stderr preserved in wrapped errors.
const stderrTailLines = 20

var ErrXcodebuild = errors.New("xcodebuild failed")

// One per-destination build covering the full product set.
type ArchiveOptions struct {
	ProjectPath   string              // Path to the generated project.
	Scheme        string              // Aggregate scheme building every eligible product.
	Destination   catalog.Destination // Platform destination to build for.
	Configuration string              // Build configuration (e.g. "Release").
	DerivedData   string              // Derived-data path for intermediate state.
	BuildDir      string              // Override for the built-products root.
	Settings      map[string]string   // Additional build setting overrides.
}

// Runs one build invocation for a single destination.
//
// The invocation covers the full eligible product set; artifact collection
// happens afterwards from the destination's built-products directory. A
// non-zero exit is fatal and carries the tail of the tool's stderr.
func Archive(ctx context.Context, runner command.Runner, opts ArchiveOptions) error {
	slog.Info("building platform", "destination", opts.Destination.Name, "sdk", opts.Destination.SDK)

	result, err := runner.Run(ctx, command.Command{
		Program: program,
		Args:    archiveArgs(opts),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrXcodebuild, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: destination %s exited %d:\n%s",
			ErrXcodebuild, opts.Destination.Name, result.ExitCode, result.StderrTail(stderrTailLines))
	}

	return nil
}

func archiveArgs(opts ArchiveOptions) []string {
	args := []string{
		"build",
		"-project", opts.ProjectPath,
		"-scheme", opts.Scheme,
		"-destination", opts.Destination.Build,
		"-configuration", opts.Configuration,
		"-derivedDataPath", opts.DerivedData,
	}

	if opts.BuildDir != "" {
		args = append(args, "BUILD_DIR="+opts.BuildDir)
	}

	// Sorted for a reproducible command line.
	keys := make([]string, 0, len(opts.Settings))
	for key := range opts.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, key+"="+opts.Settings[key])
	}

	return args
}

// One per-platform slice of a merge invocation.
type Slice struct {
	Framework    string // Path to the platform's framework bundle.
	DebugSymbols string // Path to the dSYM bundle, empty when absent.
}

// Merges per-platform slices into one umbrella bundle at output.
//
// Slices are passed to the tool in the given order; the tool reports a
// platform-variant collision itself if two slices share an architecture
// slot, and that failure is surfaced verbatim.
func CreateXCFramework(ctx context.Context, runner command.Runner, slices []Slice, output string) error {
	result, err := runner.Run(ctx, command.Command{
		Program: program,
		Args:    createArgs(slices, output),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrXcodebuild, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: -create-xcframework exited %d:\n%s",
			ErrXcodebuild, result.ExitCode, result.StderrTail(stderrTailLines))
	}

	return nil
}

func createArgs(slices []Slice, output string) []string {
	args := []string{"-create-xcframework"}
	for _, slice := range slices {
		args = append(args, "-framework", slice.Framework)
		if slice.DebugSymbols != "" {
			args = append(args, "-debug-symbols", slice.DebugSymbols)
		}
	}
	return append(args, "-output", output)
}
