package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowip/swift-create-xcframework/internal/catalog"
	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/xcodebuild"
)

// Controls the per-platform build phase.
type Options struct {
	Products      []string              // Eligible product set, in catalog order.
	Destinations  []catalog.Destination // Destinations to build, in declaration order.
	ProjectPath   string                // Path to the generated project.
	Scheme        string                // Aggregate scheme building every product.
	Configuration string                // Build configuration (e.g. "Release").
	DerivedData   string                // Derived-data path for intermediate state.
	BuildDir      string                // Root of the per-destination built-products directories.
	Clean         bool                  // Remove prior build output before the first build.
}

// Runs the external builder once per destination and groups the artifacts.
//
// Destinations are built strictly in order, one blocking invocation at a
// time: the merge step needs every destination's artifact for a product
// before it can produce a complete umbrella bundle, so there is nothing to
// gain from overlap and a lot ordered output to lose. Any build failure or
// missing artifact aborts the run; a partial umbrella bundle would silently
// violate the "covers every requested platform" guarantee.
func Run(ctx context.Context, runner command.Runner, opts Options) (*Groups, error) {
	if opts.Clean {
		slog.Info("cleaning build output", "dir", opts.BuildDir)
		if err := os.RemoveAll(opts.BuildDir); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrClean, err)
		}
	}

	groups := newGroups()

	for _, dest := range opts.Destinations {
		if err := xcodebuild.Archive(ctx, runner, xcodebuild.ArchiveOptions{
			ProjectPath:   opts.ProjectPath,
			Scheme:        opts.Scheme,
			Destination:   dest,
			Configuration: opts.Configuration,
			DerivedData:   opts.DerivedData,
			BuildDir:      opts.BuildDir,
		}); err != nil {
			return nil, err
		}

		results, err := collect(opts, dest)
		if err != nil {
			return nil, err
		}
		for _, result := range results {
			groups.add(result)
		}
	}

	return groups, nil
}

// Gathers one artifact per product from a destination's built-products
// directory.
//
// Every product of the invocation is checked independently so that one
// missing artifact does not mask which siblings were produced; all missing
// products are reported together.
func collect(opts Options, dest catalog.Destination) ([]Result, error) {
	dir := filepath.Join(opts.BuildDir, dest.ProductsDir(opts.Configuration))

	var results []Result
	var missing []string

	for _, product := range opts.Products {
		framework := filepath.Join(dir, product+".framework")
		if _, err := os.Stat(framework); err != nil {
			missing = append(missing, product)
			continue
		}

		result := Result{
			Product:     product,
			Destination: dest,
			Framework:   framework,
		}

		dsym := framework + ".dSYM"
		if _, err := os.Stat(dsym); err == nil {
			result.DebugSymbols = dsym
		}

		slog.Debug("collected artifact", "product", product, "destination", dest.Name, "dsym", result.DebugSymbols != "")
		results = append(results, result)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: destination %s, products %s (looked in %s)",
			ErrMissingArtifact, dest.Name, strings.Join(missing, ", "), dir)
	}

	return results, nil
}
