package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lowip/swift-create-xcframework/internal/build"
	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/paths"
	"github.com/lowip/swift-create-xcframework/internal/xcodebuild"
)

var (
	ErrEmptyGroup       = errors.New("artifact group is empty")
	ErrMixedProducts    = errors.New("artifact group spans products")
	ErrVariantCollision = errors.New("platform variant collision")
	ErrMerge            = errors.New("merge failed")
)

// The terminal artifact: one umbrella bundle covering every requested
// platform for a single product.
type Bundle struct {
	Product   string // Product the bundle was merged for.
	Path      string // Path to the umbrella bundle on disk.
	Platforms int    // Number of contributing platform slices, always >= 1.
}

// Merges one product's per-platform artifacts into an umbrella bundle.
//
// Results must all belong to the given product and cover each platform
// variant exactly once; the catalog guarantees one result per product per
// destination, so a duplicate variant here is a caller invariant violation
// and fatal, never deduplicated. The output path is derived from the
// product name alone and any bundle already there is removed first, so
// repeated runs overwrite instead of accumulating stale slices.
func Merge(ctx context.Context, runner command.Runner, product string, results []build.Result, outputDir string) (*Bundle, error) {
	if err := check(product, results); err != nil {
		return nil, err
	}

	output := filepath.Join(outputDir, product+".xcframework")

	if err := os.MkdirAll(outputDir, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMerge, err)
	}
	if err := os.RemoveAll(output); err != nil {
		return nil, fmt.Errorf("%w: removing previous bundle: %w", ErrMerge, err)
	}

	slices := make([]xcodebuild.Slice, len(results))
	for i, result := range results {
		slices[i] = xcodebuild.Slice{
			Framework:    result.Framework,
			DebugSymbols: result.DebugSymbols,
		}
	}

	slog.Info("merging product", "product", product, "platforms", len(results), "output", output)

	if err := xcodebuild.CreateXCFramework(ctx, runner, slices, output); err != nil {
		return nil, fmt.Errorf("product %s: %w", product, err)
	}

	return &Bundle{
		Product:   product,
		Path:      output,
		Platforms: len(results),
	}, nil
}

// Verifies the caller invariants a correct merge depends on.
func check(product string, results []build.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("%w: product %s", ErrEmptyGroup, product)
	}

	seen := make(map[string]bool, len(results))
	for _, result := range results {
		if result.Product != product {
			return fmt.Errorf("%w: product %s, found artifact for %s", ErrMixedProducts, product, result.Product)
		}
		if seen[result.Destination.SDK] {
			return fmt.Errorf("%w: product %s, platform %s", ErrVariantCollision, product, result.Destination.Name)
		}
		seen[result.Destination.SDK] = true
	}

	return nil
}
