package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gobwas/glob"

	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

var (
	ErrNoProducts = errors.New("no buildable products")
	ErrBadPattern = errors.New("invalid product pattern")
)

// Returns the ordered set of product names eligible for building.
//
// Library products are eligible; executables and plugins cannot become
// framework bundles and are skipped with a warning. When patterns is
// non-empty, a product is kept only if its name matches at least one
// pattern (glob syntax, case-sensitive). Declaration order is preserved.
// An empty result is [ErrNoProducts].
func Select(graph swiftpm.Graph, patterns []string) ([]string, error) {
	matchers, err := compile(patterns)
	if err != nil {
		return nil, err
	}

	var eligible []string
	for _, name := range graph.ProductNames() {
		if !matches(matchers, name) {
			continue
		}

		product, ok := graph.Product(name)
		if !ok {
			continue
		}
		if product.Kind != swiftpm.KindLibrary {
			slog.Warn("skipping non-library product", "product", name, "kind", string(product.Kind))
			continue
		}

		eligible = append(eligible, name)
	}

	if len(eligible) == 0 {
		if len(patterns) > 0 {
			return nil, fmt.Errorf("%w: no library product matches %v", ErrNoProducts, patterns)
		}
		return nil, fmt.Errorf("%w: the package declares no library products", ErrNoProducts)
	}

	return eligible, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, pattern, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

func matches(matchers []glob.Glob, name string) bool {
	if len(matchers) == 0 {
		return true
	}
	for _, m := range matchers {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// Returns the default platform request list for a package.
//
// Packages declaring platform requirements build for exactly those
// platforms; packages without any declaration default to iOS.
func DefaultPlatforms(desc *swiftpm.Description) []string {
	if len(desc.Platforms) == 0 {
		return []string{"ios"}
	}
	platforms := make([]string, 0, len(desc.Platforms))
	for _, req := range desc.Platforms {
		platforms = append(platforms, req.Name)
	}
	return platforms
}
