package swiftpm

import "path/filepath"

// Kind of build product a package declares.
type ProductKind string

const (
	KindLibrary    ProductKind = "library"
	KindExecutable ProductKind = "executable"
	KindPlugin     ProductKind = "plugin"
)

// A product declared by the package manifest.
type Product struct {
	Name    string      // Unique product name.
	Kind    ProductKind // What the product builds into.
	Targets []string    // Names of the targets composing the product.
}

// A target declared by the package manifest.
type Target struct {
	Name       string // Unique target name.
	ModuleType string // "SwiftTarget" or "ClangTarget".
	SourceRoot string // Absolute path to the target's source directory.
}

// Path to the target's public include directory.
//
// Clang targets expose headers from an include directory under the source
// root. Targets that do not override publicHeadersPath use the default
// "include" subdirectory; this tool follows the same convention.
func (t Target) IncludeDir() string {
	return filepath.Join(t.SourceRoot, "include")
}

// Whether the target carries C headers that downstream compilation
// resolves through header search paths.
func (t Target) HasHeaders() bool {
	return t.ModuleType == "ClangTarget"
}

// A minimum platform requirement declared by the package manifest.
type PlatformRequirement struct {
	Name    string // Platform name, lowercase (e.g. "ios").
	Version string // Minimum deployment version (e.g. "12.0").
}

// Read-only view over a resolved package's products and targets.
//
// The pipeline depends on this interface rather than on the concrete
// [Description] so tests can substitute an in-memory graph. Lookups use a
// found/not-found result; a missing name is an expected branch, not an
// error.
type Graph interface {
	ProductNames() []string
	TargetNames() []string
	Product(name string) (Product, bool)
	Target(name string) (Target, bool)
}

// A resolved package description, as reported by the package manager.
//
// Immutable after Load; every field reflects the state the package manager
// already resolved, this tool never re-runs dependency resolution.
type Description struct {
	Name      string                // Package name.
	Root      string                // Absolute path to the package root.
	Platforms []PlatformRequirement // Declared minimum platform versions.

	products []Product
	targets  []Target
}

// Returns product names in manifest declaration order.
func (d *Description) ProductNames() []string {
	names := make([]string, len(d.products))
	for i, p := range d.products {
		names[i] = p.Name
	}
	return names
}

// Returns target names in manifest declaration order.
func (d *Description) TargetNames() []string {
	names := make([]string, len(d.targets))
	for i, t := range d.targets {
		names[i] = t.Name
	}
	return names
}

// Looks up a product by name.
func (d *Description) Product(name string) (Product, bool) {
	for _, p := range d.products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// Looks up a target by name.
func (d *Description) Target(name string) (Target, bool) {
	for _, t := range d.targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Returns all products in manifest declaration order.
func (d *Description) Products() []Product {
	return d.products
}
