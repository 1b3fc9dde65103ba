package create

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/lowip/swift-create-xcframework/internal/build"
	"github.com/lowip/swift-create-xcframework/internal/catalog"
	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/merge"
	"github.com/lowip/swift-create-xcframework/internal/packaging"
	"github.com/lowip/swift-create-xcframework/internal/paths"
	"github.com/lowip/swift-create-xcframework/internal/project"
	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

// Controls one end-to-end pipeline run.
type Options struct {
	PackagePath   string   // Package root. Defaults to the working directory.
	Platforms     []string // Requested platforms. Defaults to the package's declared platforms.
	Products      []string // Product name patterns. Empty selects every library product.
	Output        string   // Output directory for merged bundles, relative to the package root.
	BuildPath     string   // Build directory, relative to the package root.
	Configuration string   // Build configuration.

	Clean             bool // Remove prior build output before building.
	ExcludeSimulators bool // Drop simulator destinations.
	Distribution      bool // Apply the distribution configuration profile.
	FixSearchPaths    bool // Inject omitted header search paths.

	RelinkHeaders []string // Targets to apply the header-symlink fix to (best effort).

	Zip         bool   // Compress and checksum each merged bundle.
	SignKey     string // Armored private key for signing checksums. Empty disables signing.
	PointerFile string // Pointer file path for automation. Empty disables it.
}

// Produced by a fully successful run.
type Summary struct {
	Bundles []merge.Bundle     // One merged bundle per eligible product.
	Outputs []packaging.Output // Release files, present only when compression was requested.
}

// Executes the pipeline: validate, configure, build each platform, merge
// each product, package.
//
// Every stage is fatal on error except where a step is documented as best
// effort; nothing downstream of a failure runs, so a non-nil error means no
// output directory that merely looks complete.
func Run(ctx context.Context, runner command.Runner, opts Options) (*Summary, error) {
	opts = withDefaults(opts)

	desc, err := swiftpm.Load(ctx, runner, opts.PackagePath)
	if err != nil {
		return nil, err
	}

	if len(opts.Platforms) == 0 {
		opts.Platforms = catalog.DefaultPlatforms(desc)
	}

	if err := validate(opts); err != nil {
		return nil, err
	}

	eligible, err := catalog.Select(desc, opts.Products)
	if err != nil {
		return nil, err
	}

	destinations, err := catalog.Destinations(opts.Platforms, opts.ExcludeSimulators)
	if err != nil {
		return nil, err
	}

	slog.Info("starting build",
		"package", desc.Name,
		"products", eligible,
		"destinations", len(destinations),
	)

	projectPath, err := configure(ctx, runner, desc, eligible, opts)
	if err != nil {
		return nil, err
	}

	buildRoot := resolve(opts.PackagePath, opts.BuildPath)
	groups, err := build.Run(ctx, runner, build.Options{
		Products:      eligible,
		Destinations:  destinations,
		ProjectPath:   projectPath,
		Scheme:        desc.Name,
		Configuration: opts.Configuration,
		DerivedData:   paths.DerivedData(),
		BuildDir:      filepath.Join(buildRoot, "Products"),
		Clean:         opts.Clean,
	})
	if err != nil {
		return nil, err
	}

	outputDir := resolve(opts.PackagePath, opts.Output)

	summary := &Summary{}
	for _, product := range groups.Products() {
		bundle, err := merge.Merge(ctx, runner, product, groups.Results(product), outputDir)
		if err != nil {
			return nil, err
		}
		summary.Bundles = append(summary.Bundles, *bundle)
	}

	if err := pack(summary, opts); err != nil {
		return nil, err
	}

	slog.Info("finished", "bundles", len(summary.Bundles))
	return summary, nil
}

// Prepares the build description and generates the project.
func configure(ctx context.Context, runner command.Runner, desc *swiftpm.Description, eligible []string, opts Options) (string, error) {
	buildRoot := resolve(opts.PackagePath, opts.BuildPath)
	specPath := filepath.Join(buildRoot, "project.json")
	projectPath := filepath.Join(buildRoot, desc.Name+".xcodeproj")

	p := project.Synthesize(desc.Name, desc, specPath)

	if opts.Distribution {
		p.ApplyDistributionSettings(eligible)
	}
	if opts.FixSearchPaths {
		p.FixHeaderSearchPaths(desc)
	}

	if err := p.Save(); err != nil {
		return "", err
	}

	for _, target := range opts.RelinkHeaders {
		if _, err := project.NormalizeHeaderSymlinks(desc, target); err != nil {
			return "", err
		}
	}

	if err := project.Generate(ctx, runner, specPath, projectPath); err != nil {
		return "", err
	}

	return projectPath, nil
}

// Compresses, checksums, signs, and indexes the merged bundles.
func pack(summary *Summary, opts Options) error {
	if opts.Zip {
		for _, bundle := range summary.Bundles {
			archive, err := packaging.Compress(bundle.Path)
			if err != nil {
				return err
			}

			checksum, err := packaging.Checksum(archive)
			if err != nil {
				return err
			}

			output := packaging.Output{Archive: archive, Checksum: checksum}
			if opts.SignKey != "" {
				output.Signature, err = packaging.Sign(checksum, opts.SignKey)
				if err != nil {
					return err
				}
			}

			summary.Outputs = append(summary.Outputs, output)
		}
	}

	if opts.PointerFile != "" && len(summary.Outputs) > 0 {
		if err := packaging.WritePointer(opts.PointerFile, summary.Outputs); err != nil {
			return err
		}
	}

	return nil
}

func withDefaults(opts Options) Options {
	if opts.PackagePath == "" {
		opts.PackagePath = "."
	}
	if opts.Output == "" {
		opts.Output = "dist"
	}
	if opts.BuildPath == "" {
		opts.BuildPath = filepath.Join(".build", "swift-create-xcframework")
	}
	if opts.Configuration == "" {
		opts.Configuration = "Release"
	}
	return opts
}

// Joins path onto root unless path is already absolute.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
