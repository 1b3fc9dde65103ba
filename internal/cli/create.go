package cli

import (
	"context"

	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/config"
	"github.com/lowip/swift-create-xcframework/internal/create"
)

// Represents the 'create' command.
type CreateCmd struct {
	PackagePath   string   `short:"C" default:"." placeholder:"DIR" help:"Path to the package root."`
	Platforms     []string `placeholder:"NAME" help:"Platforms to build for (ios, macos, maccatalyst, tvos, watchos, visionos). Defaults to the package's declared platforms."`
	Products      []string `placeholder:"PATTERN" help:"Glob patterns selecting the products to build. Defaults to every library product."`
	Output        string   `short:"o" placeholder:"DIR" help:"Output directory for the merged bundles."`
	BuildPath     string   `placeholder:"DIR" help:"Directory for intermediate build output."`
	Configuration string   `placeholder:"NAME" help:"Build configuration (Debug or Release)."`

	Clean             bool `help:"Remove prior build output before building."`
	ExcludeSimulators bool `help:"Skip simulator destinations."`
	NoDistribution    bool `help:"Skip the distribution build-settings profile."`
	NoSearchPathFix   bool `name:"no-header-search-path-fix" help:"Skip re-deriving omitted header search paths."`

	RelinkHeaders []string `placeholder:"TARGET" help:"Rewrite the named target's public headers as direct symlinks (best effort)."`

	Zip         bool   `help:"Compress each merged bundle and write a checksum file."`
	SignKey     string `type:"path" placeholder:"PATH" help:"Armored GPG private key used to sign checksum files."`
	PointerFile string `type:"path" placeholder:"PATH" help:"Write a plain-text list of produced release files for automation."`
}

// Executes the create command.
//
// Package-level defaults from .xcframework.yml fill in whatever the
// command line leaves unset; explicit flags always win.
func (c *CreateCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(c.PackagePath)
	if err != nil {
		return err
	}

	_, err = create.Run(ctx, command.Local{}, c.options(cfg))
	return err
}

// Merges flags and file defaults into pipeline options.
func (c *CreateCmd) options(cfg *config.Config) create.Options {
	opts := create.Options{
		PackagePath:   c.PackagePath,
		Platforms:     c.Platforms,
		Products:      c.Products,
		Output:        c.Output,
		BuildPath:     c.BuildPath,
		Configuration: c.Configuration,

		Clean:             c.Clean,
		ExcludeSimulators: c.ExcludeSimulators || config.BoolOr(cfg.ExcludeSimulators, false),
		Distribution:      !c.NoDistribution && config.BoolOr(cfg.Distribution, true),
		FixSearchPaths:    !c.NoSearchPathFix,

		RelinkHeaders: c.RelinkHeaders,

		Zip:         c.Zip || config.BoolOr(cfg.Zip, false),
		SignKey:     c.SignKey,
		PointerFile: c.PointerFile,
	}

	if len(opts.Platforms) == 0 {
		opts.Platforms = cfg.Platforms
	}
	if len(opts.Products) == 0 {
		opts.Products = cfg.Products
	}
	if opts.Output == "" {
		opts.Output = cfg.Output
	}
	if opts.BuildPath == "" {
		opts.BuildPath = cfg.BuildPath
	}
	if opts.Configuration == "" {
		opts.Configuration = cfg.Configuration
	}

	return opts
}
