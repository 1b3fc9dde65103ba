package cli

import (
	"context"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/lowip/swift-create-xcframework/internal/catalog"
	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

// Represents the 'list' command.
type ListCmd struct {
	PackagePath       string   `short:"C" default:"." placeholder:"DIR" help:"Path to the package root."`
	Platforms         []string `placeholder:"NAME" help:"Platforms to resolve destinations for. Defaults to the package's declared platforms."`
	ExcludeSimulators bool     `help:"Skip simulator destinations."`
}

// Executes the list command.
//
// Prints the package's products and the destinations a create run with the
// same flags would build for.
func (c *ListCmd) Run(ctx context.Context) error {
	desc, err := swiftpm.Load(ctx, command.Local{}, c.PackagePath)
	if err != nil {
		return err
	}

	platforms := c.Platforms
	if len(platforms) == 0 {
		platforms = catalog.DefaultPlatforms(desc)
	}

	destinations, err := catalog.Destinations(platforms, c.ExcludeSimulators)
	if err != nil {
		return err
	}

	products := tablewriter.NewWriter(os.Stdout)
	products.Header("Product", "Kind", "Targets")
	for _, product := range desc.Products() {
		products.Append(product.Name, string(product.Kind), strings.Join(product.Targets, ", "))
	}
	if err := products.Render(); err != nil {
		return err
	}

	dests := tablewriter.NewWriter(os.Stdout)
	dests.Header("Destination", "SDK", "Simulator")
	for _, dest := range destinations {
		simulator := "no"
		if dest.IsSimulator() {
			simulator = "yes"
		}
		dests.Append(dest.Name, dest.SDK, simulator)
	}
	return dests.Render()
}
