package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrNoDestinations  = errors.New("no build destinations")
)

// A concrete build destination the external build tool can target.
//
// Destinations are enumerated once at startup from the requested platform
// list and are immutable thereafter. SDK doubles as the platform-variant
// identity at merge time: two destinations with the same SDK would collide
// in the umbrella bundle.
type Destination struct {
	Name  string // Human-readable platform name (e.g. "iOS Simulator").
	Build string // Destination specifier passed to the build tool.
	SDK   string // SDK identifier (e.g. "iphonesimulator").
}

// Whether this destination targets a simulator.
//
// The check is a case-insensitive substring match on the destination name,
// which is the contract the --exclude-simulators option is defined by.
func (d Destination) IsSimulator() bool {
	return strings.Contains(strings.ToLower(d.Name), "simulator")
}

// Name of the built-products directory for this destination.
//
// The build tool writes products to "<configuration>-<sdk>" for every
// platform except macOS, which uses the bare configuration name.
func (d Destination) ProductsDir(configuration string) string {
	if d.SDK == "macosx" {
		return configuration
	}
	return configuration + "-" + d.SDK
}

// Destinations for each supported platform request, in build order.
//
// Device destinations precede their simulator counterparts so that merge
// output lists device slices first.
var platformDestinations = map[string][]Destination{
	"ios": {
		{Name: "iOS", Build: "generic/platform=iOS", SDK: "iphoneos"},
		{Name: "iOS Simulator", Build: "generic/platform=iOS Simulator", SDK: "iphonesimulator"},
	},
	"maccatalyst": {
		{Name: "Mac Catalyst", Build: "generic/platform=macOS,variant=Mac Catalyst", SDK: "maccatalyst"},
	},
	"macos": {
		{Name: "macOS", Build: "generic/platform=macOS", SDK: "macosx"},
	},
	"tvos": {
		{Name: "tvOS", Build: "generic/platform=tvOS", SDK: "appletvos"},
		{Name: "tvOS Simulator", Build: "generic/platform=tvOS Simulator", SDK: "appletvsimulator"},
	},
	"visionos": {
		{Name: "visionOS", Build: "generic/platform=visionOS", SDK: "xros"},
		{Name: "visionOS Simulator", Build: "generic/platform=visionOS Simulator", SDK: "xrsimulator"},
	},
	"watchos": {
		{Name: "watchOS", Build: "generic/platform=watchOS", SDK: "watchos"},
		{Name: "watchOS Simulator", Build: "generic/platform=watchOS Simulator", SDK: "watchsimulator"},
	},
}

// Flattens a requested platform list into an ordered destination list.
//
// Each platform expands to its device and simulator destinations in a fixed
// order; requesting the same platform twice does not duplicate destinations.
// With excludeSimulators set, simulator destinations are dropped. An
// unrecognized platform name is a fatal validation error, and so is a
// request whose destinations were all filtered out.
func Destinations(platforms []string, excludeSimulators bool) ([]Destination, error) {
	var flat []Destination
	seen := make(map[string]bool)

	for _, platform := range platforms {
		expanded, ok := platformDestinations[strings.ToLower(strings.TrimSpace(platform))]
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownPlatform, platform, strings.Join(SupportedPlatforms(), ", "))
		}
		for _, dest := range expanded {
			if seen[dest.SDK] {
				continue
			}
			if excludeSimulators && dest.IsSimulator() {
				continue
			}
			seen[dest.SDK] = true
			flat = append(flat, dest)
		}
	}

	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: platforms %v resolve to nothing buildable", ErrNoDestinations, platforms)
	}

	return flat, nil
}

// Returns the supported platform request names, sorted.
func SupportedPlatforms() []string {
	names := make([]string, 0, len(platformDestinations))
	for name := range platformDestinations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
