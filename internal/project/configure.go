package project

import (
	"log/slog"
	"slices"

	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

// Build settings forming the distribution configuration profile.
//
// BUILD_LIBRARY_FOR_DISTRIBUTION enables module stability so the produced
// frameworks stay importable across compiler versions. SKIP_INSTALL must be
// off or the build tool discards the framework from the products directory.
var distributionSettings = map[string]string{
	"BUILD_LIBRARY_FOR_DISTRIBUTION": "YES",
	"SKIP_INSTALL":                   "NO",
}

// Applies the distribution configuration profile to the eligible targets.
//
// The profile is applied only to targets whose name appears in the eligible
// set. Transitive dependencies stay untouched: several common ones do not
// build under module stability, so a project-wide default would break them.
// Returns the names of the targets that were modified.
func (p *Project) ApplyDistributionSettings(eligible []string) []string {
	var touched []string

	for _, target := range p.Targets {
		if !slices.Contains(eligible, target.Name) {
			continue
		}
		for key, value := range distributionSettings {
			target.Settings[key] = value
		}
		touched = append(touched, target.Name)
	}

	if len(touched) > 0 {
		slog.Debug("applied distribution settings", "targets", touched)
	}
	return touched
}

// Injects header search paths the project generator omitted.
//
// The generator assumes an umbrella-header layout and leaves out the
// module-relative include directories that C targets declare. Without
// them, any target compiling against such a C target fails to find its
// headers. Every target gets the missing entries; injection is idempotent.
func (p *Project) FixHeaderSearchPaths(graph swiftpm.Graph) {
	var includeDirs []string
	for _, name := range graph.TargetNames() {
		target, ok := graph.Target(name)
		if !ok || !target.HasHeaders() {
			continue
		}
		includeDirs = append(includeDirs, target.IncludeDir())
	}
	if len(includeDirs) == 0 {
		return
	}

	for _, target := range p.Targets {
		for _, dir := range includeDirs {
			if slices.Contains(target.HeaderSearchPaths, dir) {
				continue
			}
			target.HeaderSearchPaths = append(target.HeaderSearchPaths, dir)
		}
	}

	slog.Debug("injected header search paths", "paths", includeDirs)
}
