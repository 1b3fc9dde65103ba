package project

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lowip/swift-create-xcframework/internal/command"
	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

// Project generator executable.
const generator = "xcodegen"

// Builds a fresh build description for the package from its graph.
//
// One entry per package target, no settings: every correction the pipeline
// needs is applied on top by the configurator, so the synthesized base is
// deterministic and carries no state from previous runs. The description is
// saved to path by [Project.Save].
func Synthesize(name string, graph swiftpm.Graph, path string) *Project {
	p := &Project{Name: name, path: path}

	names := graph.TargetNames()
	sort.Strings(names)
	for _, targetName := range names {
		p.Targets = append(p.Targets, &Target{
			Name:     targetName,
			Settings: make(map[string]string),
		})
	}

	return p
}

// Runs the external project generator against the saved description.
//
// The generator owns everything about the produced project except the
// per-target settings this tool injected; its failure is fatal since no
// build can happen without a project.
func Generate(ctx context.Context, runner command.Runner, specPath, projectPath string) error {
	slog.Debug("generating project", "spec", specPath, "project", projectPath)

	result, err := runner.Run(ctx, command.Command{
		Program: generator,
		Args:    []string{"generate", "--spec", specPath, "--project", projectPath, "--quiet"},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: generator exited %d: %s", ErrProject, result.ExitCode, result.StderrTail(10))
	}

	return nil
}
