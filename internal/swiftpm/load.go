package swiftpm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lowip/swift-create-xcframework/internal/command"
)

var ErrDescribe = errors.New("package description failed")

// Wire format of `swift package describe --type json`.
type describeJSON struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Platforms []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"platforms"`
	Products []struct {
		Name    string                     `json:"name"`
		Targets []string                   `json:"targets"`
		Type    map[string]json.RawMessage `json:"type"`
	} `json:"products"`
	Targets []struct {
		Name       string `json:"name"`
		ModuleType string `json:"module_type"`
		Path       string `json:"path"`
	} `json:"targets"`
}

// Loads the resolved description of the package rooted at dir.
//
// Shells out to the package manager, which resolves the manifest and
// dependency graph itself; this tool only consumes the reported JSON.
func Load(ctx context.Context, runner command.Runner, dir string) (*Description, error) {
	result, err := runner.Run(ctx, command.Command{
		Program: "swift",
		Args:    []string{"package", "describe", "--type", "json"},
		Dir:     dir,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescribe, err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("%w: swift package describe exited %d: %s",
			ErrDescribe, result.ExitCode, result.StderrTail(5))
	}

	return parse([]byte(result.Stdout), dir)
}

// Decodes a package description from raw describe JSON.
func parse(raw []byte, dir string) (*Description, error) {
	var wire describeJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: decoding description: %w", ErrDescribe, err)
	}
	if wire.Name == "" {
		return nil, fmt.Errorf("%w: description has no package name", ErrDescribe)
	}

	root := wire.Path
	if root == "" {
		root = dir
	}

	desc := &Description{
		Name: wire.Name,
		Root: root,
	}

	for _, p := range wire.Platforms {
		desc.Platforms = append(desc.Platforms, PlatformRequirement{
			Name:    strings.ToLower(p.Name),
			Version: p.Version,
		})
	}

	for _, p := range wire.Products {
		desc.products = append(desc.products, Product{
			Name:    p.Name,
			Kind:    productKind(p.Type),
			Targets: p.Targets,
		})
	}

	for _, t := range wire.Targets {
		sourceRoot := t.Path
		if !filepath.IsAbs(sourceRoot) {
			sourceRoot = filepath.Join(root, sourceRoot)
		}
		desc.targets = append(desc.targets, Target{
			Name:       t.Name,
			ModuleType: t.ModuleType,
			SourceRoot: sourceRoot,
		})
	}

	return desc, nil
}

// Maps the describe product type object to a [ProductKind].
//
// The wire format encodes the kind as the single key of an object, e.g.
// {"library": ["automatic"]} or {"executable": null}.
func productKind(wire map[string]json.RawMessage) ProductKind {
	for kind := range wire {
		return ProductKind(kind)
	}
	return ""
}
