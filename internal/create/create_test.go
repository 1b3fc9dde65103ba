package create

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/lowip/swift-create-xcframework/internal/command"
)

const describeJSON = `{
  "name": "Example",
  "path": %q,
  "platforms": [{"name": "iOS", "version": "12.0"}],
  "products": [
    {"name": "CoreKit", "targets": ["CoreKit"], "type": {"library": ["automatic"]}},
    {"name": "Extras", "targets": ["Extras"], "type": {"library": ["automatic"]}}
  ],
  "targets": [
    {"name": "CoreKit", "module_type": "SwiftTarget", "path": "Sources/CoreKit"},
    {"name": "Extras", "module_type": "SwiftTarget", "path": "Sources/Extras"}
  ]
}`

var sdkByDestination = map[string]string{
	"generic/platform=iOS":           "Release-iphoneos",
	"generic/platform=iOS Simulator": "Release-iphonesimulator",
	"generic/platform=macOS":         "Release",
}

// Stands in for every external tool the pipeline drives.
type toolRunner struct {
	t        *testing.T
	pkg      string
	products []string

	failDestination string // destination whose build exits non-zero

	builds []string // destinations built, in invocation order
	merges []command.Command
}

func (r *toolRunner) Run(_ context.Context, cmd command.Command) (*command.Result, error) {
	switch {
	case cmd.Program == "swift":
		return &command.Result{Stdout: fmt.Sprintf(describeJSON, r.pkg)}, nil

	case cmd.Program == "xcodegen":
		return &command.Result{}, nil

	case cmd.Program == "xcodebuild" && cmd.Args[0] == "build":
		dest := argValue(cmd.Args, "-destination")
		r.builds = append(r.builds, dest)
		if dest == r.failDestination {
			return &command.Result{ExitCode: 65, Stderr: "error: compile failed\n"}, nil
		}

		buildDir := settingValue(cmd.Args, "BUILD_DIR")
		productsDir := filepath.Join(buildDir, sdkByDestination[dest])
		for _, product := range r.products {
			if err := os.MkdirAll(filepath.Join(productsDir, product+".framework"), 0755); err != nil {
				r.t.Fatal(err)
			}
		}
		return &command.Result{}, nil

	case cmd.Program == "xcodebuild" && cmd.Args[0] == "-create-xcframework":
		r.merges = append(r.merges, cmd)
		output := argValue(cmd.Args, "-output")
		if err := os.MkdirAll(output, 0755); err != nil {
			r.t.Fatal(err)
		}
		return &command.Result{}, nil
	}

	r.t.Fatalf("unexpected command: %s %v", cmd.Program, cmd.Args)
	return nil, nil
}

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func settingValue(args []string, key string) string {
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, key+"="); ok {
			return v
		}
	}
	return ""
}

func newToolRunner(t *testing.T) *toolRunner {
	return &toolRunner{
		t:        t,
		pkg:      t.TempDir(),
		products: []string{"CoreKit", "Extras"},
	}
}

func baseOptions(pkg string) Options {
	return Options{
		PackagePath:    pkg,
		Distribution:   true,
		FixSearchPaths: true,
	}
}

func TestRunProducesBundlePerProduct(t *testing.T) {
	runner := newToolRunner(t)

	summary, err := Run(context.Background(), runner, baseOptions(runner.pkg))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Two products, declared platform ios => device + simulator.
	if len(summary.Bundles) != 2 {
		t.Fatalf("got %d bundles, want 2", len(summary.Bundles))
	}
	for _, bundle := range summary.Bundles {
		if bundle.Platforms != 2 {
			t.Fatalf("bundle %s has %d platform slices, want 2", bundle.Product, bundle.Platforms)
		}
		if _, err := os.Stat(bundle.Path); err != nil {
			t.Fatalf("bundle path missing: %v", err)
		}
	}

	if len(runner.builds) != 2 {
		t.Fatalf("builder invoked %d times, want once per destination", len(runner.builds))
	}
	if runner.builds[0] != "generic/platform=iOS" || runner.builds[1] != "generic/platform=iOS Simulator" {
		t.Fatalf("destinations built out of order: %v", runner.builds)
	}

	// Merge arguments list the device slice before the simulator slice.
	for _, mergeCmd := range runner.merges {
		deviceIdx := slices.IndexFunc(mergeCmd.Args, func(a string) bool { return strings.Contains(a, "Release-iphoneos/") })
		simIdx := slices.IndexFunc(mergeCmd.Args, func(a string) bool { return strings.Contains(a, "Release-iphonesimulator/") })
		if deviceIdx < 0 || simIdx < 0 || deviceIdx > simIdx {
			t.Fatalf("merge slice order wrong: %v", mergeCmd.Args)
		}
	}
}

func TestRunExcludeSimulators(t *testing.T) {
	runner := newToolRunner(t)
	opts := baseOptions(runner.pkg)
	opts.ExcludeSimulators = true

	summary, err := Run(context.Background(), runner, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, bundle := range summary.Bundles {
		if bundle.Platforms != 1 {
			t.Fatalf("bundle %s has %d slices, want only the device slice", bundle.Product, bundle.Platforms)
		}
	}
	if len(runner.builds) != 1 {
		t.Fatalf("builder invoked %d times, want 1", len(runner.builds))
	}
}

func TestRunBuildFailureProducesNothing(t *testing.T) {
	runner := newToolRunner(t)
	runner.failDestination = "generic/platform=iOS Simulator"

	summary, err := Run(context.Background(), runner, baseOptions(runner.pkg))
	if err == nil {
		t.Fatal("expected error for failed platform build")
	}
	if summary != nil {
		t.Fatal("failed run returned a summary")
	}
	if len(runner.merges) != 0 {
		t.Fatal("merge ran despite a failed platform build")
	}

	// No merged bundle for any product, including ones whose builds passed.
	entries, _ := os.ReadDir(filepath.Join(runner.pkg, "dist"))
	if len(entries) != 0 {
		t.Fatalf("output directory populated after failure: %v", entries)
	}
}

func TestRunIdempotentOutput(t *testing.T) {
	runner := newToolRunner(t)
	opts := baseOptions(runner.pkg)

	if _, err := Run(context.Background(), runner, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	summary, err := Run(context.Background(), runner, opts)
	if err != nil {
		t.Fatalf("second run over populated output: %v", err)
	}
	if len(summary.Bundles) != 2 {
		t.Fatalf("second run produced %d bundles, want 2", len(summary.Bundles))
	}
}

func TestRunProductFilter(t *testing.T) {
	runner := newToolRunner(t)
	opts := baseOptions(runner.pkg)
	opts.Products = []string{"Core*"}

	summary, err := Run(context.Background(), runner, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Bundles) != 1 || summary.Bundles[0].Product != "CoreKit" {
		t.Fatalf("bundles = %v, want only CoreKit", summary.Bundles)
	}
}

func TestRunZipAndPointer(t *testing.T) {
	runner := newToolRunner(t)
	opts := baseOptions(runner.pkg)
	opts.Zip = true
	opts.PointerFile = filepath.Join(runner.pkg, "artifacts.txt")

	summary, err := Run(context.Background(), runner, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(summary.Outputs))
	}
	for _, output := range summary.Outputs {
		if _, err := os.Stat(output.Archive); err != nil {
			t.Fatalf("archive missing: %v", err)
		}
		if _, err := os.Stat(output.Checksum); err != nil {
			t.Fatalf("checksum missing: %v", err)
		}
	}

	pointer, err := os.ReadFile(opts.PointerFile)
	if err != nil {
		t.Fatalf("pointer file: %v", err)
	}
	for _, output := range summary.Outputs {
		if !strings.Contains(string(pointer), output.Archive) {
			t.Fatalf("pointer file missing %s", output.Archive)
		}
	}
}

func TestRunRejectsBadPackagePath(t *testing.T) {
	runner := newToolRunner(t)
	opts := baseOptions(filepath.Join(runner.pkg, "absent"))

	if _, err := Run(context.Background(), runner, opts); err == nil {
		t.Fatal("expected validation error for missing package path")
	}
}
