package xcodebuild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lowip/swift-create-xcframework/internal/catalog"
	"github.com/lowip/swift-create-xcframework/internal/command"
)

type fakeRunner struct {
	result *command.Result
	err    error
	last   command.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd command.Command) (*command.Result, error) {
	f.last = cmd
	return f.result, f.err
}

func TestArchiveArgs(t *testing.T) {
	args := archiveArgs(ArchiveOptions{
		ProjectPath:   "/pkg/.build/Example.xcodeproj",
		Scheme:        "Example",
		Destination:   catalog.Destination{Name: "iOS", Build: "generic/platform=iOS", SDK: "iphoneos"},
		Configuration: "Release",
		DerivedData:   "/cache/DerivedData",
		BuildDir:      "/pkg/.build/products",
		Settings: map[string]string{
			"SKIP_INSTALL":                   "NO",
			"BUILD_LIBRARY_FOR_DISTRIBUTION": "YES",
		},
	})

	require.Equal(t, []string{
		"build",
		"-project", "/pkg/.build/Example.xcodeproj",
		"-scheme", "Example",
		"-destination", "generic/platform=iOS",
		"-configuration", "Release",
		"-derivedDataPath", "/cache/DerivedData",
		"BUILD_DIR=/pkg/.build/products",
		"BUILD_LIBRARY_FOR_DISTRIBUTION=YES",
		"SKIP_INSTALL=NO",
	}, args)
}

func TestCreateArgsOrderAndSymbols(t *testing.T) {
	args := createArgs([]Slice{
		{Framework: "/a/X.framework", DebugSymbols: "/a/X.framework.dSYM"},
		{Framework: "/b/X.framework"},
	}, "/out/X.xcframework")

	require.Equal(t, []string{
		"-create-xcframework",
		"-framework", "/a/X.framework",
		"-debug-symbols", "/a/X.framework.dSYM",
		"-framework", "/b/X.framework",
		"-output", "/out/X.xcframework",
	}, args)
}

func TestArchiveSurfacesExit(t *testing.T) {
	runner := &fakeRunner{result: &command.Result{ExitCode: 65, Stderr: "error: scheme not found\n"}}

	err := Archive(context.Background(), runner, ArchiveOptions{
		Destination: catalog.Destination{Name: "iOS", SDK: "iphoneos"},
	})
	require.ErrorIs(t, err, ErrXcodebuild)
	require.Contains(t, err.Error(), "scheme not found")
	require.Equal(t, "xcodebuild", runner.last.Program)
}

func TestCreateXCFrameworkSurfacesExit(t *testing.T) {
	runner := &fakeRunner{result: &command.Result{ExitCode: 70, Stderr: "binaries with equivalent library identifiers\n"}}

	err := CreateXCFramework(context.Background(), runner, []Slice{{Framework: "/a/X.framework"}}, "/out/X.xcframework")
	require.ErrorIs(t, err, ErrXcodebuild)
	require.Contains(t, err.Error(), "equivalent library identifiers")
}

func TestArchiveSuccess(t *testing.T) {
	runner := &fakeRunner{result: &command.Result{}}

	err := Archive(context.Background(), runner, ArchiveOptions{
		Destination: catalog.Destination{Name: "macOS", SDK: "macosx"},
	})
	require.NoError(t, err)
}
