package project

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowip/swift-create-xcframework/internal/paths"
	"github.com/lowip/swift-create-xcframework/internal/swiftpm"
)

// Rewrites a target's header layout so its public headers are plain
// symbolic links in the declared include directory.
//
// Some packages expose public headers only as links inside a nonstandard
// subdirectory of the include directory, which the project generator does
// not understand. This walks the target's source root for header files,
// links each one directly into the include directory, removes the nested
// link directory, and re-links the umbrella header at the new location.
//
// The fix is best-effort and package-specific: a target name that does not
// exist in the graph is a no-op, not an error. Returns whether the layout
// was rewritten.
func NormalizeHeaderSymlinks(graph swiftpm.Graph, targetName string) (bool, error) {
	target, ok := graph.Target(targetName)
	if !ok {
		slog.Debug("header symlink fix skipped, target not found", "target", targetName)
		return false, nil
	}

	include := target.IncludeDir()
	headers, err := findHeaders(target.SourceRoot, include)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrProject, err)
	}
	if len(headers) == 0 {
		return false, nil
	}

	if err := os.MkdirAll(include, paths.DefaultDirMode); err != nil {
		return false, fmt.Errorf("%w: %w", ErrProject, err)
	}

	for _, header := range headers {
		if err := relink(include, header); err != nil {
			return false, err
		}
	}

	// The nested link directory is redundant once every header is linked
	// directly in the include directory.
	nested := filepath.Join(include, target.Name)
	if err := os.RemoveAll(nested); err != nil {
		return false, fmt.Errorf("%w: %w", ErrProject, err)
	}

	// The umbrella header may have been linked only through the nested
	// directory just removed; make sure its link exists at the top level.
	umbrella := target.Name + ".h"
	for _, header := range headers {
		if filepath.Base(header) == umbrella {
			if err := relink(include, header); err != nil {
				return false, err
			}
			break
		}
	}

	slog.Info("normalized header symlinks", "target", targetName, "headers", len(headers))
	return true, nil
}

// Collects header files under root, excluding the include directory itself.
func findHeaders(root, include string) ([]string, error) {
	var headers []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path == include {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(entry.Name(), ".h") {
			headers = append(headers, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return headers, nil
}

// Creates or replaces a relative symbolic link to header inside dir.
func relink(dir, header string) error {
	rel, err := filepath.Rel(dir, header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}

	link := filepath.Join(dir, filepath.Base(header))
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	if err := os.Symlink(rel, link); err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	return nil
}
