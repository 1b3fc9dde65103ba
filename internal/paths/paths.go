package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "swift-create-xcframework"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the cache directory for intermediate build state.
//
//	Linux:   ~/.cache/swift-create-xcframework
//	macOS:   ~/Library/Caches/swift-create-xcframework
func Cache() string {
	return filepath.Join(xdg.CacheHome, toolName)
}

// Default derived-data path passed to the external build tool when the
// caller does not override it with --build-path.
//
// Keeping derived data outside the package tree avoids polluting .build
// and lets repeated runs reuse incremental build state.
func DerivedData() string {
	return filepath.Join(Cache(), "DerivedData")
}
