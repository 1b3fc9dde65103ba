package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes, safe to read from any goroutine.
//
// Seeded from linker flags at startup; the CLI layer overwrites them once
// flags are parsed, so every later consumer observes the merged state
// instead of re-deriving it from flags.
var (
	quietMode   atomic.Bool
	debugMode   atomic.Bool
	verboseMode atomic.Bool
)

// Seeds the modes from the raw linker-flag values. A value that does not
// parse as a boolean leaves its mode disabled.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
}

// Records whether warnings and errors are the only wanted output.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Reports whether quiet mode is in effect.
func IsQuiet() bool {
	return quietMode.Load()
}

// Records whether debug-level logging is wanted.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Reports whether debug mode is in effect.
func IsDebug() bool {
	return debugMode.Load()
}

// Records whether log records should carry their source location.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Reports whether verbose mode is in effect.
func IsVerbose() bool {
	return verboseMode.Load()
}
