package create

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var ErrValidation = errors.New("validation failed")

// Checks the run options before any build is attempted.
//
// Fatal problems return an error and nothing is built. Advisory problems
// are printed as warnings and the run continues; they flag option
// combinations that work but probably do not do what the caller meant.
func validate(opts Options) error {
	if info, err := os.Stat(opts.PackagePath); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: package path %q is not a directory", ErrValidation, opts.PackagePath)
	}

	if opts.SignKey != "" {
		if _, err := os.Stat(opts.SignKey); err != nil {
			return fmt.Errorf("%w: signing key %q: %v", ErrValidation, opts.SignKey, err)
		}
	}

	// Advisory from here on.
	if opts.SignKey != "" && !opts.Zip {
		slog.Warn("signing key provided without --zip; nothing will be signed")
	}
	if opts.PointerFile != "" && !opts.Zip {
		slog.Warn("pointer file requested without --zip; no release files will be listed")
	}
	if !opts.Distribution {
		slog.Warn("distribution settings disabled; produced frameworks will not be module-stable")
	}

	return nil
}
