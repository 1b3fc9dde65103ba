package build

import "errors"

var (
	ErrClean           = errors.New("cleaning build output failed")
	ErrMissingArtifact = errors.New("build produced no artifact")
)
