// Loads per-package defaults for the create command.
//
// A package can carry an .xcframework.yml at its root so CI invocations
// stay short; command-line flags always win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Name of the defaults file, looked up in the package root.
const Filename = ".xcframework.yml"

var ErrConfig = errors.New("config file invalid")

// Defaults a package declares for its own builds.
//
// Boolean options use pointers so "not set" stays distinguishable from an
// explicit false when merging with flags.
type Config struct {
	Platforms         []string `yaml:"platforms"`
	Products          []string `yaml:"products"`
	Output            string   `yaml:"output"`
	BuildPath         string   `yaml:"build-path"`
	Configuration     string   `yaml:"configuration"`
	Zip               *bool    `yaml:"zip"`
	Distribution      *bool    `yaml:"distribution"`
	ExcludeSimulators *bool    `yaml:"exclude-simulators"`
}

// Loads the defaults file from the package root.
//
// A missing file is not an error; it yields the zero configuration.
func Load(dir string) (*Config, error) {
	raw, err := os.ReadFile(filepath.Join(dir, Filename))
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return &cfg, nil
}

// Returns the pointer's value, or fallback when unset.
func BoolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
