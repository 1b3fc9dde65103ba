package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lowip/swift-create-xcframework/internal/paths"
)

var ErrProject = errors.New("project description failed")

// A target in the generated build description.
type Target struct {
	Name              string            `json:"name"`
	Settings          map[string]string `json:"settings,omitempty"`
	HeaderSearchPaths []string          `json:"headerSearchPaths,omitempty"`
}

// The generated build description for a package.
//
// The project generator emits one settings document per generated project;
// this type loads it, lets the configurator mutate targets, and writes it
// back. Everything else about the generated project (schemes, file
// references) is owned by the generator and never touched here.
type Project struct {
	Name    string    `json:"name"`
	Targets []*Target `json:"targets"`

	path string
}

// Loads the generated build description from its settings document.
func Load(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProject, err)
	}

	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrProject, path, err)
	}
	p.path = path

	for _, target := range p.Targets {
		if target.Settings == nil {
			target.Settings = make(map[string]string)
		}
	}

	return &p, nil
}

// Writes the mutated build description back to its settings document.
//
// Encoding is indented with sorted keys, so repeated runs produce
// byte-identical output for identical settings.
func (p *Project) Save() error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	if err := os.WriteFile(p.path, append(raw, '\n'), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrProject, err)
	}
	return nil
}

// Looks up a target by name.
func (p *Project) Target(name string) (*Target, bool) {
	for _, target := range p.Targets {
		if target.Name == name {
			return target, true
		}
	}
	return nil, false
}
