// Package config loads the optional .seams.yaml defaults file and merges
// it with command-line flags, which always win.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = ".seams.yaml"

// FileDefaults is the shape of .seams.yaml. Unrecognized keys are ignored
// by yaml.Unmarshal; absence of the file entirely is not an error.
type FileDefaults struct {
	Concurrency int    `yaml:"concurrency"`
	FailFast    bool   `yaml:"fail_fast"`
	StatsOut    string `yaml:"stats_out"`
}

// Load reads <root>/.seams.yaml if present and returns its contents. A
// missing file yields a zero-value FileDefaults and no error.
func Load(root string) (FileDefaults, error) {
	path := filepath.Join(root, fileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return FileDefaults{}, nil
	}
	if err != nil {
		return FileDefaults{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var d FileDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return FileDefaults{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Run is the fully resolved configuration for one pipeline invocation:
// file defaults overlaid with explicitly-set flags.
type Run struct {
	Root                        string
	Concurrency                 int
	OverwriteAll                bool
	OverwriteUseCachedLocations bool
	FailFast                    bool
	UseMmap                     bool
	NoProgress                  bool
	StatsOut                    string
}

// Resolve merges file defaults under flags: any flag the caller marks as
// explicitly set (via flagsSet) always wins, otherwise a non-zero file
// default is used, and if the file supplies none the value already in
// flags stands (for an unset flag, that is its registered default, such
// as runtime.NumCPU() for concurrency).
func Resolve(flags Run, fileDefaults FileDefaults, flagsSet map[string]bool) Run {
	resolved := flags
	if !flagsSet["concurrency"] && fileDefaults.Concurrency != 0 {
		resolved.Concurrency = fileDefaults.Concurrency
	}
	if !flagsSet["fail-fast"] && fileDefaults.FailFast {
		resolved.FailFast = fileDefaults.FailFast
	}
	if !flagsSet["stats-out"] && fileDefaults.StatsOut != "" {
		resolved.StatsOut = fileDefaults.StatsOut
	}
	return resolved
}
