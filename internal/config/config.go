// Package config resolves the options of a conversion run.
//
// Options come from four layers, later layers winning: built-in defaults,
// the .propyaml.yaml file in the conversion root, PROPYAML_* variables
// (from a .env file in the root, then the process environment), and
// finally command-line flags applied by the CLI.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/propyaml/internal/docpath"
)

// RetirePolicy decides which matched source documents are removed after
// generation.
type RetirePolicy string

const (
	// RetireAlways removes every matched source, even when its target
	// collided with an existing document and nothing was generated.
	RetireAlways RetirePolicy = "always"

	// RetireConverted removes only sources whose target was generated.
	RetireConverted RetirePolicy = "converted"

	// RetireNever keeps every source.
	RetireNever RetirePolicy = "never"
)

// Valid reports whether p is a known policy.
func (p RetirePolicy) Valid() bool {
	switch p {
	case RetireAlways, RetireConverted, RetireNever:
		return true
	}
	return false
}

const (
	// ConfigFileName is the optional per-root configuration file.
	ConfigFileName = ".propyaml.yaml"

	// EnvFileName is the optional per-root dotenv file.
	EnvFileName = ".env"

	// StateDirName holds backups and other tool state under the root. It is
	// never scanned.
	StateDirName = ".propyaml"
)

// Options are the recognized settings of a conversion run.
type Options struct {
	// FilePattern selects the source documents to convert (glob, "**" by default).
	FilePattern string `yaml:"filePattern" json:"filePattern"`

	// SortKeys orders keys lexicographically at every level instead of by
	// first appearance.
	SortKeys bool `yaml:"sortKeys" json:"sortKeys"`

	// TargetSuffix is the extension given to generated documents: yml or yaml.
	TargetSuffix string `yaml:"targetSuffix" json:"targetSuffix"`

	// Retire selects which originals are removed.
	Retire RetirePolicy `yaml:"retire" json:"retire"`

	// BackupDir, when set, receives a copy of every retired original.
	// Relative paths are resolved against the root.
	BackupDir string `yaml:"backupDir" json:"backupDir,omitempty"`

	// Manifest, when set, is where the JSON run manifest is written.
	// Relative paths are resolved against the root.
	Manifest string `yaml:"manifest" json:"manifest,omitempty"`

	// Jobs is the number of documents scanned concurrently.
	Jobs int `yaml:"jobs" json:"jobs"`
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{
		FilePattern:  docpath.MatchAll,
		SortKeys:     false,
		TargetSuffix: "yml",
		Retire:       RetireAlways,
		Jobs:         1,
	}
}

// Normalize canonicalizes o in place and rejects invalid values.
func (o *Options) Normalize() error {
	o.FilePattern = docpath.NormalizePattern(strings.TrimSpace(o.FilePattern))
	if err := docpath.ValidatePattern(o.FilePattern); err != nil {
		return err
	}

	o.TargetSuffix = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(o.TargetSuffix), "."))
	if o.TargetSuffix == "" {
		o.TargetSuffix = "yml"
	}
	if o.TargetSuffix != "yml" && o.TargetSuffix != "yaml" {
		return fmt.Errorf("invalid target suffix %q: must be yml or yaml", o.TargetSuffix)
	}

	if o.Retire == "" {
		o.Retire = RetireAlways
	}
	o.Retire = RetirePolicy(strings.ToLower(string(o.Retire)))
	if !o.Retire.Valid() {
		return fmt.Errorf("invalid retire policy %q: must be always, converted or never", o.Retire)
	}

	if o.Jobs < 1 {
		o.Jobs = 1
	}
	return nil
}

// Resolve returns p relative to root unless it is already absolute.
func Resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
