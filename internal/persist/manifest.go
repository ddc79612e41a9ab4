package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/danieljhkim/propyaml/internal/config"
	"github.com/danieljhkim/propyaml/internal/fsops"
)

// ManifestVersion is the schema version written to new manifests.
const ManifestVersion = 1

// Manifest is the record of one conversion run.
type Manifest struct {
	// Version is the manifest schema version
	Version int `json:"version"`

	// Root is the directory the run converted
	Root string `json:"root"`

	// CreatedAt is when the run completed
	CreatedAt time.Time `json:"createdAt"`

	// Options are the effective options of the run
	Options config.Options `json:"options"`

	// Generated lists every document written
	Generated []GeneratedEntry `json:"generated"`

	// Collisions lists every source whose generation was skipped
	Collisions []CollisionEntry `json:"collisions"`

	// Retired lists every original removed
	Retired []RetiredEntry `json:"retired"`
}

// GeneratedEntry describes a generated document.
type GeneratedEntry struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	SourceHash string `json:"sourceHash"`
	TargetHash string `json:"targetHash"`
}

// CollisionEntry describes a skipped generation.
type CollisionEntry struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// RetiredEntry describes a retired original.
type RetiredEntry struct {
	Source string `json:"source"`

	// Backup is the path of the copy taken before removal, if any
	Backup string `json:"backup,omitempty"`

	// WithoutTarget is set when no converted document replaced the original
	WithoutTarget bool `json:"withoutTarget,omitempty"`
}

// NewManifest creates an empty manifest for a run over root.
func NewManifest(root string, opts config.Options, createdAt time.Time) *Manifest {
	return &Manifest{
		Version:    ManifestVersion,
		Root:       root,
		CreatedAt:  createdAt.UTC(),
		Options:    opts,
		Generated:  []GeneratedEntry{},
		Collisions: []CollisionEntry{},
		Retired:    []RetiredEntry{},
	}
}

// WriteManifest saves m to path atomically.
func WriteManifest(fs fsops.FS, path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := fs.AtomicWrite(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads the manifest at path.
// Returns os.ErrNotExist if it doesn't exist.
func ReadManifest(fs fsops.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &m, nil
}
