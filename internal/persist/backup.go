package persist

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/propyaml/internal/fsops"
)

// BackupManager copies originals into a timestamped directory before they
// are retired.
type BackupManager struct {
	fs   fsops.FS
	root string
	dir  string
}

// NewBackupManager creates a BackupManager that copies documents under root
// into backupDir/stamp.
func NewBackupManager(fs fsops.FS, root, backupDir, stamp string) *BackupManager {
	return &BackupManager{
		fs:   fs,
		root: root,
		dir:  filepath.Join(backupDir, stamp),
	}
}

// Dir returns the directory backups of this run are written to.
func (b *BackupManager) Dir() string {
	return b.dir
}

// Backup copies the document at relPath and returns the path of the copy.
func (b *BackupManager) Backup(relPath string) (string, error) {
	if err := b.fs.ValidateRelPath(relPath); err != nil {
		return "", fmt.Errorf("invalid backup path: %w", err)
	}

	src := filepath.Join(b.root, filepath.FromSlash(relPath))
	dst := filepath.Join(b.dir, filepath.FromSlash(relPath))

	if err := b.fs.Copy(src, dst); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", relPath, err)
	}
	return dst, nil
}
