// Package fsops provides the filesystem operations of a conversion run.
//
// Every read and mutation goes through the FS interface, so the engine can be
// exercised against an in-memory fake. The real implementation never leaves
// a half-written document behind: content is written to a temp file in the
// target directory and renamed into place.
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SkipDirs are directory names never descended into during discovery.
var SkipDirs = map[string]bool{
	".git":      true,
	".propyaml": true,
}

// ErrUnsafePath indicates a relative path that is empty, absolute or escapes
// its root.
var ErrUnsafePath = errors.New("unsafe relative path")

// FS is the set of filesystem operations used by the engine.
type FS interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// AtomicWrite replaces path with data, creating parent directories.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// Copy copies a regular file from src to dst, creating parent directories.
	Copy(src, dst string) error

	// Remove removes a file.
	Remove(path string) error

	// WalkFiles calls fn with the slash-separated root-relative path of every
	// regular file under root, in lexical order. Directories named in
	// SkipDirs are not visited.
	WalkFiles(root string, fn func(relPath string) error) error

	// ValidateRelPath rejects root-relative paths that are unsafe to join.
	ValidateRelPath(relPath string) error
}

// RealFS implements FS on the host filesystem.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// Copy streams src into dst and keeps the permission bits of src.
func (fs *RealFS) Copy(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot copy %q: not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close destination: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Sync()
}

// AtomicWrite writes data to a temp file beside path, then renames it over
// path. On any failure the temp file is removed and path is untouched.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".propyaml-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		run  func() error
	}{
		{"write", func() error { _, err := tmp.Write(data); return err }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), perm) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("failed to %s %s: %w", step.what, path, err)
		}
	}

	committed = true
	return nil
}

// WalkFiles walks root without following symlinks.
func (fs *RealFS) WalkFiles(root string, fn func(relPath string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && SkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		return fn(filepath.ToSlash(rel))
	})
}

func (fs *RealFS) ValidateRelPath(relPath string) error {
	return ValidateRelPath(relPath)
}

// ValidateRelPath rejects empty, absolute and root-escaping paths.
func ValidateRelPath(relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	switch {
	case relPath == "" || cleaned == ".":
		return fmt.Errorf("%w: empty path", ErrUnsafePath)
	case filepath.IsAbs(cleaned) || strings.HasPrefix(relPath, "/"):
		return fmt.Errorf("%w: %q is absolute", ErrUnsafePath, relPath)
	case cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)):
		return fmt.Errorf("%w: %q escapes the root", ErrUnsafePath, relPath)
	}
	return nil
}
