package engine

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/propyaml/internal/fsops"
)

// memFS is an in-memory fsops.FS keyed by slash-separated absolute paths.
type memFS struct {
	files  map[string][]byte
	writes int
	failOn map[string]error
}

var _ fsops.FS = (*memFS)(nil)

func newMemFS(files map[string]string) *memFS {
	fs := &memFS{
		files:  make(map[string][]byte),
		failOn: make(map[string]error),
	}
	for p, content := range files {
		fs.files[filepath.ToSlash(p)] = []byte(content)
	}
	return fs
}

func (fs *memFS) content(p string) (string, bool) {
	data, ok := fs.files[filepath.ToSlash(p)]
	return string(data), ok
}

func (fs *memFS) Remove(p string) error {
	p = filepath.ToSlash(p)
	if err, ok := fs.failOn[p]; ok {
		return err
	}
	if _, ok := fs.files[p]; !ok {
		return os.ErrNotExist
	}
	delete(fs.files, p)
	fs.writes++
	return nil
}

func (fs *memFS) Copy(src, dst string) error {
	data, ok := fs.files[filepath.ToSlash(src)]
	if !ok {
		return os.ErrNotExist
	}
	fs.files[filepath.ToSlash(dst)] = append([]byte(nil), data...)
	fs.writes++
	return nil
}

func (fs *memFS) AtomicWrite(p string, data []byte, perm os.FileMode) error {
	p = filepath.ToSlash(p)
	if err, ok := fs.failOn[p]; ok {
		return err
	}
	fs.files[p] = append([]byte(nil), data...)
	fs.writes++
	return nil
}

func (fs *memFS) ReadFile(p string) ([]byte, error) {
	data, ok := fs.files[filepath.ToSlash(p)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (fs *memFS) WalkFiles(root string, fn func(relPath string) error) error {
	prefix := strings.TrimSuffix(filepath.ToSlash(root), "/") + "/"

	var rels []string
	for p := range fs.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rel := strings.TrimPrefix(p, prefix)
		if skipped(rel) {
			continue
		}
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	for _, rel := range rels {
		if err := fn(rel); err != nil {
			return err
		}
	}
	return nil
}

func skipped(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if fsops.SkipDirs[dir] {
			return true
		}
	}
	return false
}

func (fs *memFS) ValidateRelPath(relPath string) error {
	return fsops.ValidateRelPath(relPath)
}

var errInjected = errors.New("injected failure")
