package integration

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/propyaml/internal/clock"
	"github.com/danieljhkim/propyaml/internal/engine"
	"github.com/danieljhkim/propyaml/internal/fsops"
	"github.com/danieljhkim/propyaml/internal/hash"
)

// testFS is an fsops.FS that keeps every file in memory, keyed by its
// slash-separated absolute path.
type testFS struct {
	files map[string][]byte
	modes map[string]os.FileMode
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		modes: make(map[string]os.FileMode),
	}
}

func (fs *testFS) put(path, content string) {
	fs.files[filepath.ToSlash(path)] = []byte(content)
}

func (fs *testFS) get(path string) (string, bool) {
	content, ok := fs.files[filepath.ToSlash(path)]
	return string(content), ok
}

// mode returns the permission a file was last written with.
func (fs *testFS) mode(path string) os.FileMode {
	return fs.modes[filepath.ToSlash(path)]
}

// snapshot returns a copy of every file.
func (fs *testFS) snapshot() map[string]string {
	out := make(map[string]string, len(fs.files))
	for p, content := range fs.files {
		out[p] = string(content)
	}
	return out
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[filepath.ToSlash(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	path = filepath.ToSlash(path)
	fs.files[path] = append([]byte(nil), data...)
	fs.modes[path] = perm
	return nil
}

func (fs *testFS) Copy(src, dst string) error {
	src, dst = filepath.ToSlash(src), filepath.ToSlash(dst)
	content, ok := fs.files[src]
	if !ok {
		return os.ErrNotExist
	}
	fs.files[dst] = append([]byte(nil), content...)
	fs.modes[dst] = fs.modes[src]
	return nil
}

func (fs *testFS) Remove(path string) error {
	path = filepath.ToSlash(path)
	if _, ok := fs.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(fs.files, path)
	delete(fs.modes, path)
	return nil
}

func (fs *testFS) WalkFiles(root string, fn func(relPath string) error) error {
	prefix := strings.TrimSuffix(filepath.ToSlash(root), "/") + "/"

	var rels []string
	for p := range fs.files {
		rel, ok := strings.CutPrefix(p, prefix)
		if !ok || inSkippedDir(rel) {
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

func inSkippedDir(rel string) bool {
	dirs := strings.Split(rel, "/")
	for _, dir := range dirs[:len(dirs)-1] {
		if fsops.SkipDirs[dir] {
			return true
		}
	}
	return false
}

func (fs *testFS) ValidateRelPath(relPath string) error {
	return fsops.ValidateRelPath(relPath)
}

func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, *hash.FakeHasher) {
	t.Helper()

	fs := newTestFS()
	hasher := hash.NewFakeHasher()
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	return engine.New(fs, hasher, clk), fs, hasher
}
