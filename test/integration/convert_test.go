package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/propyaml/internal/clock"
	"github.com/danieljhkim/propyaml/internal/config"
	"github.com/danieljhkim/propyaml/internal/engine"
	"github.com/danieljhkim/propyaml/internal/fsops"
	"github.com/danieljhkim/propyaml/internal/hash"
	"github.com/danieljhkim/propyaml/internal/persist"
)

func TestConvert_MultiModuleProject(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()

	fs.put("/repo/api/src/main/resources/application.properties",
		"# HTTP settings\nserver.port=8080\nserver.servlet.context-path=/api\n\n"+
			"# Datasource\n! legacy marker\nspring.datasource.url=jdbc:postgresql://db:5432/app\n"+
			"spring.datasource.username=app\n")
	fs.put("/repo/worker/src/main/resources/application.properties",
		"worker.threads=4\nworker.queue.name=jobs\n")
	fs.put("/repo/worker/src/main/resources/application-dev.yml",
		"worker:\n  threads: 1\n")
	fs.put("/repo/.git/config", "[core]\n")

	opts := config.Defaults()
	result, err := eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: opts})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	require.Len(t, result.Generated, 2)
	assert.Empty(t, result.Collisions)

	api, ok := fs.get("/repo/api/src/main/resources/application.yml")
	require.True(t, ok, "api application.yml not generated")
	wantAPI := "server:\n" +
		"  # HTTP settings\n" +
		"  port: 8080\n" +
		"  servlet:\n" +
		"    context-path: /api\n" +
		"spring:\n" +
		"  datasource:\n" +
		"    # Datasource\n" +
		"    # legacy marker\n" +
		"    url: \"jdbc:postgresql://db:5432/app\"\n" +
		"    username: app\n"
	if diff := cmp.Diff(wantAPI, api); diff != "" {
		t.Errorf("api application.yml mismatch (-want +got):\n%s", diff)
	}

	worker, ok := fs.get("/repo/worker/src/main/resources/application.yml")
	require.True(t, ok, "worker application.yml not generated")
	assert.Equal(t, "worker:\n  threads: 4\n  queue:\n    name: jobs\n", worker)
	assert.Equal(t, os.FileMode(0644), fs.mode("/repo/worker/src/main/resources/application.yml"))

	dev, _ := fs.get("/repo/worker/src/main/resources/application-dev.yml")
	assert.Equal(t, "worker:\n  threads: 1\n", dev, "unrelated YAML must be untouched")

	_, ok = fs.get("/repo/api/src/main/resources/application.properties")
	assert.False(t, ok, "original should be retired")
}

func TestConvert_ExistingTargetIsNeverOverwritten(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()

	fs.put("/repo/conf/app.properties", "a.b=from-properties\n")
	fs.put("/repo/conf/app.yml", "a:\n  b: from-yaml\n")
	fs.put("/repo/conf/other.properties", "c=1\n")

	opts := config.Defaults()
	opts.FilePattern = "conf/app.properties"
	opts.Retire = config.RetireConverted

	result, err := eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: opts})
	require.NoError(t, err)

	require.Len(t, result.Collisions, 1)
	assert.Equal(t, "conf/app.properties", result.Collisions[0].SourcePath)
	assert.Empty(t, result.Generated)
	assert.Empty(t, result.Retired)

	got, _ := fs.get("/repo/conf/app.yml")
	assert.Equal(t, "a:\n  b: from-yaml\n", got)
	_, ok := fs.get("/repo/conf/app.properties")
	assert.True(t, ok, "converted policy keeps sources whose target collided")
	_, ok = fs.get("/repo/conf/other.yml")
	assert.False(t, ok, "source outside the pattern must not be converted")
}

func TestConvert_FailureLeavesRootUntouched(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()

	fs.put("/repo/a.properties", "ok=1\n")
	fs.put("/repo/b.properties", "db=postgres\ndb.host=localhost\n")
	fs.put("/repo/c.properties", "also.ok=2\n")
	before := fs.snapshot()

	_, err := eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: config.Defaults()})
	require.ErrorIs(t, err, engine.ErrStructuralConflict)
	assert.Contains(t, err.Error(), "b.properties")

	if diff := cmp.Diff(before, fs.snapshot()); diff != "" {
		t.Errorf("filesystem changed after a failed run (-before +after):\n%s", diff)
	}
}

func TestConvert_ConfigFileInRoot(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := context.Background()

	fs.put("/repo/.propyaml.yaml", "sortKeys: true\ntargetSuffix: .yaml\nretire: never\n")
	fs.put("/repo/app.properties", "z=26\na=1\n")

	opts, err := config.Load(fs, "/repo")
	require.NoError(t, err)

	_, err = eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: opts})
	require.NoError(t, err)

	got, ok := fs.get("/repo/app.yaml")
	require.True(t, ok)
	assert.Equal(t, "a: 1\nz: 26\n", got)
	_, ok = fs.get("/repo/app.properties")
	assert.True(t, ok)
}

func TestConvert_ManifestAndBackups(t *testing.T) {
	eng, fs, hasher := setupTestEngine(t)
	ctx := context.Background()

	fs.put("/repo/app.properties", "k=v\n")
	hasher.SetHash("k=v\n", "source-digest")
	hasher.SetHash("k: v\n", "target-digest")

	opts := config.Defaults()
	opts.BackupDir = ".propyaml/backup"
	opts.Manifest = ".propyaml/manifest.json"

	result, err := eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: opts})
	require.NoError(t, err)

	backup, ok := fs.get("/repo/.propyaml/backup/20240101T120000Z/app.properties")
	require.True(t, ok, "backup not written")
	assert.Equal(t, "k=v\n", backup)

	m, err := persist.ReadManifest(fs, result.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, "/repo", m.Root)
	require.Len(t, m.Generated, 1)
	assert.Equal(t, "source-digest", m.Generated[0].SourceHash)
	assert.Equal(t, "target-digest", m.Generated[0].TargetHash)
	require.Len(t, m.Retired, 1)
	assert.Equal(t, filepath.Join("/repo/.propyaml/backup/20240101T120000Z", "app.properties"), m.Retired[0].Backup)

	// A second run finds nothing new: the state directory is never scanned.
	second, err := eng.Convert(ctx, &engine.ConvertRequest{Root: "/repo", Options: opts})
	require.NoError(t, err)
	assert.Empty(t, second.Generated)
	assert.Empty(t, second.Retired)
}

// TestConvert_RoundTrip converts on the real filesystem and reads the
// generated document back: the flattened keys must reproduce the source.
func TestConvert_RoundTrip(t *testing.T) {
	root := t.TempDir()
	source := "# values that need quoting\n" +
		"app.name=propyaml\n" +
		"app.empty=\n" +
		"app.url=http://localhost:8080\n" +
		"app.greeting=\\ hello\n" +
		"app.log=/var/log\\\\app\n" +
		"app.pattern=x{HH}\\t%m\n" +
		"app.quote=say \"hi\"\n" +
		"app.apostrophe=it's\n" +
		"app.hash=a#b\n" +
		"app.limits.max=10\n" +
		"app.limits.min=1\n" +
		"enabled=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.properties"), []byte(source), 0644))

	fs := fsops.NewRealFS()
	eng := engine.New(fs, hash.NewSHA256Hasher(), &clock.RealClock{})
	ctx := context.Background()

	opts := config.Defaults()
	opts.Retire = config.RetireNever
	_, err := eng.Convert(ctx, &engine.ConvertRequest{Root: root, Options: opts})
	require.NoError(t, err)

	fromProperties, err := eng.RenderDocument(ctx, &engine.RenderRequest{Path: filepath.Join(root, "app.properties")})
	require.NoError(t, err)
	fromYAML, err := eng.RenderDocument(ctx, &engine.RenderRequest{Path: filepath.Join(root, "app.yml")})
	require.NoError(t, err)

	want := make(map[string]string)
	for _, e := range fromProperties.Flat {
		want[e.Key] = e.Value
	}
	got := make(map[string]string)
	for _, e := range fromYAML.Flat {
		got[e.Key] = e.Value
	}

	// values are carried over as written, escapes included
	assert.Equal(t, `\ hello`, want["app.greeting"])
	assert.Equal(t, `/var/log\\app`, want["app.log"])
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-properties +yaml):\n%s", diff)
	}
	assert.Equal(t, fromProperties.Content, fromYAML.Content, "re-rendering the generated document is stable")
}
