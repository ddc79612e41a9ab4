package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/propyaml/internal/engine"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func readFile(t *testing.T, p string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatalf("failed to read %s: %v", p, err)
	}
	return string(data), true
}

func TestConvertCommand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/application.properties": "my.string=value\nmy.boolean=true\n",
	})

	out, _, err := executeCommand(t, "convert", root, "--sort-keys")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	got, ok := readFile(t, filepath.Join(root, "src", "application.yml"))
	if !ok {
		t.Fatal("application.yml was not generated")
	}
	if want := "my:\n  boolean: true\n  string: value\n"; got != want {
		t.Errorf("application.yml = %q, want %q", got, want)
	}
	if _, ok := readFile(t, filepath.Join(root, "src", "application.properties")); ok {
		t.Error("original should have been retired")
	}
	if !strings.Contains(out, "Generated 1 document, retired 1 original") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConvertCommand_ConfigLayers(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".propyaml.yaml": "targetSuffix: yaml\nretire: never\n",
		".env":           "PROPYAML_SORT_KEYS=true\n",
		"app.properties": "b=2\na=1\n",
	})

	if _, _, err := executeCommand(t, "convert", root); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	got, ok := readFile(t, filepath.Join(root, "app.yaml"))
	if !ok {
		t.Fatal("app.yaml was not generated")
	}
	if got != "a: 1\nb: 2\n" {
		t.Errorf("app.yaml = %q, want sorted keys", got)
	}
	if _, ok := readFile(t, filepath.Join(root, "app.properties")); !ok {
		t.Error("retire: never should keep the original")
	}
}

func TestConvertCommand_FlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".propyaml.yaml":    "retire: never\n",
		"keep/a.properties": "a=1\n",
		"drop/b.properties": "b=2\n",
	})
	t.Setenv("PROPYAML_RETIRE", "never")

	_, _, err := executeCommand(t, "convert", root, "--retire", "converted", "--pattern", "drop/**")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	if _, ok := readFile(t, filepath.Join(root, "drop", "b.properties")); ok {
		t.Error("--retire converted should retire the converted original")
	}
	if _, ok := readFile(t, filepath.Join(root, "keep", "a.properties")); !ok {
		t.Error("source outside the pattern must be kept")
	}
	if _, ok := readFile(t, filepath.Join(root, "keep", "a.yml")); ok {
		t.Error("source outside the pattern must not be converted")
	}
}

func TestConvertCommand_JSONDryRun(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app.properties": "a.b=c\n",
		"db.properties":  "url=jdbc\n",
		"db.yml":         "url: existing\n",
	})

	out, _, err := executeCommand(t, "convert", root, "--json", "--dry-run")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var result engine.ConvertResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if !result.DryRun {
		t.Error("DryRun = false, want true")
	}
	if len(result.Generated) != 1 || result.Generated[0].Target != "app.yml" {
		t.Errorf("Generated = %+v", result.Generated)
	}
	if len(result.Collisions) != 1 || result.Collisions[0].SourcePath != "db.properties" {
		t.Errorf("Collisions = %+v", result.Collisions)
	}

	if _, ok := readFile(t, filepath.Join(root, "app.yml")); ok {
		t.Error("dry run must not write")
	}
	if _, ok := readFile(t, filepath.Join(root, "app.properties")); !ok {
		t.Error("dry run must not retire")
	}
}

func TestConvertCommand_StructuralConflict(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app.properties": "a=1\na.b=2\n",
	})

	_, _, err := executeCommand(t, "convert", root)
	if !errors.Is(err, engine.ErrStructuralConflict) {
		t.Fatalf("expected ErrStructuralConflict, got: %v", err)
	}
	if !strings.Contains(err.Error(), `"a.b"`) || !strings.Contains(err.Error(), `"a"`) {
		t.Errorf("error should name the path and prefix: %v", err)
	}
	if _, ok := readFile(t, filepath.Join(root, "app.properties")); !ok {
		t.Error("original must survive an aborted run")
	}
}

func TestConvertCommand_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"app.properties": "a=1\n"})

	_, _, err := executeCommand(t, "convert", root, "--suffix", "json")
	if !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app.properties": "# This is a boolean\nmy.boolean=true\nmy.string=value\n",
	})
	path := filepath.Join(root, "app.properties")

	t.Run("yaml", func(t *testing.T) {
		out, _, err := executeCommand(t, "render", path)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		want := "my:\n  # This is a boolean\n  boolean: true\n  string: value\n"
		if out != want {
			t.Errorf("render output = %q, want %q", out, want)
		}
	})

	t.Run("flat", func(t *testing.T) {
		out, _, err := executeCommand(t, "render", path, "--flat")
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if out != "my.boolean=true\nmy.string=value\n" {
			t.Errorf("render --flat output = %q", out)
		}
	})

	if _, ok := readFile(t, filepath.Join(root, "app.yml")); ok {
		t.Error("render must not write")
	}
}
