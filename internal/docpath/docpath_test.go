package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "**"},
		{in: "./src/*.properties", want: "src/*.properties"},
		{in: `.\src\*.properties`, want: `src\*.properties`},
		{in: "/src/app.properties", want: "src/app.properties"},
		{in: `\src`, want: "src"},
		{in: "**/resources/*.properties", want: "**/resources/*.properties"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePattern(tt.in))
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "empty matches all", pattern: "", path: "a/b/c.properties", want: true},
		{name: "double star", pattern: "**", path: "application.properties", want: true},
		{name: "resources glob", pattern: "**/resources/*.properties", path: "src/main/resources/application.properties", want: true},
		{name: "resources glob miss", pattern: "**/resources/*.properties", path: "src/main/java/app.properties", want: false},
		{name: "leading dot slash", pattern: "./config/*.properties", path: "config/app.properties", want: true},
		{name: "leading slash", pattern: "/app.properties", path: "app.properties", want: true},
		{name: "windows separators in path", pattern: "config/*.properties", path: `config\app.properties`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_BadPattern(t *testing.T) {
	_, err := Match("[", "a")
	assert.Error(t, err)
	assert.Error(t, ValidatePattern("src/[a"))
}

func TestWithExtension(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{path: "application.properties", ext: "yml", want: "application.yml"},
		{path: "src/main/resources/application.properties", ext: ".yaml", want: "src/main/resources/application.yaml"},
		{path: "config/app.dev.properties", ext: "yml", want: "config/app.dev.yml"},
		{path: "config/noext", ext: "yml", want: "config/noext.yml"},
		{path: "some.dir/noext", ext: "yml", want: "some.dir/noext.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, WithExtension(tt.path, tt.ext))
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatProperties, Detect("a/b.properties"))
	assert.Equal(t, FormatYAML, Detect("a/b.yml"))
	assert.Equal(t, FormatYAML, Detect("a/B.YAML"))
	assert.Equal(t, FormatUnknown, Detect("a/b.json"))
	assert.Equal(t, "yaml", FormatYAML.String())
}
