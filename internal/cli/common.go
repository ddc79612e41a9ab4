package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/propyaml/internal/clock"
	"github.com/danieljhkim/propyaml/internal/ctxlog"
	"github.com/danieljhkim/propyaml/internal/engine"
	"github.com/danieljhkim/propyaml/internal/fsops"
	"github.com/danieljhkim/propyaml/internal/gitx"
	"github.com/danieljhkim/propyaml/internal/hash"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{})
}

// commandContext returns the command's context carrying the configured logger.
// Logs go to stderr so stdout stays clean for rendered and JSON output.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxlog.WithLogger(ctx, ctxlog.New(logLevel, logFormat, cmd.ErrOrStderr()))
}

// resolveRoot returns the absolute conversion root: the positional argument
// if given, otherwise the enclosing git repository or the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve root: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return "", fmt.Errorf("failed to stat root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("root %s is not a directory", root)
		}
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return gitx.ResolveRoot(gitx.NewRealGitRepo(), cwd)
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
