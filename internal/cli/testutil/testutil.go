// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// Result holds the captured streams of one command execution.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Isolate points config discovery at empty directories so a developer's own
// config files and the package directory do not leak into a test. It returns
// the new working directory.
func Isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// SetupTestFiles writes each name/content pair into a fresh temporary
// directory and returns the directory.
func SetupTestFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

// Execute runs cmd with args, feeding stdin and capturing both output streams.
func Execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return Result{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}
