// Package testutil provides a throwaway configuration directory and helpers
// for running plugin commands in-process.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/launch"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
)

// TestConfig is a temporary configuration directory with a recording
// launcher.
type TestConfig struct {
	t        *testing.T
	Dir      string
	Out      *bytes.Buffer
	Launcher *launch.Recorder
}

// NewTestConfig creates an empty configuration directory.
func NewTestConfig(t *testing.T) *TestConfig {
	t.Helper()
	return &TestConfig{
		t:        t,
		Dir:      t.TempDir(),
		Out:      &bytes.Buffer{},
		Launcher: &launch.Recorder{},
	}
}

// Context returns a plugin context rooted at the directory.
func (c *TestConfig) Context() *plugin.Context {
	return &plugin.Context{
		ConfigDir: c.Dir,
		Out:       c.Out,
		Logger:    logging.Discard(),
		Launcher:  c.Launcher,
	}
}

// Path returns name inside the directory.
func (c *TestConfig) Path(name string) string {
	return filepath.Join(c.Dir, name)
}

// WriteFile writes content to name inside the directory.
func (c *TestConfig) WriteFile(name, content string) {
	c.t.Helper()
	if err := os.WriteFile(c.Path(name), []byte(content), 0o644); err != nil {
		c.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// ReadFile returns the content of name inside the directory.
func (c *TestConfig) ReadFile(name string) string {
	c.t.Helper()
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		c.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// AssertFileContains fails the test if name does not contain substr.
func (c *TestConfig) AssertFileContains(name, substr string) {
	c.t.Helper()
	content := c.ReadFile(name)
	if !strings.Contains(content, substr) {
		c.t.Errorf("expected file %s to contain %q, got:\n%s", name, substr, content)
	}
}

// Execute runs args against a fresh root holding cmds and returns what was
// written to stdout.
func Execute(t *testing.T, cmds []*cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "jj", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(cmds...)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// Find returns the command called name, failing the test when it is missing.
func Find(t *testing.T, cmds []*cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}
