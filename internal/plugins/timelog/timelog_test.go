package timelog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/launch"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
)

var clock = time.Date(2024, 3, 1, 14, 5, 0, 0, time.Local)

func newPlugin(t *testing.T) (*Plugin, *plugin.Context, *launch.Recorder) {
	t.Helper()
	rec := &launch.Recorder{}
	ctx := &plugin.Context{ConfigDir: t.TempDir(), Out: &bytes.Buffer{}, Logger: logging.Discard(), Launcher: rec}
	p, err := Open(ctx, WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	return p, ctx, rec
}

func execute(t *testing.T, cmds []*cobra.Command, args ...string) (string, error) {
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

func logCmds(t *testing.T, p *Plugin) []*cobra.Command {
	t.Helper()
	cmds, err := p.Commands()
	require.NoError(t, err)
	return cmds
}

func adminCmds(t *testing.T, p *Plugin) []*cobra.Command {
	t.Helper()
	cmds, err := p.AdminCommands()
	require.NoError(t, err)
	return cmds
}

func TestOpenWritesDefaultSettings(t *testing.T) {
	p, ctx, _ := newPlugin(t)

	data, err := os.ReadFile(filepath.Join(ctx.ConfigDir, SettingsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"database": "timelog.db"}`, string(data))
	assert.Contains(t, ctx.Out.(*bytes.Buffer).String(), "Wrote default settings")
	assert.Equal(t, filepath.Join(ctx.ConfigDir, SettingsFile), p.SettingsPath())

	cmds := logCmds(t, p)
	require.Len(t, cmds, 1)
	assert.Equal(t, GroupName, cmds[0].Name())
}

func TestAddRequiresMessage(t *testing.T) {
	p, _, _ := newPlugin(t)

	_, err := execute(t, logCmds(t, p), "log", "add")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.Equal(t, "log message may not be empty", err.Error())
}

func TestLogLifecycle(t *testing.T) {
	p, _, _ := newPlugin(t)

	_, err := execute(t, adminCmds(t, p), "add_project", "Infrastructure")
	require.NoError(t, err)
	_, err = execute(t, adminCmds(t, p), "add_project", "Reading")
	require.NoError(t, err)

	out, err := execute(t, logCmds(t, p), "log", "projects")
	require.NoError(t, err)
	assert.Equal(t, "Infrastructure\nReading\n", out)

	out, err = execute(t, logCmds(t, p), "log", "add", "-p", "inf", "-t", "13:30", "fixing", "the", "deploy")
	require.NoError(t, err)
	assert.Equal(t, "Adding fixing the deploy at 13:30 to project Infrastructure\n", out)

	out, err = execute(t, logCmds(t, p), "log", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Using time log session sqlite ")
	assert.Contains(t, out, "Running: fixing the deploy (Infrastructure) 13:30-")

	out, err = execute(t, logCmds(t, p), "log", "stop", "-t", "-5")
	require.NoError(t, err)
	assert.Equal(t, "stopped fixing the deploy (Infrastructure) 13:30-14:00\n", out)

	out, err = execute(t, logCmds(t, p), "log", "stop")
	require.NoError(t, err)
	assert.Equal(t, "No timer was running\n", out)
}

func TestAddUnknownProject(t *testing.T) {
	p, _, _ := newPlugin(t)
	_, err := execute(t, adminCmds(t, p), "add_project", "Reading")
	require.NoError(t, err)

	_, err = execute(t, logCmds(t, p), "log", "add", "-p", "zzz", "something")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.Equal(t, `could not find project starting with "zzz". Options: Reading`, err.Error())
}

func TestAddProjectDuplicate(t *testing.T) {
	p, _, _ := newPlugin(t)
	_, err := execute(t, adminCmds(t, p), "add_project", "Reading")
	require.NoError(t, err)

	_, err = execute(t, adminCmds(t, p), "add_project", "reading")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.ErrorIs(t, err, ErrDuplicateProject)
}

func TestInvalidTimeFlag(t *testing.T) {
	p, _, _ := newPlugin(t)

	_, err := execute(t, logCmds(t, p), "log", "add", "-t", "teatime", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected absolute time")
}

func TestUnknownLogAction(t *testing.T) {
	p, _, _ := newPlugin(t)

	_, err := execute(t, logCmds(t, p), "log", "teleport")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
}

func TestEditSettings(t *testing.T) {
	p, _, rec := newPlugin(t)

	_, err := execute(t, adminCmds(t, p), "edit_settings")
	require.NoError(t, err)
	assert.Equal(t, []string{p.SettingsPath()}, rec.Targets("edit"))
}

func TestFindProject(t *testing.T) {
	projects := []Project{{ID: "1", Name: "Infrastructure"}, {ID: "2", Name: "Infra-legacy"}}

	got, err := FindProject(projects, "INFRA")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID, "the first prefix match wins")
}
