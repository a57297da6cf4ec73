package urlpattern

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/testutil"
)

func TestFirstRunCreatesThreePatterns(t *testing.T) {
	tc := testutil.NewTestConfig(t)
	require.NoFileExists(t, tc.Path(StoreFile))

	p, err := New(tc.Context())
	require.NoError(t, err)
	assert.FileExists(t, tc.Path(StoreFile))
	assert.Contains(t, tc.Out.String(), "3 example items")
	tc.AssertFileContains(StoreFile, "capture_all_keywords: true")

	cmds, err := p.Commands()
	require.NoError(t, err)
	assert.Len(t, cmds, 3)

	require.NoError(t, os.Remove(tc.Path(StoreFile)))
	p, err = New(tc.Context())
	require.NoError(t, err)
	cmds, err = p.Commands()
	require.NoError(t, err)
	assert.Len(t, cmds, len(Defaults()))
}

func TestCommandsOpenURL(t *testing.T) {
	tc := testutil.NewTestConfig(t)
	p, err := New(tc.Context())
	require.NoError(t, err)
	cmds, err := p.Commands()
	require.NoError(t, err)

	out, err := testutil.Execute(t, cmds, "wiki", "Go_(programming_language)")
	require.NoError(t, err)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)\n", out)

	_, err = testutil.Execute(t, cmds, "search", "idiomatic", "go")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Go_(programming_language)",
		"https://duckduckgo.com/?q=idiomatic go",
	}, tc.Launcher.Targets("url"))

	assert.Equal(t, "Launch online virus scanner (url)", testutil.Find(t, cmds, "virus").Short)
}

func TestOpenFailureIsUsageError(t *testing.T) {
	tc := testutil.NewTestConfig(t)
	tc.Launcher.Fail = errors.New("no browser")
	p, err := New(tc.Context())
	require.NoError(t, err)
	cmds, err := p.Commands()
	require.NoError(t, err)

	_, err = testutil.Execute(t, cmds, "virus")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.Equal(t, "could not open url: no browser", err.Error())
}

func TestAdminAddCaptureAll(t *testing.T) {
	tc := testutil.NewTestConfig(t)
	p, err := New(tc.Context())
	require.NoError(t, err)
	admin, err := p.AdminCommands()
	require.NoError(t, err)

	_, err = testutil.Execute(t, admin, "add", "-c", "gh", "https://github.com/search?q={q}")
	require.NoError(t, err)
	_, err = testutil.Execute(t, admin, "add", "empty", " ")
	assert.True(t, commands.IsUsage(err))

	reloaded, err := New(tc.Context())
	require.NoError(t, err)
	cmds, err := reloaded.Commands()
	require.NoError(t, err)
	assert.Len(t, cmds, 4)
	assert.Equal(t, "gh [q...]", testutil.Find(t, cmds, "gh").Use)
}
