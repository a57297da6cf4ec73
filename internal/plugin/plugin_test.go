package plugin

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/menu"
	"github.com/yeahyeah/yeahyeah/internal/pattern"
)

func testContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Context{ConfigDir: t.TempDir(), Out: &out, Logger: logging.Discard()}, &out
}

func patternConfig() ListConfig {
	return ListConfig{
		Slug:      "url_patterns",
		ShortSlug: "url",
		StoreFile: "url_patterns.yaml",
		Variants:  pattern.Variants(nil),
		Defaults: func() []menu.Serialisable {
			return []menu.Serialisable{
				pattern.New("virus", "https://www.virustotal.com", menu.Help("Launch online virus scanner"), nil),
				pattern.NewWildcard("search", "https://duckduckgo.com/?q={query}", nil, nil),
			}
		},
		ValueName: "pattern",
		AddFlags:  []commands.FlagMeta{{Name: "capture-all", Type: commands.FlagTypeBool}},
		NewItem: func(keyword, value string, flags map[string]interface{}) (menu.Serialisable, error) {
			if flags["capture-all"] == true {
				return pattern.NewWildcard(keyword, value, nil, nil), nil
			}
			return pattern.New(keyword, value, nil, nil), nil
		},
	}
}

func runAdmin(t *testing.T, p Plugin, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "admin", SilenceErrors: true, SilenceUsage: true}
	cmds, err := p.AdminCommands()
	require.NoError(t, err)
	root.AddCommand(cmds...)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), err
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()
	c.Register("b", func(*Context) (Plugin, error) { return nil, nil })
	c.Register("a", func(*Context) (Plugin, error) { return nil, nil })

	_, err := c.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.IDs())

	_, err = c.Lookup("nope")
	var unknown *UnknownPluginError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.ID)
	assert.Equal(t, `unknown plugin "nope", known plugins are a, b`, err.Error())
}

func TestUnrecognizedRefError(t *testing.T) {
	err := &UnrecognizedRefError{Ref: 42}
	assert.Contains(t, err.Error(), "not a recognized plugin reference")
}

func TestListPluginCreatesDefaults(t *testing.T) {
	ctx, out := testContext(t)

	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(ctx.ConfigDir, "url_patterns.yaml"))
	assert.Contains(t, out.String(), "2 example items")

	cmds, err := p.Commands()
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "Launch online virus scanner (url)", cmds[0].Short)
	assert.Equal(t, "launch search (url)", cmds[1].Short)

	out.Reset()
	_, err = NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)
	assert.Empty(t, out.String(), "an existing store is loaded without a notice")
}

func TestListPluginLoadFailure(t *testing.T) {
	ctx, _ := testContext(t)
	path := filepath.Join(ctx.ConfigDir, "url_patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))

	_, err := NewListPlugin(ctx, patternConfig())
	var malformed *menu.MalformedStoreError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, err.Error(), path)
}

func TestListPluginAdminStatus(t *testing.T) {
	ctx, _ := testContext(t)
	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	out, err := runAdmin(t, p, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "2 items in plugin url_patterns")
	assert.Contains(t, out, p.StorePath())
}

func TestListPluginAdminAddPersists(t *testing.T) {
	ctx, _ := testContext(t)
	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	_, err = runAdmin(t, p, "add", "gh", "https://github.com/{repo}")
	require.NoError(t, err)
	_, err = runAdmin(t, p, "add", "--capture-all", "ddg", "https://ddg.gg/?q={q}")
	require.NoError(t, err)

	reloaded, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)
	require.Equal(t, 4, reloaded.List().Len())
	assert.IsType(t, &pattern.Pattern{}, reloaded.List().At(2))
	assert.IsType(t, &pattern.Wildcard{}, reloaded.List().At(3))
}

func TestListPluginAdminAddArgs(t *testing.T) {
	ctx, _ := testContext(t)
	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	_, err = runAdmin(t, p, "add", "only-keyword")
	require.Error(t, err)
	assert.Equal(t, "missing argument <pattern>", err.Error())
}

func TestListPluginAdminRemove(t *testing.T) {
	ctx, _ := testContext(t)
	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	out, err := runAdmin(t, p, "remove", "virus")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	_, err = runAdmin(t, p, "remove", "virus")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.Contains(t, err.Error(), "not found")

	reloaded, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.List().Len())
}

func TestListPluginAdminListPlain(t *testing.T) {
	ctx, _ := testContext(t)
	p, err := NewListPlugin(ctx, patternConfig())
	require.NoError(t, err)

	out, err := runAdmin(t, p, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "virus"))
	assert.Contains(t, lines[0], "https://www.virustotal.com")
	assert.Contains(t, lines[0], "Launch online virus scanner")
	assert.True(t, strings.HasPrefix(lines[1], "search"))
	assert.Contains(t, lines[1], "capture_all_keywords=true")
}
