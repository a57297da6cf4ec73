package launcher

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
)

type fakePlugin struct {
	slug  string
	names []string
	ran   *[]string
}

func (f *fakePlugin) Slug() string      { return f.slug }
func (f *fakePlugin) ShortSlug() string { return f.slug[:1] }

func (f *fakePlugin) Commands() ([]*cobra.Command, error) {
	var out []*cobra.Command
	for _, name := range f.names {
		name := name
		out = append(out, &cobra.Command{
			Use: name,
			RunE: func(*cobra.Command, []string) error {
				*f.ran = append(*f.ran, f.slug+":"+name)
				return nil
			},
		})
	}
	return out, nil
}

func (f *fakePlugin) AdminCommands() ([]*cobra.Command, error) {
	return []*cobra.Command{{
		Use: "ping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			*f.ran = append(*f.ran, f.slug+":admin")
			return nil
		},
	}}, nil
}

func newTestRegistry(t *testing.T, catalog *plugin.Catalog) *Registry {
	t.Helper()
	return New(&plugin.Context{ConfigDir: "/tmp/jj-test", Logger: logging.Discard()}, catalog)
}

func execute(t *testing.T, r *Registry, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r.Root().SetOut(&out)
	r.Root().SetErr(&bytes.Buffer{})
	err := r.Execute(context.Background(), args)
	return out.String(), err
}

func TestLastRegisteredCommandWins(t *testing.T) {
	var ran []string
	r := newTestRegistry(t, nil)

	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "first", names: []string{"x", "y"}, ran: &ran}))
	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "second", names: []string{"x"}, ran: &ran}))

	_, err := execute(t, r, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"second:x"}, ran)

	_, err = execute(t, r, "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"second:x", "first:y"}, ran)

	assert.Equal(t, 2, r.Size())
	assert.Equal(t, []string{"first", "second"}, r.Slugs())
}

func TestAddPluginReferenceForms(t *testing.T) {
	var ran []string
	catalog := plugin.NewCatalog()
	catalog.Register("by_id", func(*plugin.Context) (plugin.Plugin, error) {
		return &fakePlugin{slug: "by_id", ran: &ran}, nil
	})
	r := newTestRegistry(t, catalog)

	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "instance", ran: &ran}))
	require.NoError(t, r.AddPlugin(plugin.Factory(func(*plugin.Context) (plugin.Plugin, error) {
		return &fakePlugin{slug: "factory", ran: &ran}, nil
	})))
	require.NoError(t, r.AddPlugin(func(*plugin.Context) (plugin.Plugin, error) {
		return &fakePlugin{slug: "func", ran: &ran}, nil
	}))
	require.NoError(t, r.AddPlugin("by_id"))

	assert.Equal(t, []string{"instance", "factory", "func", "by_id"}, r.Slugs())
}

func TestAddPluginRejectsUnknownShapes(t *testing.T) {
	r := newTestRegistry(t, nil)

	for _, ref := range []interface{}{42, nil, []string{"url_patterns"}, struct{}{}} {
		err := r.AddPlugin(ref)
		var unrecognized *plugin.UnrecognizedRefError
		require.True(t, errors.As(err, &unrecognized), "ref %#v", ref)
		assert.Contains(t, err.Error(), "not a recognized plugin reference")
	}
	assert.Empty(t, r.Slugs())
}

func TestAddPluginUnknownID(t *testing.T) {
	r := newTestRegistry(t, nil)

	err := r.AddPlugin("nope")
	var unknown *plugin.UnknownPluginError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.ID)
}

func TestAddPluginFactoryFailure(t *testing.T) {
	r := newTestRegistry(t, nil)
	boom := errors.New("boom")

	err := r.AddPlugin(plugin.Factory(func(*plugin.Context) (plugin.Plugin, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.Slugs())
}

func TestAddPluginValidatesSlug(t *testing.T) {
	var ran []string
	r := newTestRegistry(t, nil)

	err := r.AddPlugin(&fakePlugin{slug: "Bad Slug", ran: &ran})
	var invalid *InvalidSlugError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "bad-slug", invalid.Suggested)
	assert.Empty(t, r.Slugs())
}

func TestAdminNamespace(t *testing.T) {
	var ran []string
	r := newTestRegistry(t, nil)
	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "first", ran: &ran}))

	_, err := execute(t, r, "admin", "first", "ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"first:admin"}, ran)

	_, err = execute(t, r, "admin", "first", "explode")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
	assert.Contains(t, err.Error(), `unknown action "explode"`)

	// Registering the same slug again reuses the namespace.
	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "first", ran: &ran}))
	count := 0
	for _, c := range r.admin.Commands() {
		if c.Name() == "first" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestReservedNamesAreKept(t *testing.T) {
	var ran []string
	r := newTestRegistry(t, nil)
	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "greedy", names: []string{"status", "admin"}, ran: &ran}))

	out, err := execute(t, r, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "active plugins: greedy")
	assert.Empty(t, ran)
	assert.Equal(t, 0, r.Size())
}

func TestStatus(t *testing.T) {
	var ran []string
	r := newTestRegistry(t, nil)

	out, err := execute(t, r, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "config directory: /tmp/jj-test")
	assert.Contains(t, out, "active plugins: none")
	assert.Contains(t, out, "registered commands: 0")

	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "a", names: []string{"x", "y"}, ran: &ran}))
	require.NoError(t, r.AddPlugin(&fakePlugin{slug: "b", names: []string{"y", "z"}, ran: &ran}))

	out, err = execute(t, r, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "active plugins: a, b")
	assert.Contains(t, out, "registered commands: 3")
}

func TestEnableAutocompletion(t *testing.T) {
	r := newTestRegistry(t, nil)

	out, err := execute(t, r, "admin", "enable-autocompletion", "--shell", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "source <(jj completion zsh)")

	_, err = execute(t, r, "admin", "enable-autocompletion", "--shell", "tcsh")
	require.Error(t, err)
	assert.True(t, commands.IsUsage(err))
}

func TestUnknownInvocation(t *testing.T) {
	r := newTestRegistry(t, nil)

	_, err := execute(t, r, "nothing-here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
