// Package directory is the plugin that holds the connection settings for a
// company directory server. Queries against the server are left to external
// tools.
package directory

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/config"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

const (
	ID           = "directory"
	ShortSlug    = "ad"
	GroupName    = "ad"
	SettingsFile = "directory.json"
)

// Settings is the content of directory.json.
type Settings struct {
	ServerURL string `json:"server_url"`
	BindDN    string `json:"bind_dn"`
}

// DefaultSettings holds placeholders the user is expected to replace.
func DefaultSettings() Settings {
	return Settings{
		ServerURL: "<ldap://adserver:port>",
		BindDN:    "<ldap dn to access AD. Something looking like 'cn=bla,ou=blab,dc=thing'>",
	}
}

// Placeholder reports whether a settings value was never filled in.
func Placeholder(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.HasPrefix(v, "<")
}

// Plugin is the directory plugin.
type Plugin struct {
	ctx      *plugin.Context
	file     config.JSONFile
	settings Settings
}

// New loads directory.json, writing the placeholder defaults first when it
// is missing.
func New(ctx *plugin.Context) (plugin.Plugin, error) {
	p := &Plugin{ctx: ctx, file: config.JSONFile{Path: ctx.Path(SettingsFile)}}

	created, err := p.file.Ensure(DefaultSettings())
	if err != nil {
		return nil, err
	}
	if created {
		ctx.Notice(ID, "Settings file not found. Wrote default settings to %s", p.file.Path)
	}
	if err := p.file.Load(&p.settings); err != nil {
		return nil, err
	}
	return p, nil
}

// Slug implements plugin.Plugin.
func (p *Plugin) Slug() string { return ID }

// ShortSlug implements plugin.Plugin.
func (p *Plugin) ShortSlug() string { return ShortSlug }

// Commands implements plugin.Plugin: the "ad" group.
func (p *Plugin) Commands() ([]*cobra.Command, error) {
	group := &cobra.Command{
		Use:   GroupName,
		Short: fmt.Sprintf("query the directory server (%s)", ShortSlug),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return commands.Usagef("unknown action %q for %q", args[0], GroupName)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	status := commands.Generate(commands.Meta{
		Name:        "status",
		Description: "Show server and bind DN",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "server: %s\n", p.settings.ServerURL)
		fmt.Fprintf(out, "bind dn: %s\n", p.settings.BindDN)
		if Placeholder(p.settings.ServerURL) || Placeholder(p.settings.BindDN) {
			fmt.Fprintln(out, ui.Warningf("settings are not filled in, run 'jj admin %s edit_settings'", ID))
		}
		return nil
	})
	group.AddCommand(status)
	return []*cobra.Command{group}, nil
}

// AdminCommands implements plugin.Plugin.
func (p *Plugin) AdminCommands() ([]*cobra.Command, error) {
	return []*cobra.Command{plugin.EditSettingsCommand(p.ctx, p.file.Path)}, nil
}
