package plugin

import (
	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
)

// EditSettingsCommand returns the "edit_settings" admin action that opens
// path in the configured editor.
func EditSettingsCommand(ctx *Context, path string) *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        "edit_settings",
		Description: "Open the settings file for editing",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		return commands.AsUsage("could not edit "+path, ctx.Launch().Edit(cmd.Context(), path))
	})
}
