package launcher

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

func (r *Registry) statusCommand() *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        statusName,
		Description: "Show configuration directory and active plugins",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		out := cmd.OutOrStdout()
		dir := ""
		if r.pctx != nil {
			dir = r.pctx.ConfigDir
		}
		fmt.Fprintf(out, "config directory: %s\n", ui.FilePath(dir))
		slugList := "none"
		if len(r.plugins) > 0 {
			slugList = strings.Join(r.Slugs(), ", ")
		}
		fmt.Fprintf(out, "active plugins: %s\n", slugList)
		fmt.Fprintf(out, "registered commands: %d\n", r.Size())
		return nil
	})
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func enableAutocompletionCommand() *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        "enable-autocompletion",
		Description: "Show how to enable shell autocompletion",
		Flags: []commands.FlagMeta{
			{Name: "shell", Short: "s", Description: "Shell to configure", Type: commands.FlagTypeString, Default: "bash"},
		},
		Examples: []string{RootName + " admin enable-autocompletion --shell zsh"},
	}, func(cmd *cobra.Command, _ []string, flags map[string]interface{}) error {
		shell, _ := flags["shell"].(string)
		var line string
		switch shell {
		case "bash":
			line = "source <(" + RootName + " completion bash)"
		case "zsh":
			line = "source <(" + RootName + " completion zsh)"
		case "fish":
			line = RootName + " completion fish | source"
		case "powershell":
			line = RootName + " completion powershell | Out-String | Invoke-Expression"
		default:
			return commands.Usagef("unsupported shell %q, choose one of %s", shell, strings.Join(completionShells, ", "))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "To enable autocompletion for %s, add this line to your shell profile:\n", shell)
		fmt.Fprintf(out, "  %s\n", line)
		return nil
	})
}
