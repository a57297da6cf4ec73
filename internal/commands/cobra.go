package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Handler executes a generated command with its parsed args and flag values.
type Handler func(cmd *cobra.Command, args []string, flags map[string]interface{}) error

// Use builds the cobra Use string for name and args,
// e.g. "wiki <article_slug>" or "search [query...]".
func Use(name string, args []ArgMeta) string {
	use := name
	for _, arg := range args {
		if arg.Variadic {
			use += fmt.Sprintf(" [%s...]", arg.Name)
		} else {
			use += fmt.Sprintf(" <%s>", arg.Name)
		}
	}
	return use
}

// ValidateArgs returns a cobra.PositionalArgs that enforces args. A wrong
// count is reported as a *UsageError before the command body runs.
func ValidateArgs(args []ArgMeta) cobra.PositionalArgs {
	required := 0
	variadic := false
	for _, arg := range args {
		if arg.Variadic {
			variadic = true
			continue
		}
		required++
	}

	return func(cmd *cobra.Command, got []string) error {
		if len(got) < required {
			return Usagef("missing argument <%s>", args[len(got)].Name)
		}
		if !variadic && len(got) > required {
			return Usagef("got unexpected extra arguments (%s)", strings.Join(got[required:], " "))
		}
		return nil
	}
}

// Generate creates a cobra command from meta. It panics if a variadic
// argument is not last, since that is a programming error in the caller.
func Generate(meta Meta, handler Handler) *cobra.Command {
	for i, arg := range meta.Args {
		if arg.Variadic && i != len(meta.Args)-1 {
			panic(fmt.Sprintf("commands: variadic argument %q of %q must be last", arg.Name, meta.Name))
		}
	}

	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) > 0 {
		longDesc += "\n\nExamples:\n"
		for _, ex := range meta.Examples {
			longDesc += "  " + ex + "\n"
		}
	}

	cmd := &cobra.Command{
		Use:   Use(meta.Name, meta.Args),
		Short: meta.Description,
		Long:  longDesc,
		Args:  ValidateArgs(meta.Args),
	}

	for _, flag := range meta.Flags {
		switch flag.Type {
		case FlagTypeBool:
			cmd.Flags().BoolP(flag.Name, flag.Short, flag.Default == "true", flag.Description)
		default:
			cmd.Flags().StringP(flag.Name, flag.Short, flag.Default, flag.Description)
		}
	}

	if handler != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			flags := make(map[string]interface{}, len(meta.Flags))
			for _, flag := range meta.Flags {
				switch flag.Type {
				case FlagTypeBool:
					val, _ := cmd.Flags().GetBool(flag.Name)
					flags[flag.Name] = val
				default:
					val, _ := cmd.Flags().GetString(flag.Name)
					flags[flag.Name] = val
				}
			}
			return handler(cmd, args, flags)
		}
	}

	return cmd
}

// Find returns the direct child of parent called name, or nil.
func Find(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Replace adds child to parent, first removing any existing child of the
// same name so the newest command is the one that gets dispatched.
func Replace(parent, child *cobra.Command) {
	if old := Find(parent, child.Name()); old != nil {
		parent.RemoveCommand(old)
	}
	parent.AddCommand(child)
}
