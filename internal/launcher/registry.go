// Package launcher composes registered plugins into the jj command trees:
// the invocation tree at the root and the admin tree under "admin <slug>".
package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
	"github.com/yeahyeah/yeahyeah/internal/slugs"
)

// RootName is the executable name shown in usage lines.
const RootName = "jj"

// Reserved root commands. Plugin commands with these names are skipped.
const (
	adminName  = "admin"
	statusName = "status"
)

// InvalidSlugError is returned when a plugin's slug cannot name an admin
// namespace.
type InvalidSlugError struct {
	Slug      string
	Suggested string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid plugin slug %q, try %q", e.Slug, e.Suggested)
}

// Registry holds the registered plugins and the two command trees built
// from them. It is built once per process by the entry point.
type Registry struct {
	pctx    *plugin.Context
	catalog *plugin.Catalog
	log     *log.Logger

	root    *cobra.Command
	admin   *cobra.Command
	plugins []plugin.Plugin

	// invocations are the root command names contributed by plugins.
	invocations map[string]struct{}
}

// New returns a Registry with the built-in status and admin commands and no
// plugins. catalog resolves string references in AddPlugin and may be nil.
func New(pctx *plugin.Context, catalog *plugin.Catalog) *Registry {
	if catalog == nil {
		catalog = plugin.NewCatalog()
	}
	r := &Registry{
		pctx:        pctx,
		catalog:     catalog,
		log:         logging.Discard(),
		invocations: map[string]struct{}{},
	}
	if pctx != nil && pctx.Logger != nil {
		r.log = pctx.Logger
	}

	r.root = &cobra.Command{
		Use:           RootName,
		Short:         "Launch urls, paths and windows by keyword",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	r.root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &commands.UsageError{Err: err}
	})
	r.admin = &cobra.Command{
		Use:   adminName,
		Short: "Manage plugins and their items",
		Args:  unknownAction(adminName),
		RunE:  showHelp,
	}
	r.admin.AddCommand(enableAutocompletionCommand())
	r.root.AddCommand(r.admin, r.statusCommand())
	return r
}

// Root returns the root command. Callers add persistent flags here.
func (r *Registry) Root() *cobra.Command { return r.root }

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []plugin.Plugin {
	return append([]plugin.Plugin(nil), r.plugins...)
}

// Slugs returns the registered plugin slugs in registration order.
func (r *Registry) Slugs() []string {
	out := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		out[i] = p.Slug()
	}
	return out
}

// Size returns the number of distinct invocation names contributed by plugins.
func (r *Registry) Size() int { return len(r.invocations) }

// AddPlugin resolves ref and merges its commands into both trees. ref is a
// plugin.Plugin, a plugin.Factory (or an equivalent func), or an identifier
// known to the catalog.
//
// Invocation names collide silently: the command registered last is the one
// that runs.
func (r *Registry) AddPlugin(ref interface{}) error {
	p, err := r.resolve(ref)
	if err != nil {
		return err
	}
	if !slugs.Valid(p.Slug()) {
		return &InvalidSlugError{Slug: p.Slug(), Suggested: slugs.Suggest(p.Slug())}
	}

	cmds, err := p.Commands()
	if err != nil {
		return fmt.Errorf("plugin %s: %w", p.Slug(), err)
	}
	adminCmds, err := p.AdminCommands()
	if err != nil {
		return fmt.Errorf("plugin %s: %w", p.Slug(), err)
	}

	r.plugins = append(r.plugins, p)

	for _, cmd := range cmds {
		name := cmd.Name()
		if name == adminName || name == statusName {
			r.log.Warn("skipping command with reserved name", "plugin", p.Slug(), "command", name)
			continue
		}
		commands.Replace(r.root, cmd)
		r.invocations[name] = struct{}{}
	}

	ns := r.namespace(p.Slug())
	for _, cmd := range adminCmds {
		commands.Replace(ns, cmd)
	}

	r.log.Debug("registered plugin", "plugin", p.Slug(), "commands", len(cmds), "admin", len(adminCmds))
	return nil
}

// Execute dispatches exactly one command.
func (r *Registry) Execute(ctx context.Context, args []string) error {
	r.root.SetArgs(args)
	return r.root.ExecuteContext(ctx)
}

func (r *Registry) resolve(ref interface{}) (plugin.Plugin, error) {
	switch v := ref.(type) {
	case plugin.Plugin:
		return v, nil
	case plugin.Factory:
		return r.construct(v)
	case func(*plugin.Context) (plugin.Plugin, error):
		return r.construct(v)
	case string:
		factory, err := r.catalog.Lookup(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		return r.construct(factory)
	default:
		return nil, &plugin.UnrecognizedRefError{Ref: ref}
	}
}

func (r *Registry) construct(factory plugin.Factory) (plugin.Plugin, error) {
	p, err := factory(r.pctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("plugin factory returned no plugin")
	}
	return p, nil
}

// namespace returns the admin group for slug, creating it on first use.
func (r *Registry) namespace(slug string) *cobra.Command {
	if ns := commands.Find(r.admin, slug); ns != nil {
		return ns
	}
	ns := &cobra.Command{
		Use:   slug,
		Short: fmt.Sprintf("Manage the %s plugin", slug),
		Args:  unknownAction(adminName + " " + slug),
		RunE:  showHelp,
	}
	r.admin.AddCommand(ns)
	return ns
}

// unknownAction rejects any positional argument that did not match a
// subcommand of a group.
func unknownAction(group string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return commands.Usagef("unknown action %q for %q", args[0], group)
		}
		return nil
	}
}

func showHelp(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}
