package plugin

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/menu"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

// NewItemFunc builds an item from the arguments of "admin <slug> add".
type NewItemFunc func(keyword, value string, flags map[string]interface{}) (menu.Serialisable, error)

// ListConfig describes a plugin whose commands come from an ItemStore.
type ListConfig struct {
	Slug      string
	ShortSlug string
	// StoreFile is the store name inside the configuration directory.
	StoreFile string
	Variants  []menu.Variant
	Defaults  func() []menu.Serialisable

	// ValueName names the second argument of add, e.g. "pattern" or "path".
	ValueName string
	// AddFlags are extra flags of add, passed through to NewItem.
	AddFlags []commands.FlagMeta
	NewItem  NewItemFunc
}

// ListPlugin is a Plugin backed by a menu.List persisted in an ItemStore.
// Every mutating admin action rewrites the whole store.
type ListPlugin struct {
	cfg   ListConfig
	ctx   *Context
	store *ItemStore
	list  *menu.List
}

// NewListPlugin loads (or creates) the store described by cfg.
func NewListPlugin(ctx *Context, cfg ListConfig) (*ListPlugin, error) {
	p := &ListPlugin{
		cfg: cfg,
		ctx: ctx,
		store: &ItemStore{
			Path:     ctx.Path(cfg.StoreFile),
			Variants: cfg.Variants,
			Defaults: cfg.Defaults,
		},
	}

	list, created, err := p.store.Open()
	if err != nil {
		return nil, err
	}
	if created {
		ctx.Notice(cfg.Slug, "Created %s with %s", p.store.Path, ui.Count(list.Len(), "example item", "example items"))
	}
	p.list = list
	return p, nil
}

// Slug implements Plugin.
func (p *ListPlugin) Slug() string { return p.cfg.Slug }

// ShortSlug implements Plugin.
func (p *ListPlugin) ShortSlug() string { return p.cfg.ShortSlug }

// StorePath is the file the plugin loads from and saves to.
func (p *ListPlugin) StorePath() string { return p.store.Path }

// List returns the loaded items.
func (p *ListPlugin) List() *menu.List { return p.list }

// Commands implements Plugin. The help text of each command is annotated
// with the plugin's short slug.
func (p *ListPlugin) Commands() ([]*cobra.Command, error) {
	items := p.list.Items()
	cmds := make([]*cobra.Command, 0, len(items))
	for _, item := range items {
		cmd, err := item.Command()
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.cfg.Slug, err)
		}
		cmd.Short = fmt.Sprintf("%s (%s)", cmd.Short, p.cfg.ShortSlug)
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// AdminCommands implements Plugin: status, list, add and remove.
func (p *ListPlugin) AdminCommands() ([]*cobra.Command, error) {
	status := commands.Generate(commands.Meta{
		Name:        "status",
		Description: "Show number of items and the config file",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s in plugin %s\n", ui.Count(p.list.Len(), "item", "items"), p.cfg.Slug)
		fmt.Fprintf(out, "config file: %s\n", ui.FilePath(p.store.Path))
		return nil
	})

	list := commands.Generate(commands.Meta{
		Name:        "list",
		Description: "List all items",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		return p.render(cmd.OutOrStdout())
	})

	add := commands.Generate(commands.Meta{
		Name:        "add",
		Description: "Add a new item",
		Args:        commands.Fixed("keyword", p.valueName()),
		Flags:       p.cfg.AddFlags,
	}, func(cmd *cobra.Command, args []string, flags map[string]interface{}) error {
		if p.cfg.NewItem == nil {
			return commands.Usagef("plugin %s does not support adding items", p.cfg.Slug)
		}
		item, err := p.cfg.NewItem(args[0], args[1], flags)
		if err != nil {
			return commands.AsUsage("could not add item", err)
		}
		p.list.Append(item)
		if err := p.store.Save(p.list); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Added %s", menu.Describe(item)))
		return nil
	})

	remove := commands.Generate(commands.Meta{
		Name:        "remove",
		Description: "Remove all items with the given name",
		Args:        commands.Fixed("keyword"),
	}, func(cmd *cobra.Command, args []string, _ map[string]interface{}) error {
		removed := p.list.RemoveNamed(args[0])
		if len(removed) == 0 {
			return commands.Usagef("item %q not found in %s", args[0], p.cfg.Slug)
		}
		if err := p.store.Save(p.list); err != nil {
			return err
		}
		for _, item := range removed {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Removed %s", menu.Describe(item)))
		}
		return nil
	})

	return []*cobra.Command{status, list, add, remove}, nil
}

func (p *ListPlugin) valueName() string {
	if p.cfg.ValueName == "" {
		return "value"
	}
	return p.cfg.ValueName
}

// render writes the item listing: glamour markdown on a terminal, an
// aligned plain table otherwise.
func (p *ListPlugin) render(w io.Writer) error {
	items := p.list.Items()
	display := ui.NewDisplayContext(w)

	if !display.IsTTY {
		if len(items) == 0 {
			fmt.Fprintln(w, "no items")
			return nil
		}
		tbl := ui.NewTable(3)
		for _, item := range items {
			tbl.AddRow(item.Name(), describeValue(item), item.HelpText())
		}
		_, err := io.WriteString(w, tbl.String())
		return err
	}

	rows := make([]ui.ListingRow, len(items))
	for i, item := range items {
		rows[i] = ui.ListingRow{Name: item.Name(), Value: describeValue(item), Help: item.HelpText()}
	}
	rendered, err := ui.RenderMarkdown(ui.ListingMarkdown(p.cfg.Slug, rows), display.AvailableWidth(ui.MarkdownRenderMargin))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// describeValue returns the item's parameters as one short string.
func describeValue(item menu.Serialisable) string {
	params := item.Parameters()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	if len(keys) == 1 {
		return fmt.Sprint(params[keys[0]])
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, params[k])
	}
	return strings.Join(parts, " ")
}
