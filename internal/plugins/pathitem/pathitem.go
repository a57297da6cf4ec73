// Package pathitem is the plugin that opens a terminal in a named directory.
package pathitem

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/menu"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
)

const (
	ID          = "path_items"
	ShortSlug   = "path"
	StoreFile   = "path_items.yaml"
	VariantName = "PathItem"
)

// OpenFunc opens a terminal at path.
type OpenFunc func(ctx context.Context, path string) error

// Item is a named filesystem path.
type Item struct {
	menu.Base
	Path string
	open OpenFunc
}

// NewItem returns a path item. A nil help selects "open <path>".
func NewItem(name, path string, help *string, open OpenFunc) *Item {
	return &Item{Base: menu.NewBase(name, help), Path: path, open: open}
}

func (i *Item) String() string { return fmt.Sprintf("PathItem %s:%s", i.Name(), i.Path) }

// HelpText implements menu.Item.
func (i *Item) HelpText() string { return i.HelpOr("open " + i.Path) }

// Parameters implements menu.Serialisable.
func (i *Item) Parameters() map[string]any { return map[string]any{"path": i.Path} }

// Command prints the path and, unless --print-only is given, opens a
// terminal there.
func (i *Item) Command() (*cobra.Command, error) {
	return commands.Generate(commands.Meta{
		Name:        i.Name(),
		Description: i.HelpText(),
		Flags: []commands.FlagMeta{{
			Name:        "print-only",
			Short:       "p",
			Description: "Only print the path",
			Type:        commands.FlagTypeBool,
		}},
	}, func(cmd *cobra.Command, _ []string, flags map[string]interface{}) error {
		fmt.Fprintln(cmd.OutOrStdout(), i.Path)
		if printOnly, _ := flags["print-only"].(bool); printOnly || i.open == nil {
			return nil
		}
		return i.open(cmd.Context(), i.Path)
	}), nil
}

// Variant decodes entries with exactly a "path" field.
func Variant(open OpenFunc) menu.Variant {
	return menu.Variant{
		Name: VariantName,
		Decode: func(name string, params map[string]any, help *string) (menu.Serialisable, error) {
			f := menu.NewFields(VariantName, params)
			path := f.String("path")
			if err := f.Err(); err != nil {
				return nil, err
			}
			return NewItem(name, path, help, open), nil
		},
	}
}

// Defaults is the example content of a new store.
func Defaults() []menu.Serialisable {
	return []menu.Serialisable{
		NewItem("home", "/home/a_user/", menu.Help("(Example) Open home directory"), nil),
		NewItem("external_disk", "/mnt/some_mount/user/something", menu.Help("(Example) Open that external disk"), nil),
	}
}

// New loads the path item store from the configuration directory.
func New(ctx *plugin.Context) (plugin.Plugin, error) {
	launcher := ctx.Launch()
	open := func(c context.Context, path string) error {
		return commands.AsUsage("could not open terminal", launcher.OpenTerminal(c, path))
	}

	p, err := plugin.NewListPlugin(ctx, plugin.ListConfig{
		Slug:      ID,
		ShortSlug: ShortSlug,
		StoreFile: StoreFile,
		Variants:  []menu.Variant{Variant(open)},
		Defaults:  Defaults,
		ValueName: "path",
		NewItem: func(keyword, value string, _ map[string]interface{}) (menu.Serialisable, error) {
			if strings.TrimSpace(value) == "" {
				return nil, commands.Usagef("path for %q is empty", keyword)
			}
			return NewItem(keyword, value, nil, open), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
