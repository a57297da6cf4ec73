// Package windowraiser is the plugin that brings named desktop windows into
// focus.
package windowraiser

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
	ID          = "window_raiser"
	ShortSlug   = "raiser"
	StoreFile   = "window_raiser.yaml"
	VariantName = "WindowItem"
)

// RaiseFunc activates the first window whose name matches pattern.
type RaiseFunc func(ctx context.Context, pattern string) error

// Item names a window by a title pattern.
type Item struct {
	menu.Base
	Pattern string
	raise   RaiseFunc
}

// NewItem returns a window item. A nil help selects "raise <name>".
func NewItem(name, pattern string, help *string, raise RaiseFunc) *Item {
	return &Item{Base: menu.NewBase(name, help), Pattern: pattern, raise: raise}
}

func (i *Item) String() string { return fmt.Sprintf("Window %s:%s", i.Name(), i.Pattern) }

// HelpText implements menu.Item.
func (i *Item) HelpText() string { return i.HelpOr("raise " + i.Name()) }

// Parameters implements menu.Serialisable.
func (i *Item) Parameters() map[string]any { return map[string]any{"pattern": i.Pattern} }

// Command implements menu.Item.
func (i *Item) Command() (*cobra.Command, error) {
	return commands.Generate(commands.Meta{
		Name:        i.Name(),
		Description: i.HelpText(),
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Raising window %s\n", i.Pattern)
		if i.raise == nil {
			return nil
		}
		return i.raise(cmd.Context(), i.Pattern)
	}), nil
}

// Variant decodes entries with exactly a "pattern" field.
func Variant(raise RaiseFunc) menu.Variant {
	return menu.Variant{
		Name: VariantName,
		Decode: func(name string, params map[string]any, help *string) (menu.Serialisable, error) {
			f := menu.NewFields(VariantName, params)
			pattern := f.String("pattern")
			if err := f.Err(); err != nil {
				return nil, err
			}
			return NewItem(name, pattern, help, raise), nil
		},
	}
}

// Defaults is the example content of a new store.
func Defaults() []menu.Serialisable {
	return []menu.Serialisable{
		NewItem("slack", "slack", menu.Help("Raises the window called 'slack'"), nil),
		NewItem("email", "gmail", menu.Help("Raises the window called 'gmail'"), nil),
	}
}

// New loads the window store from the configuration directory.
func New(ctx *plugin.Context) (plugin.Plugin, error) {
	launcher := ctx.Launch()
	raise := func(c context.Context, pattern string) error {
		return commands.AsUsage("could not raise window", launcher.RaiseWindow(c, pattern))
	}

	p, err := plugin.NewListPlugin(ctx, plugin.ListConfig{
		Slug:      ID,
		ShortSlug: ShortSlug,
		StoreFile: StoreFile,
		Variants:  []menu.Variant{Variant(raise)},
		Defaults:  Defaults,
		ValueName: "pattern",
		NewItem: func(keyword, value string, _ map[string]interface{}) (menu.Serialisable, error) {
			if strings.TrimSpace(value) == "" {
				return nil, commands.Usagef("window pattern for %q is empty", keyword)
			}
			return NewItem(keyword, value, nil, raise), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
