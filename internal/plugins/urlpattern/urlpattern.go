// Package urlpattern is the plugin that launches URLs built from templates.
package urlpattern

import (
	"context"
	"strings"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/menu"
	"github.com/yeahyeah/yeahyeah/internal/pattern"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
)

const (
	ID        = "url_patterns"
	ShortSlug = "url"
	StoreFile = "url_patterns.yaml"
)

// Defaults is the example content of a new store.
func Defaults() []menu.Serialisable {
	return []menu.Serialisable{
		pattern.New("virus", "https://www.virustotal.com", menu.Help("Launch online virus scanner"), nil),
		pattern.New("wiki", "https://en.wikipedia.org/wiki/{article_slug}", menu.Help("Launch given mediawiki article in English"), nil),
		pattern.NewWildcard("search", "https://duckduckgo.com/?q={query}", nil, nil),
	}
}

// New loads the url pattern store from the configuration directory.
func New(ctx *plugin.Context) (plugin.Plugin, error) {
	launcher := ctx.Launch()
	open := func(c context.Context, url string) error {
		return commands.AsUsage("could not open url", launcher.OpenURL(c, url))
	}

	p, err := plugin.NewListPlugin(ctx, plugin.ListConfig{
		Slug:      ID,
		ShortSlug: ShortSlug,
		StoreFile: StoreFile,
		Variants:  pattern.Variants(open),
		Defaults:  Defaults,
		ValueName: "pattern",
		AddFlags: []commands.FlagMeta{{
			Name:        "capture-all",
			Short:       "c",
			Description: "Pass all arguments to the first placeholder",
			Type:        commands.FlagTypeBool,
		}},
		NewItem: func(keyword, value string, flags map[string]interface{}) (menu.Serialisable, error) {
			if strings.TrimSpace(value) == "" {
				return nil, commands.Usagef("pattern for %q is empty", keyword)
			}
			if captureAll, _ := flags["capture-all"].(bool); captureAll {
				return pattern.NewWildcard(keyword, value, nil, open), nil
			}
			return pattern.New(keyword, value, nil, open), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
