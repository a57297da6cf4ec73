// Package plugins lists the plugins shipped with jj.
package plugins

import (
	"github.com/yeahyeah/yeahyeah/internal/plugin"
	"github.com/yeahyeah/yeahyeah/internal/plugins/directory"
	"github.com/yeahyeah/yeahyeah/internal/plugins/pathitem"
	"github.com/yeahyeah/yeahyeah/internal/plugins/timelog"
	"github.com/yeahyeah/yeahyeah/internal/plugins/urlpattern"
	"github.com/yeahyeah/yeahyeah/internal/plugins/windowraiser"
)

// Catalog returns a catalog with every built-in plugin, keyed by the
// identifier used in settings.toml.
func Catalog() *plugin.Catalog {
	c := plugin.NewCatalog()
	c.Register(urlpattern.ID, urlpattern.New)
	c.Register(pathitem.ID, pathitem.New)
	c.Register(windowraiser.ID, windowraiser.New)
	c.Register(timelog.ID, timelog.New)
	c.Register(directory.ID, directory.New)
	return c
}
