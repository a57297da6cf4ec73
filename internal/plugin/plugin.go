// Package plugin defines what a yeahyeah plugin contributes and the context
// it is constructed from.
package plugin

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/config"
	"github.com/yeahyeah/yeahyeah/internal/launch"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

// Plugin is a named contributor of invocation and admin commands. A plugin
// is fully loaded by its Factory and stays active for the whole process.
type Plugin interface {
	// Slug names the plugin's admin namespace.
	Slug() string
	// ShortSlug is appended to the help text of the plugin's commands.
	ShortSlug() string
	// Commands returns the runnable actions, usually one per stored item.
	Commands() ([]*cobra.Command, error)
	// AdminCommands returns the management actions for admin <slug>.
	AdminCommands() ([]*cobra.Command, error)
}

// Context is everything a plugin needs from the process that hosts it.
type Context struct {
	// ConfigDir is the root of all plugin store files.
	ConfigDir string
	// Out receives one-line notices such as first-run default creation.
	Out io.Writer
	Logger   *log.Logger
	Launcher launch.Launcher
	Settings *config.Settings
}

// Path returns name inside the configuration directory.
func (c *Context) Path(name string) string {
	return filepath.Join(c.ConfigDir, name)
}

// Launch returns the configured Launcher, or the system one.
func (c *Context) Launch() launch.Launcher {
	if c.Launcher != nil {
		return c.Launcher
	}
	sys := launch.System{}
	if c.Settings != nil {
		sys.Editor = c.Settings.Editor
		sys.Terminal = c.Settings.Terminal
	}
	return sys
}

// Notice logs msg at info level and echoes it to Out.
func (c *Context) Notice(slug, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if c.Logger != nil {
		c.Logger.Info(msg, "plugin", slug)
	}
	if c.Out != nil {
		fmt.Fprintln(c.Out, ui.Infof("%s", msg))
	}
}

// Factory constructs a plugin from a context. Loading the plugin's store
// happens here, so a factory error means the plugin never became active.
type Factory func(*Context) (Plugin, error)

// UnrecognizedRefError is returned when a value passed for registration is
// neither a Plugin, a Factory nor a catalog identifier.
type UnrecognizedRefError struct {
	Ref interface{}
}

func (e *UnrecognizedRefError) Error() string {
	return fmt.Sprintf("%v (%T) is not a recognized plugin reference", e.Ref, e.Ref)
}

// UnknownPluginError is returned for an identifier missing from the Catalog.
type UnknownPluginError struct {
	ID    string
	Known []string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("unknown plugin %q, known plugins are %s", e.ID, strings.Join(e.Known, ", "))
}

// Catalog maps stable plugin identifiers to their factories.
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: map[string]Factory{}}
}

// Register adds or replaces the factory for id.
func (c *Catalog) Register(id string, factory Factory) {
	c.factories[id] = factory
}

// Lookup returns the factory registered for id.
func (c *Catalog) Lookup(id string) (Factory, error) {
	if f, ok := c.factories[id]; ok {
		return f, nil
	}
	return nil, &UnknownPluginError{ID: id, Known: c.IDs()}
}

// IDs returns the registered identifiers, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
