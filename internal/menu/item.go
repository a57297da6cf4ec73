// Package menu implements the persistable menu item model: named items that
// can be rendered into cobra commands and saved to, or loaded from, a flat
// name -> parameters mapping without an explicit type tag.
package menu

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// HelpKey is the parameter key that holds explicitly set help text.
const HelpKey = "text"

// ErrNoCommand is returned by Base.Command. A concrete item that embeds Base
// must provide its own Command method.
var ErrNoCommand = errors.New("menu item does not implement Command")

// Item is something that can be added to the launch menu and run.
type Item interface {
	Name() string
	HelpText() string
	Command() (*cobra.Command, error)
}

// Serialisable is an Item that round-trips through a Dict.
type Serialisable interface {
	Item
	// Parameters returns the item's extra fields, saved next to its name and
	// help text. The returned map is owned by the caller.
	Parameters() map[string]any
	// ExplicitHelp returns the help text exactly as it was set, and false if
	// none was set and HelpText falls back to a default.
	ExplicitHelp() (string, bool)
}

// Base carries the name and optional help text shared by all items.
type Base struct {
	name string
	help *string
}

// NewBase returns a Base. A nil help means "use the variant's default".
func NewBase(name string, help *string) Base {
	b := Base{name: name}
	if help != nil {
		h := *help
		b.help = &h
	}
	return b
}

// Name is the invocation keyword.
func (b Base) Name() string { return b.name }

// HelpText returns the explicit help text or "".
func (b Base) HelpText() string {
	if b.help == nil {
		return ""
	}
	return *b.help
}

// ExplicitHelp implements Serialisable.
func (b Base) ExplicitHelp() (string, bool) {
	if b.help == nil {
		return "", false
	}
	return *b.help, true
}

// HelpOr returns the explicit help text, or fallback when none was set.
func (b Base) HelpOr(fallback string) string {
	if b.help == nil {
		return fallback
	}
	return *b.help
}

// Parameters implements Serialisable. The base item has none.
func (b Base) Parameters() map[string]any { return map[string]any{} }

// Command always fails. See ErrNoCommand.
func (b Base) Command() (*cobra.Command, error) {
	return nil, fmt.Errorf("%q: %w", b.name, ErrNoCommand)
}

// Help is a convenience for building a *string from a literal.
func Help(s string) *string { return &s }

// Dict is the single-entry persisted form of one item:
// {name: {param: value, ..., "text": help}}.
type Dict map[string]map[string]any

// ToDict returns the persisted form of item. The help key is only present
// when the help text was explicitly set.
func ToDict(item Serialisable) Dict {
	values := item.Parameters()
	if values == nil {
		values = map[string]any{}
	}
	if help, ok := item.ExplicitHelp(); ok {
		values[HelpKey] = help
	}
	return Dict{item.Name(): values}
}

// Describe returns a one-line description of item for listings.
func Describe(item Item) string {
	if s, ok := item.(fmt.Stringer); ok {
		return s.String()
	}
	return item.Name()
}
