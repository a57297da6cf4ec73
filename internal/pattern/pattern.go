// Package pattern provides menu items built from a template string with
// {placeholder} tokens. The placeholders decide the argument signature of the
// rendered command: one required argument per name for Pattern, a single
// capture-all argument for Wildcard.
package pattern

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/menu"
)

// CaptureAllKey marks a stored entry as a Wildcard. Only its presence counts.
const CaptureAllKey = "capture_all_keywords"

const (
	VariantPattern  = "Pattern"
	VariantWildcard = "WildcardPattern"
)

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders returns the distinct placeholder names in template, in order
// of first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Action performs the side effect of a rendered pattern, such as opening the
// resolved URL.
type Action func(ctx context.Context, resolved string) error

// Pattern is a fixed-slot template item.
type Pattern struct {
	menu.Base
	Template string
	action   Action
}

// New returns a fixed-slot pattern. A nil help selects "launch <name>".
func New(name, template string, help *string, action Action) *Pattern {
	return &Pattern{Base: menu.NewBase(name, help), Template: template, action: action}
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern %s:%s", p.Name(), p.Template)
}

// HelpText implements menu.Item.
func (p *Pattern) HelpText() string {
	return p.HelpOr("launch " + p.Name())
}

// Parameters implements menu.Serialisable.
func (p *Pattern) Parameters() map[string]any {
	return map[string]any{"pattern": p.Template}
}

// Signature returns one required argument per distinct placeholder.
func (p *Pattern) Signature() []commands.ArgMeta {
	return commands.Fixed(Placeholders(p.Template)...)
}

// Render substitutes args, in placeholder order, into every occurrence of
// their placeholder. The number of args must match the placeholders.
func (p *Pattern) Render(args []string) (string, error) {
	names := Placeholders(p.Template)
	if err := commands.ValidateArgs(commands.Fixed(names...))(nil, args); err != nil {
		return "", err
	}
	pairs := make([]string, 0, 2*len(names))
	for i, name := range names {
		pairs = append(pairs, "{"+name+"}", args[i])
	}
	return strings.NewReplacer(pairs...).Replace(p.Template), nil
}

// Command implements menu.Item.
func (p *Pattern) Command() (*cobra.Command, error) {
	return renderCommand(p.Name(), p.HelpText(), p.Signature(), p.Render, p.action), nil
}

// Wildcard captures every argument into its first placeholder.
type Wildcard struct {
	Pattern
}

// NewWildcard returns a capture-all pattern.
func NewWildcard(name, template string, help *string, action Action) *Wildcard {
	return &Wildcard{Pattern: *New(name, template, help, action)}
}

func (w *Wildcard) String() string {
	return fmt.Sprintf("WildcardPattern %s:%s", w.Name(), w.Template)
}

// Parameters implements menu.Serialisable.
func (w *Wildcard) Parameters() map[string]any {
	params := w.Pattern.Parameters()
	params[CaptureAllKey] = true
	return params
}

// Signature returns a single variadic argument named after the first
// placeholder, or no arguments when the template has none.
func (w *Wildcard) Signature() []commands.ArgMeta {
	names := Placeholders(w.Template)
	if len(names) == 0 {
		return nil
	}
	return commands.Variadic(names[0])
}

// Render joins tokens with single spaces and substitutes them into the
// first placeholder. Any further placeholders are left as written.
func (w *Wildcard) Render(tokens []string) (string, error) {
	names := Placeholders(w.Template)
	if len(names) == 0 {
		if len(tokens) > 0 {
			return "", commands.Usagef("got unexpected extra arguments (%s)", strings.Join(tokens, " "))
		}
		return w.Template, nil
	}
	return strings.ReplaceAll(w.Template, "{"+names[0]+"}", strings.Join(tokens, " ")), nil
}

// Command implements menu.Item.
func (w *Wildcard) Command() (*cobra.Command, error) {
	return renderCommand(w.Name(), w.HelpText(), w.Signature(), w.Render, w.action), nil
}

func renderCommand(name, help string, sig []commands.ArgMeta, render func([]string) (string, error), action Action) *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        name,
		Description: help,
		Args:        sig,
	}, func(cmd *cobra.Command, args []string, _ map[string]interface{}) error {
		resolved, err := render(args)
		if err != nil {
			return err
		}
		display(cmd.OutOrStdout(), resolved)
		if action == nil {
			return nil
		}
		return action(cmd.Context(), resolved)
	})
}

func display(w io.Writer, resolved string) {
	fmt.Fprintln(w, resolved)
}

// Variants returns the candidate variants for a pattern list, most specific
// first. Rendered commands perform action.
func Variants(action Action) []menu.Variant {
	return []menu.Variant{WildcardVariant(action), FixedVariant(action)}
}

// FixedVariant accepts entries with exactly a "pattern" field.
func FixedVariant(action Action) menu.Variant {
	return menu.Variant{
		Name: VariantPattern,
		Decode: func(name string, params map[string]any, help *string) (menu.Serialisable, error) {
			f := menu.NewFields(VariantPattern, params)
			template := f.String("pattern")
			if err := f.Err(); err != nil {
				return nil, err
			}
			return New(name, template, help, action), nil
		},
	}
}

// WildcardVariant accepts entries with a "pattern" field and the
// capture-all marker.
func WildcardVariant(action Action) menu.Variant {
	return menu.Variant{
		Name: VariantWildcard,
		Decode: func(name string, params map[string]any, help *string) (menu.Serialisable, error) {
			f := menu.NewFields(VariantWildcard, params)
			template := f.String("pattern")
			f.Require(CaptureAllKey)
			if err := f.Err(); err != nil {
				return nil, err
			}
			return NewWildcard(name, template, help, action), nil
		},
	}
}
