package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin of rendered listings.
const MarkdownRenderMargin = 2

// ListingRow is one item of a listing.
type ListingRow struct {
	Name  string
	Value string
	Help  string
}

// ListingMarkdown builds the markdown for a listing headed by title.
func ListingMarkdown(title string, rows []ListingRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if len(rows) == 0 {
		b.WriteString("*no items*\n")
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "* **%s** `%s`", r.Name, r.Value)
		if r.Help != "" {
			fmt.Fprintf(&b, " *%s*", r.Help)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMarkdown renders markdown for a terminal of the given width,
// falling back to DefaultTermWidth when width is not positive.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(listingStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

func listingStyle() ansi.StyleConfig {
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = &color
	}
	muted := "8"
	bold := true
	margin := uint(MarkdownRenderMargin)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         &margin,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: &bold},
		},
		H2:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		List:   ansi.StyleList{LevelIndent: 2},
		Item:   ansi.StylePrimitive{BlockPrefix: "• "},
		Strong: ansi.StylePrimitive{Bold: &bold},
		Code:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}},
		Emph:   ansi.StylePrimitive{Color: &muted},
	}
}
