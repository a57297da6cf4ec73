package ui

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("virus", "https://www.virustotal.com", "Launch online virus scanner")
	tbl.AddRow("wiki", "https://en.wikipedia.org/wiki/{article_slug}")

	want := "virus  https://www.virustotal.com                    Launch online virus scanner\n" +
		"wiki   https://en.wikipedia.org/wiki/{article_slug}\n"
	if got := tbl.String(); got != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, want)
	}
}

func TestTableCountsRunes(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("Привет", "a")
	tbl.AddRow("x", "b")

	want := "Привет  a\nx       b\n"
	if got := tbl.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "item", "items"); got != "1 item" {
		t.Fatalf("got %q", got)
	}
	if got := Count(3, "item", "items"); got != "3 items" {
		t.Fatalf("got %q", got)
	}
}
