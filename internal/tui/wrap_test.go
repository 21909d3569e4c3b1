package tui

import "testing"

func TestWrapTextBreaksAtLastSpace(t *testing.T) {
	if got := wrapText("aaa bbb ccc", 7); got != "aaa\nbbb ccc" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	if got := wrapText("abcdef", 4); got != "abcd\nef" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextKeepsLines(t *testing.T) {
	if got := wrapText("ab\ncd", 10); got != "ab\ncd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := wrapText("abc def", 0); got != "abc def" {
		t.Fatalf("expected no wrapping at width 0, got %q", got)
	}
}

func TestBuildColumnRunesCyclesKeyColumns(t *testing.T) {
	runes := buildColumnRunes([]rune("AB C"), 2)
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != columnStyles[0].Render("A") {
		t.Fatalf("expected first column style for A")
	}
	if runes[1].s != columnStyles[1].Render("B") {
		t.Fatalf("expected second column style for B")
	}
	if runes[2].s != pendingStyle.Render(" ") || !runes[2].isSpace {
		t.Fatalf("expected muted space")
	}
	// The space does not advance the column.
	if runes[3].s != columnStyles[0].Render("C") {
		t.Fatalf("expected first column style for C")
	}
}

func TestBuildColumnRunesSingleColumn(t *testing.T) {
	for _, r := range buildColumnRunes([]rune("XYZ"), 1) {
		if r.width != 1 {
			t.Fatalf("expected width 1, got %d", r.width)
		}
	}
	runes := buildColumnRunes([]rune("XY"), 0)
	if runes[1].s != columnStyles[0].Render("Y") {
		t.Fatalf("expected a single color without a key length")
	}
}
