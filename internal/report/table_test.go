package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Letter", "Observed", "Count"}
	rows := [][]string{
		{"E", "17.44%", "86"},
		{"W", "0.00%", "0"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Letter Observed Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "E        17.44%    86" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "W         0.00%     0" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("ABCDEFGHIJ", 20); got != "ABCDEFGHIJ" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := Truncate("ABCDEFGHIJ", 8); got != "ABCDE..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("ABC", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
