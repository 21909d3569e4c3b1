package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/chiffre/internal/analysis"
)

func TestPlotCurves(t *testing.T) {
	var buf bytes.Buffer
	err := PlotCurves(&buf, "Test Plot", []Curve{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, PlotOptions{Width: 12, Height: 4, XLabels: [2]string{"1", "5"}})
	if err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + 4 rows + x labels + legend
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Test Plot" {
		t.Fatalf("unexpected title line %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "4.000") {
		t.Fatalf("expected shared maximum on top axis, got %q", lines[1])
	}
	if !strings.Contains(lines[6], "A (solid)") || !strings.Contains(lines[6], "B (dashed)") {
		t.Fatalf("unexpected legend %q", lines[6])
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected color codes")
	}
}

func TestPlotCurvesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotCurves(&buf, "Empty", []Curve{{Name: "A"}}, PlotOptions{}); err != nil {
		t.Fatalf("PlotCurves failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-runewidth.StringWidth(axisSeparator) {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestStretch(t *testing.T) {
	got := stretch([]float64{0, 10}, 3)
	if got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Fatalf("unexpected interpolation %v", got)
	}
	got = stretch([]float64{1, 3, 5, 7}, 2)
	if got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected averaging %v", got)
	}
}

func TestPlotCoincidenceHasTarget(t *testing.T) {
	res := analysis.CoincidenceResult{
		KeyLength: 3,
		TargetIC:  0.074,
		Candidates: []analysis.CandidateIC{
			{Length: 1, AvgIC: 0.045},
			{Length: 2, AvgIC: 0.047},
			{Length: 3, AvgIC: 0.075},
			{Length: 4, AvgIC: 0.046},
		},
	}
	var buf bytes.Buffer
	if err := PlotCoincidence(&buf, res, PlotOptions{Width: 20, Height: 5}); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Average IC by key length") || !strings.Contains(out, "target (dashed)") {
		t.Fatalf("unexpected plot:\n%s", out)
	}
}
