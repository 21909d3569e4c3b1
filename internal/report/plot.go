package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Curve is one named line of a plot, one value per x position.
type Curve struct {
	Name   string
	Values []float64
}

// PlotOptions sizes a plot. Zero Width follows the terminal.
type PlotOptions struct {
	Width  int
	Height int
	Color  bool
	// Reference draws a horizontal guide, such as the target IC.
	Reference     float64
	HasReference  bool
	ReferenceName string
	// XLabels annotate the first and last x position.
	XLabels [2]string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

type dashStyle struct {
	name   string
	period int
	on     int
}

var dashStyles = []dashStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var palette = []string{
	"\x1b[36m",
	"\x1b[33m",
	"\x1b[35m",
	"\x1b[32m",
}

// PlotCurves draws all curves on one shared vertical scale using braille
// dots, so they can be compared against each other and the reference line.
func PlotCurves(w io.Writer, title string, curves []Curve, opts PlotOptions) error {
	curves = nonEmptyCurves(curves)
	if len(curves) == 0 {
		return nil
	}
	if opts.HasReference {
		curves = append(curves, Curve{
			Name:   referenceName(opts),
			Values: []float64{opts.Reference, opts.Reference},
		})
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	lo, hi := curveBounds(curves)
	grids := make([]*dotGrid, len(curves))
	for i, c := range curves {
		grids[i] = newDotGrid(width, height)
		grids[i].trace(stretch(c.Values, width), lo, hi, dashStyles[i%len(dashStyles)])
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(axisLabel(y, height, lo, hi), axisLabelWidth))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := mergeCell(grids, x, y)
			ch := rune(0x2800 + int(mask))
			if opts.Color && owner >= 0 {
				row.WriteString(palette[owner%len(palette)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if opts.XLabels[0] != "" || opts.XLabels[1] != "" {
		pad := width - runewidth.StringWidth(opts.XLabels[0]) - runewidth.StringWidth(opts.XLabels[1])
		if pad < 1 {
			pad = 1
		}
		line := strings.Repeat(" ", axisLabelWidth+runewidth.StringWidth(axisSeparator)) +
			opts.XLabels[0] + strings.Repeat(" ", pad) + opts.XLabels[1]
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, legend(curves, opts.Color))
	return err
}

func referenceName(opts PlotOptions) string {
	if opts.ReferenceName != "" {
		return opts.ReferenceName
	}
	return "reference"
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// UseColor reports whether w is a terminal that should get ANSI colors.
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func nonEmptyCurves(curves []Curve) []Curve {
	out := make([]Curve, 0, len(curves))
	for _, c := range curves {
		if len(c.Values) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func curveBounds(curves []Curve) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		for _, v := range c.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

func axisLabel(row, height int, lo, hi float64) string {
	switch {
	case row == 0:
		return formatTick(hi)
	case row == height-1:
		return formatTick(lo)
	case height > 2 && row == height/2:
		return formatTick((lo + hi) / 2)
	}
	return ""
}

func formatTick(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1000:
		return fmt.Sprintf("%.0f", v)
	case a >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

// stretch maps values onto width columns: averaging when shrinking,
// linear interpolation when growing.
func stretch(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := (i + 1) * n / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// dotGrid holds braille cells; each cell is 2 dots wide and 4 dots tall.
type dotGrid struct {
	cells  [][]uint8
	width  int
	height int
}

func newDotGrid(width, height int) *dotGrid {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &dotGrid{cells: cells, width: width, height: height}
}

func (g *dotGrid) trace(values []float64, lo, hi float64, style dashStyle) {
	rows := g.height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		pos := (v - lo) / (hi - lo)
		y := int(math.Round((1 - pos) * float64(rows-1)))
		y = min(max(y, 0), rows-1)
		px := x * 2
		if prevX < 0 {
			if style.on > 0 {
				g.set(px, y)
			}
		} else {
			bresenham(prevX, prevY, px, y, func(dx, dy int) {
				if style.period <= 1 || dx%style.period < style.on {
					g.set(dx, dy)
				}
			})
		}
		prevX, prevY = px, y
	}
}

// Braille dot bits, indexed [column][row] within a cell.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (g *dotGrid) set(x, y int) {
	cx, cy := x/2, y/4
	if x < 0 || y < 0 || cx >= g.width || cy >= g.height {
		return
	}
	g.cells[cy][cx] |= dotBits[x%2][y%4]
}

func mergeCell(grids []*dotGrid, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, g := range grids {
		m := g.cells[y][x]
		if m == 0 {
			continue
		}
		if owner < 0 {
			owner = i
		}
		mask |= m
	}
	return mask, owner
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func legend(curves []Curve, color bool) string {
	parts := make([]string, 0, len(curves))
	for i, c := range curves {
		label := fmt.Sprintf("⠁ %s (%s)", c.Name, dashStyles[i%len(dashStyles)].name)
		if color {
			label = palette[i%len(palette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}
