package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// columnStyles cycle over key positions so letters enciphered with the same
// key letter share a color.
var columnStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#D787D7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#D7875F")),
}

// buildColumnRunes styles plain so that the i-th letter takes the color of
// key column i mod keyLength. Other characters are muted and keep their
// place without advancing the column.
func buildColumnRunes(plain []rune, keyLength int) []styledRune {
	out := make([]styledRune, 0, len(plain))
	letter := 0
	for _, r := range plain {
		style := pendingStyle
		if isASCIILetter(r) {
			if keyLength > 1 {
				style = columnStyles[(letter%keyLength)%len(columnStyles)]
			} else {
				style = columnStyles[0]
			}
			letter++
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	return out
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// wrapText wraps every line of s to width display cells, breaking at the
// last space when there is one.
func wrapText(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = wrapStyledRunes(plainRunes(line), width)
	}
	return strings.Join(lines, "\n")
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
