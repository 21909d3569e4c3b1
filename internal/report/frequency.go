package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/chiffre/internal/freq"
)

const barWidth = 20

// RenderFrequencyTable prints the observed letter counts of a text next to
// the reference language, one row per letter.
func RenderFrequencyTable(w io.Writer, counts freq.Counts, lang freq.Language) error {
	if counts.Total == 0 {
		return writeLines(w, "No letters found.")
	}
	observed, _ := counts.Profile()
	peak := 0.0
	for i := 0; i < freq.AlphabetSize; i++ {
		peak = max(peak, observed[i], lang.Profile[i])
	}

	headers := []string{"Letter", "Count", "Observed", lang.Code, ""}
	rows := make([][]string, 0, freq.AlphabetSize)
	for i := 0; i < freq.AlphabetSize; i++ {
		rows = append(rows, []string{
			string(rune('A' + i)),
			fmt.Sprintf("%d", counts.Letters[i]),
			fmt.Sprintf("%.2f%%", observed[i]*100),
			fmt.Sprintf("%.2f%%", lang.Profile[i]*100),
			bar(observed[i], peak, barWidth),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
	lines = append([]string{fmt.Sprintf("Letter frequencies (%d letters, reference %s)", counts.Total, lang.Name)}, lines...)
	return writeLines(w, append(lines, "")...)
}

// bar renders v relative to peak with eighth-block precision.
func bar(v, peak float64, width int) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	eighths := int(v / peak * float64(width*8))
	full := eighths / 8
	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	if rest := eighths % 8; rest > 0 {
		b.WriteRune(rune(0x2590 - rest))
	}
	return b.String()
}

// RenderProfile prints the reference frequencies of lang.
func RenderProfile(w io.Writer, lang freq.Language) error {
	peak := 0.0
	for _, v := range lang.Profile {
		peak = max(peak, v)
	}
	rows := make([][]string, 0, freq.AlphabetSize)
	for i, v := range lang.Profile {
		rows = append(rows, []string{
			string(rune('A' + i)),
			fmt.Sprintf("%.2f%%", v*100),
			bar(v, peak, barWidth),
		})
	}
	lines := []string{
		fmt.Sprintf("%s (%s): peak %c, target IC %.4f, expected IC %.4f", lang.Name, lang.Code, lang.Peak, lang.TargetIC, lang.Profile.ExpectedIC()),
	}
	lines = append(lines, formatTable([]string{"Letter", "Freq", ""}, rows, map[int]bool{1: true})...)
	return writeLines(w, lines...)
}

// RenderLanguages lists languages with their source, custom or built-in.
func RenderLanguages(w io.Writer, langs []freq.Language, custom map[string]bool) error {
	rows := make([][]string, 0, len(langs))
	for _, lang := range langs {
		source := "built-in"
		if custom[lang.Code] {
			source = "custom"
		}
		rows = append(rows, []string{
			lang.Code,
			lang.Name,
			string(lang.Peak),
			fmt.Sprintf("%.4f", lang.TargetIC),
			source,
		})
	}
	return writeLines(w, formatTable([]string{"Code", "Name", "Peak", "Target IC", "Source"}, rows, map[int]bool{3: true})...)
}
