package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
)

// PreviewLength bounds plaintext previews of alternatives and fallback keys.
const PreviewLength = 100

// CaesarView is everything shown after a Caesar analysis.
type CaesarView struct {
	Lang         freq.Language
	Result       analysis.CaesarResult
	Plaintext    string
	Alternatives []analysis.Alternative
	Ranked       []analysis.ShiftScore
}

// RenderCaesar prints the estimated shift, the decryption and the optional
// alternatives and chi-squared ranking.
func RenderCaesar(w io.Writer, v CaesarView) error {
	res := v.Result
	lines := []string{fmt.Sprintf("Caesar analysis (%s, %d letters)", v.Lang.Code, res.Letters)}
	if res.Letters == 0 {
		lines = append(lines, "No letters found; shift defaults to 0.")
	} else {
		lines = append(lines, fmt.Sprintf("Most frequent letter: %c (reference peak %c)", res.MostFrequent, v.Lang.Peak))
	}
	lines = append(lines,
		fmt.Sprintf("Estimated shift: %d (key %c)", int(res.Shift), res.Shift.Letter()),
		"",
		"Plaintext:",
		v.Plaintext,
		"",
	)
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	if len(v.Alternatives) > 0 {
		if err := RenderAlternatives(w, v.Alternatives); err != nil {
			return err
		}
	}
	if len(v.Ranked) > 0 {
		return RenderRanking(w, v.Ranked)
	}
	return nil
}

// RenderAlternatives lists neighbouring shifts with a truncated decryption.
func RenderAlternatives(w io.Writer, alts []analysis.Alternative) error {
	rows := make([][]string, 0, len(alts))
	for _, a := range alts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", int(a.Shift)),
			string(a.Shift.Letter()),
			Truncate(a.Plaintext, PreviewLength),
		})
	}
	lines := append([]string{"Alternatives"}, formatTable([]string{"Shift", "Key", "Plaintext"}, rows, map[int]bool{0: true})...)
	return writeLines(w, append(lines, "")...)
}

// RenderRanking lists all shifts ordered by chi-squared distance.
func RenderRanking(w io.Writer, ranked []analysis.ShiftScore) error {
	rows := make([][]string, 0, len(ranked))
	for i, s := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", int(s.Shift)),
			string(s.Shift.Letter()),
			fmt.Sprintf("%.2f", s.ChiSquared),
		})
	}
	lines := append([]string{"Shifts by chi-squared"}, formatTable([]string{"Rank", "Shift", "Key", "Chi2"}, rows, map[int]bool{0: true, 1: true, 3: true})...)
	return writeLines(w, append(lines, "")...)
}

// PlotShiftScores draws chi-squared against shift.
func PlotShiftScores(w io.Writer, scores [freq.AlphabetSize]float64, opts PlotOptions) error {
	opts.XLabels = [2]string{"A", "Z"}
	return PlotCurves(w, "Chi-squared by shift", []Curve{{Name: "chi2", Values: scores[:]}}, opts)
}
