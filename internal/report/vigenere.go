package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
)

const topVotes = 5

// RenderVigenere prints the estimator results, the recovered key and the
// decryption, or every fallback candidate when the key length was inconclusive.
func RenderVigenere(w io.Writer, lang freq.Language, rep analysis.VigenereReport) error {
	header := fmt.Sprintf("Vigenère analysis (%s, method %s, %d letters)", lang.Code, rep.Method, rep.Letters)
	if err := writeLines(w, header, ""); err != nil {
		return err
	}
	if rep.Kasiski != nil {
		if err := RenderKasiski(w, *rep.Kasiski); err != nil {
			return err
		}
	}
	if rep.Coincidence != nil {
		if err := RenderCoincidence(w, *rep.Coincidence); err != nil {
			return err
		}
	}
	if rep.Best != nil {
		return RenderKey(w, *rep.Best)
	}
	return RenderFallback(w, rep.Fallback)
}

// RenderKasiski prints the chosen length and the strongest GCD votes.
func RenderKasiski(w io.Writer, res analysis.KasiskiResult) error {
	if !res.Found {
		return writeLines(w, fmt.Sprintf("Kasiski: inconclusive (%d repeat distances)", len(res.Distances)), "")
	}
	votes := append([]analysis.GCDVote(nil), res.Votes...)
	sortVotes(votes)
	if len(votes) > topVotes {
		votes = votes[:topVotes]
	}
	rows := make([][]string, 0, len(votes))
	for _, v := range votes {
		rows = append(rows, []string{fmt.Sprintf("%d", v.Length), fmt.Sprintf("%d", v.Count)})
	}
	lines := []string{fmt.Sprintf("Kasiski: key length %d (%d repeat distances)", res.KeyLength, len(res.Distances))}
	lines = append(lines, formatTable([]string{"Length", "Votes"}, rows, map[int]bool{0: true, 1: true})...)
	return writeLines(w, append(lines, "")...)
}

// sortVotes orders by count, keeping first-encountered order on ties.
func sortVotes(votes []analysis.GCDVote) {
	for i := 1; i < len(votes); i++ {
		for j := i; j > 0 && votes[j].Count > votes[j-1].Count; j-- {
			votes[j], votes[j-1] = votes[j-1], votes[j]
		}
	}
}

// RenderCoincidence prints the average column IC of every candidate length.
func RenderCoincidence(w io.Writer, res analysis.CoincidenceResult) error {
	rows := make([][]string, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		mark := ""
		if c.Length == res.KeyLength {
			mark = "<"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", c.Length), fmt.Sprintf("%.4f", c.AvgIC), mark})
	}
	lines := []string{fmt.Sprintf("Index of coincidence: key length %d (target %.4f)", res.KeyLength, res.TargetIC)}
	lines = append(lines, formatTable([]string{"Length", "Avg IC", ""}, rows, map[int]bool{0: true, 1: true})...)
	return writeLines(w, append(lines, "")...)
}

// RenderKey prints a recovered key, its column scores and the plaintext.
func RenderKey(w io.Writer, cand analysis.KeyCandidate) error {
	lines := []string{fmt.Sprintf("Key: %s (length %d)", cand.Key, cand.KeyLength)}
	if len(cand.Columns) > 0 {
		rows := make([][]string, 0, len(cand.Columns))
		for _, c := range cand.Columns {
			rows = append(rows, []string{
				fmt.Sprintf("%d", c.Column+1),
				string(c.Letter),
				fmt.Sprintf("%.2f", c.ChiSquared),
				fmt.Sprintf("%d", c.Length),
			})
		}
		lines = append(lines, formatTable([]string{"Column", "Letter", "Chi2", "Letters"}, rows, map[int]bool{0: true, 2: true, 3: true})...)
	}
	lines = append(lines, "", "Plaintext:", cand.Plaintext, "")
	return writeLines(w, lines...)
}

// RenderFallback lists one recovered key per tried length.
func RenderFallback(w io.Writer, cands []analysis.KeyCandidate) error {
	if len(cands) == 0 {
		return writeLines(w, "No key recovered.")
	}
	rows := make([][]string, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.KeyLength),
			c.Key,
			Truncate(c.Plaintext, PreviewLength),
		})
	}
	lines := []string{"Key length inconclusive; candidates:"}
	lines = append(lines, formatTable([]string{"Length", "Key", "Plaintext"}, rows, map[int]bool{0: true})...)
	return writeLines(w, append(lines, "")...)
}

// PlotCoincidence draws average column IC against candidate key length,
// with the target IC as reference.
func PlotCoincidence(w io.Writer, res analysis.CoincidenceResult, opts PlotOptions) error {
	if len(res.Candidates) == 0 {
		return nil
	}
	values := make([]float64, len(res.Candidates))
	for i, c := range res.Candidates {
		values[i] = c.AvgIC
	}
	opts.Reference = res.TargetIC
	opts.HasReference = true
	opts.ReferenceName = "target"
	opts.XLabels = [2]string{
		fmt.Sprintf("%d", res.Candidates[0].Length),
		fmt.Sprintf("%d", res.Candidates[len(res.Candidates)-1].Length),
	}
	return PlotCurves(w, "Average IC by key length", []Curve{{Name: "avg IC", Values: values}}, opts)
}
