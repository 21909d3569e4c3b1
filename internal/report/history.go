package report

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/store"
)

// History contains precomputed data for history rendering.
type History struct {
	Records []model.AnalysisRecord
	Counts  []store.LangCount
}

// BuildHistory loads the filtered analyses and the per-language totals.
func BuildHistory(ctx context.Context, st *store.Store, filter model.HistoryFilter) (History, error) {
	records, err := st.ListAnalyses(ctx, filter)
	if err != nil {
		return History{}, err
	}
	counts, err := st.CountByLanguage(ctx)
	if err != nil {
		return History{}, err
	}
	return History{Records: records, Counts: counts}, nil
}

// RenderHistory prints the totals followed by one row per analysis.
func RenderHistory(w io.Writer, h History) error {
	if len(h.Records) == 0 {
		return writeLines(w, "No analyses found.")
	}
	countRows := make([][]string, 0, len(h.Counts))
	for _, c := range h.Counts {
		countRows = append(countRows, []string{c.Cipher, c.Lang, fmt.Sprintf("%d", c.Count)})
	}
	lines := append([]string{"Totals"}, formatTable([]string{"Cipher", "Lang", "Analyses"}, countRows, map[int]bool{2: true})...)
	lines = append(lines, "")
	rows := HistoryRows(h.Records)
	for i, r := range h.Records {
		rows[i] = append([]string{fmt.Sprintf("%d", r.ID)}, rows[i]...)
	}
	lines = append(lines, formatTable([]string{"ID", "When", "Cipher", "Lang", "Method", "Letters", "Key", "Plaintext"}, rows, map[int]bool{0: true, 5: true})...)
	return writeLines(w, lines...)
}

// RenderColumns prints the key letter recovered for each column of one analysis.
func RenderColumns(w io.Writer, id int64, cols []store.ColumnRecord) error {
	if len(cols) == 0 {
		return writeLines(w, fmt.Sprintf("Analysis %d has no recovered columns.", id))
	}
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Column+1),
			c.Letter,
			fmt.Sprintf("%.2f", c.ChiSquared),
			fmt.Sprintf("%d", c.Length),
		})
	}
	lines := append([]string{fmt.Sprintf("Analysis %d key columns", id)},
		formatTable([]string{"Column", "Letter", "Chi2", "Letters"}, rows, map[int]bool{0: true, 2: true, 3: true})...)
	return writeLines(w, lines...)
}

// HistoryRows formats records as table cells; the TUI reuses them.
func HistoryRows(records []model.AnalysisRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		key := r.Key
		switch {
		case r.Manual:
			key += " (manual)"
		case !r.Conclusive:
			key += " (?)"
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Cipher,
			r.Lang,
			r.Method,
			fmt.Sprintf("%d", r.Letters),
			key,
			Truncate(r.Preview, 40),
		})
	}
	return rows
}
