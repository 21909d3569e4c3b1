package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/report"
)

const historyLimit = 200

var historyColumns = []table.Column{
	{Title: "When", Width: 16},
	{Title: "Cipher", Width: 8},
	{Title: "Lang", Width: 5},
	{Title: "Method", Width: 8},
	{Title: "Letters", Width: 7},
	{Title: "Key", Width: 20},
	{Title: "Plaintext", Width: 40},
}

var tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))

func newHistoryTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(historyColumns),
		table.WithHeight(max(1, height)),
	)
	t.SetWidth(width)
	t.SetStyles(historyTableStyles())
	return t
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func historyRows(records []model.AnalysisRecord) []table.Row {
	cells := report.HistoryRows(records)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

func (m *Model) refreshHistory() {
	if m.store == nil {
		m.historyErr = "History is disabled."
		return
	}
	records, err := m.store.ListAnalyses(context.Background(), model.HistoryFilter{Last: historyLimit})
	if err != nil {
		m.historyErr = err.Error()
		return
	}
	m.historyErr = ""
	m.history.SetRows(historyRows(records))
}

func (m *Model) renderHistory(height int) string {
	switch {
	case m.historyErr != "":
		return fitLines(m.historyErr, m.width, height)
	case len(m.history.Rows()) == 0:
		return fitLines("No analyses found.", m.width, height)
	default:
		return fitLines(tableMutedStyle.Render(m.history.View()), m.width, height)
	}
}
