// Package tui provides the Bubble Tea cryptanalysis interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/store"
)

const (
	tabAnalyze = iota
	tabHistory
)

const (
	focusText = iota
	focusKey
)

const inputHeight = 6

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// analysisDoneMsg carries a finished analysis back into the update loop.
type analysisDoneMsg struct {
	out outcome
	err error
}

// Model implements the Bubble Tea cryptanalysis UI.
type Model struct {
	config model.Config
	engine *analysis.Engine
	store  *store.Store

	tabs      []string
	activeTab int

	input    textarea.Model
	keyInput textinput.Model
	focus    int
	results  viewport.Model

	cipher  string
	method  analysis.Method
	running bool
	last    *outcome
	errMsg  string

	history    table.Model
	historyErr string

	width  int
	height int
}

// NewModel constructs the TUI model. st may be nil, which disables history.
func NewModel(cfg model.Config, engine *analysis.Engine, st *store.Store) *Model {
	m := &Model{
		config: cfg,
		engine: engine,
		store:  st,
		tabs:   []string{"Analyze", "History"},
		cipher: model.CipherVigenere,
		method: analysis.MethodBoth,
	}
	m.input = textarea.New()
	m.input.Placeholder = "Paste the ciphertext here"
	m.input.ShowLineNumbers = false
	m.input.CharLimit = 0
	m.input.SetHeight(inputHeight)
	m.input.Focus()

	m.keyInput = textinput.New()
	m.keyInput.Prompt = "Key: "
	m.keyInput.Placeholder = "empty to estimate"
	m.keyInput.CharLimit = 64

	m.results = viewport.New(0, 0)
	m.results.SetContent(headerStyle.Render("No analysis yet. Press ctrl+r to run."))
	m.history = newHistoryTable(0, 1)
	m.refreshHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case analysisDoneMsg:
		m.finishAnalysis(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			m.activeTab = tabAnalyze
			m.history.Blur()
			return m, nil
		case "f2":
			m.activeTab = tabHistory
			m.history.Focus()
			return m, nil
		}
		if m.activeTab == tabHistory {
			return m.updateHistory(msg)
		}
		return m.updateAnalyze(msg)
	}
	return m, nil
}

func (m *Model) updateAnalyze(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		return m, m.startAnalysis()
	case "ctrl+t":
		m.toggleCipher()
		return m, nil
	case "ctrl+g":
		m.cycleMethod()
		return m, nil
	case "tab":
		return m, m.toggleFocus()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	if m.focus == focusKey {
		m.keyInput, cmd = m.keyInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		m.refreshHistory()
		return m, nil
	case "left", "h":
		m.activeTab = tabAnalyze
		m.history.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	var body string
	if m.activeTab == tabHistory {
		body = m.renderHistory(bodyHeight)
	} else {
		body = m.renderAnalyze(bodyHeight)
	}
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) toggleCipher() {
	if m.cipher == model.CipherCaesar {
		m.cipher = model.CipherVigenere
		m.keyInput.Prompt = "Key: "
		m.keyInput.Placeholder = "empty to estimate"
		return
	}
	m.cipher = model.CipherCaesar
	m.keyInput.Prompt = "Shift: "
	m.keyInput.Placeholder = "0-25 or a letter, empty to estimate"
}

func (m *Model) cycleMethod() {
	switch m.method {
	case analysis.MethodBoth:
		m.method = analysis.MethodKasiski
	case analysis.MethodKasiski:
		m.method = analysis.MethodIC
	default:
		m.method = analysis.MethodBoth
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusText {
		m.focus = focusKey
		m.input.Blur()
		return m.keyInput.Focus()
	}
	m.focus = focusText
	m.keyInput.Blur()
	return m.input.Focus()
}

func (m *Model) startAnalysis() tea.Cmd {
	if m.running {
		return nil
	}
	req := request{
		Cipher:       m.cipher,
		Method:       m.method,
		Text:         m.input.Value(),
		Key:          m.keyInput.Value(),
		Alternatives: m.config.Alternatives,
		Width:        m.contentWidth(),
	}
	m.running = true
	m.errMsg = ""
	engine := m.engine
	return func() tea.Msg {
		out, err := runAnalysis(context.Background(), engine, req)
		return analysisDoneMsg{out: out, err: err}
	}
}

func (m *Model) finishAnalysis(msg analysisDoneMsg) {
	m.running = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return
	}
	out := msg.out
	m.last = &out
	m.renderResults()
	if m.store == nil || !m.config.History {
		return
	}
	if _, err := m.store.InsertAnalysis(context.Background(), out.Record, out.Columns); err != nil {
		m.errMsg = fmt.Sprintf("failed to save analysis: %v", err)
		return
	}
	m.refreshHistory()
}

func (m *Model) renderResults() {
	if m.last == nil {
		return
	}
	width := m.contentWidth()
	var sections []string
	if m.last.Plaintext != "" {
		plain := wrapStyledRunes(buildColumnRunes([]rune(m.last.Plaintext), m.last.KeyLength), width)
		sections = append(sections, labelStyle.Render("Plaintext"), plain, "")
	}
	sections = append(sections, wrapText(strings.TrimRight(m.last.Report, "\n"), width))
	m.results.SetContent(strings.Join(sections, "\n"))
	m.results.GotoTop()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.input.SetWidth(m.width)
	m.keyInput.Width = max(10, m.width-lipgloss.Width(m.keyInput.Prompt)-2)
	// Input area, key line and status line sit above the results.
	m.results.Width = m.width
	m.results.Height = max(1, bodyHeight-inputHeight-2)
	m.history.SetWidth(m.width)
	m.history.SetHeight(max(1, bodyHeight-1))
	m.renderResults()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := fmt.Sprintf("F%d %s", i+1, tab)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderAnalyze(height int) string {
	lines := []string{
		m.input.View(),
		m.keyInput.View(),
		m.renderStatus(),
		m.results.View(),
	}
	return fitLines(strings.Join(lines, "\n"), m.width, height)
}

func (m *Model) renderStatus() string {
	status := fmt.Sprintf("Cipher: %s  Lang: %s", m.cipher, m.engine.Language().Code)
	if m.cipher == model.CipherVigenere {
		status += fmt.Sprintf("  Method: %s", m.method)
	}
	if m.running {
		status += "  analyzing..."
	}
	return headerStyle.Render(truncateLine(status, m.width))
}

func (m *Model) renderFooter() string {
	help := "Run: ctrl+r  Cipher: ctrl+t  Method: ctrl+g  Focus: tab  Scroll: pgup/pgdn  Quit: ctrl+c"
	if m.activeTab == tabHistory {
		help = "Analyze: F1/left  Scroll: up/down  Reload: r  Quit: q"
	}
	help = headerStyle.Render(truncateLine(help, m.width))
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return help
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
