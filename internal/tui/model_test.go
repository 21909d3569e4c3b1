package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "chiffre.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestModelTogglesCipherAndMethod(t *testing.T) {
	m := NewModel(model.DefaultConfig(), newEngine(t), nil)
	if m.cipher != model.CipherVigenere || m.method != analysis.MethodBoth {
		t.Fatalf("unexpected defaults %s/%s", m.cipher, m.method)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.cipher != model.CipherCaesar || m.keyInput.Prompt != "Shift: " {
		t.Fatalf("expected caesar mode, got %s", m.cipher)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.cipher != model.CipherVigenere {
		t.Fatalf("expected vigenere mode, got %s", m.cipher)
	}

	expected := []analysis.Method{analysis.MethodKasiski, analysis.MethodIC, analysis.MethodBoth}
	for _, want := range expected {
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
		if m.method != want {
			t.Fatalf("expected method %s, got %s", want, m.method)
		}
	}
}

func TestModelSwitchesFocusAndTabs(t *testing.T) {
	m := NewModel(model.DefaultConfig(), newEngine(t), nil)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusKey || !m.keyInput.Focused() || m.input.Focused() {
		t.Fatalf("expected key input focused")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cle")})
	if m.keyInput.Value() != "cle" {
		t.Fatalf("expected typed key, got %q", m.keyInput.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusText || !m.input.Focused() {
		t.Fatalf("expected text area focused")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabAnalyze {
		t.Fatalf("expected analyze tab")
	}
}

func TestModelRunsAnalysisAndSavesHistory(t *testing.T) {
	st := openStore(t)
	cipher, err := analysis.EncryptVigenere(passage, "CLE")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	m := NewModel(model.DefaultConfig(), newEngine(t), st)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.input.SetValue(cipher)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil || !m.running {
		t.Fatalf("expected analysis command")
	}
	m.Update(cmd())
	if m.running {
		t.Fatalf("expected analysis to finish")
	}
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.last == nil || m.last.Record.Key != "CLE" {
		t.Fatalf("expected key CLE, got %+v", m.last)
	}
	rows := m.history.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(rows))
	}
	if rows[0][5] != "CLE" {
		t.Fatalf("unexpected history key %q", rows[0][5])
	}

	view := m.View()
	for _, want := range []string{"Analyze", "History", "Cipher: vigenere", "Method: both"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestModelReportsAnalysisErrors(t *testing.T) {
	m := NewModel(model.DefaultConfig(), newEngine(t), nil)
	m.input.SetValue("trop court")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.Update(cmd())
	if !strings.Contains(m.errMsg, "too short") {
		t.Fatalf("expected short text error, got %q", m.errMsg)
	}
	if m.last != nil {
		t.Fatalf("expected no outcome")
	}
	if m.historyErr != "History is disabled." {
		t.Fatalf("expected disabled history, got %q", m.historyErr)
	}
}

func TestFitLinesPadsAndTrims(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fit: %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}
