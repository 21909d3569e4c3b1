package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/text"
)

const passage = `Il etait une fois dans une petite ville de province une jeune fille qui aimait lire les livres de la bibliotheque municipale. Chaque matin elle traversait la place du marche, saluait le boulanger et le fleuriste, puis elle entrait dans la grande salle silencieuse ou les lecteurs etaient assis devant de longues tables en bois. Elle choisissait toujours un roman different, parfois une histoire de voyage, parfois une enquete policiere, et elle restait la jusqu au soir sans voir le temps passer. Les gens de la ville la connaissaient bien et disaient qu elle deviendrait un jour une grande ecrivaine.`

func newEngine(t *testing.T) *analysis.Engine {
	t.Helper()
	e, err := analysis.New(freq.Builtin()["fr"])
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	return e
}

func TestRunAnalysisCaesarEstimate(t *testing.T) {
	out, err := runAnalysis(context.Background(), newEngine(t), request{
		Cipher:       model.CipherCaesar,
		Text:         "WKH HDJOH KDV ODQGHG",
		Alternatives: 3,
		Width:        80,
	})
	if err != nil {
		t.Fatalf("runAnalysis failed: %v", err)
	}
	if out.Plaintext != "THE EAGLE HAS LANDED" {
		t.Fatalf("unexpected plaintext %q", out.Plaintext)
	}
	if out.Record.Key != "D" || out.Record.Manual || out.Record.Cipher != model.CipherCaesar {
		t.Fatalf("unexpected record %+v", out.Record)
	}
	for _, want := range []string{"Estimated shift: 3", "Alternatives", "Shifts by chi-squared"} {
		if !strings.Contains(out.Report, want) {
			t.Fatalf("report missing %q:\n%s", want, out.Report)
		}
	}
}

func TestRunAnalysisCaesarManualShift(t *testing.T) {
	out, err := runAnalysis(context.Background(), newEngine(t), request{
		Cipher: model.CipherCaesar,
		Text:   "WKH HDJOH",
		Key:    "d",
	})
	if err != nil {
		t.Fatalf("runAnalysis failed: %v", err)
	}
	if out.Plaintext != "THE EAGLE" || !out.Record.Manual || out.Record.Key != "D" {
		t.Fatalf("unexpected outcome %+v", out)
	}

	if _, err := runAnalysis(context.Background(), newEngine(t), request{Cipher: model.CipherCaesar, Text: "abc", Key: "27"}); err == nil {
		t.Fatalf("expected error for out of range shift")
	}
}

func TestRunAnalysisVigenereEstimate(t *testing.T) {
	cipher, err := analysis.EncryptVigenere(passage, "CLE")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	out, err := runAnalysis(context.Background(), newEngine(t), request{
		Cipher: model.CipherVigenere,
		Method: analysis.MethodBoth,
		Text:   cipher,
		Width:  80,
	})
	if err != nil {
		t.Fatalf("runAnalysis failed: %v", err)
	}
	if out.KeyLength != 3 || out.Record.Key != "CLE" || !out.Record.Conclusive {
		t.Fatalf("unexpected outcome key=%q len=%d", out.Record.Key, out.KeyLength)
	}
	if out.Plaintext != text.Normalize(passage) {
		t.Fatalf("unexpected plaintext")
	}
	if len(out.Columns) != 3 {
		t.Fatalf("expected 3 column records, got %d", len(out.Columns))
	}
	if !strings.Contains(out.Report, "Average IC by key length") {
		t.Fatalf("expected IC plot in report")
	}
}

func TestRunAnalysisVigenereManualKey(t *testing.T) {
	out, err := runAnalysis(context.Background(), newEngine(t), request{
		Cipher: model.CipherVigenere,
		Text:   "LXFOPVEFRNHR",
		Key:    "lemon",
	})
	if err != nil {
		t.Fatalf("runAnalysis failed: %v", err)
	}
	if out.Plaintext != "ATTACKATDAWN" || out.Record.Method != "key" || out.KeyLength != 5 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestRunAnalysisErrors(t *testing.T) {
	e := newEngine(t)
	cases := []request{
		{Cipher: model.CipherVigenere, Method: analysis.MethodBoth, Text: "   "},
		{Cipher: model.CipherVigenere, Method: analysis.MethodBoth, Text: "trop court"},
		{Cipher: "enigma", Text: "abc"},
	}
	for _, req := range cases {
		if _, err := runAnalysis(context.Background(), e, req); err == nil {
			t.Fatalf("expected error for %+v", req)
		}
	}
}

func TestParseShift(t *testing.T) {
	cases := map[string]analysis.Shift{"3": 3, " 25 ": 25, "d": 3, "A": 0}
	for in, want := range cases {
		got, err := parseShift(in)
		if err != nil {
			t.Fatalf("parseShift(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parseShift(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"26", "-1", "ab", ""} {
		if _, err := parseShift(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
