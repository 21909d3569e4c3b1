package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/report"
	"github.com/verte-zerg/chiffre/internal/store"
	"github.com/verte-zerg/chiffre/internal/text"
)

// request is one analysis triggered from the input pane.
type request struct {
	Cipher       string
	Method       analysis.Method
	Text         string
	Key          string
	Alternatives int
	Width        int
}

// outcome is what the results pane shows and the history stores.
type outcome struct {
	Report    string
	Plaintext string
	KeyLength int
	Record    model.AnalysisRecord
	Columns   []store.ColumnRecord
}

func runAnalysis(ctx context.Context, e *analysis.Engine, req request) (outcome, error) {
	if strings.TrimSpace(req.Text) == "" {
		return outcome{}, fmt.Errorf("nothing to analyze")
	}
	switch req.Cipher {
	case model.CipherCaesar:
		return runCaesar(e, req)
	case model.CipherVigenere:
		return runVigenere(ctx, e, req)
	default:
		return outcome{}, fmt.Errorf("unknown cipher %q", req.Cipher)
	}
}

func runCaesar(e *analysis.Engine, req request) (outcome, error) {
	started := time.Now()
	lang := e.Language()
	res, plain := e.AnalyzeCaesar(req.Text)
	manual := strings.TrimSpace(req.Key) != ""
	if manual {
		shift, err := parseShift(req.Key)
		if err != nil {
			return outcome{}, err
		}
		res.Shift = shift
		plain = analysis.DecryptCaesar(req.Text, shift)
	}

	cipherText := text.Normalize(req.Text)
	view := report.CaesarView{
		Lang:         lang,
		Result:       res,
		Plaintext:    plain,
		Alternatives: analysis.Alternatives(req.Text, res.Shift, req.Alternatives),
		Ranked:       analysis.RankShifts(cipherText, lang.Profile),
	}
	var buf bytes.Buffer
	if err := report.RenderCaesar(&buf, view); err != nil {
		return outcome{}, err
	}
	if err := report.RenderFrequencyTable(&buf, freq.Count(cipherText), lang); err != nil {
		return outcome{}, err
	}
	if res.Letters > 0 {
		opts := report.PlotOptions{Width: report.PlotWidthFor(req.Width)}
		if err := report.PlotShiftScores(&buf, analysis.ChiSquaredScores(cipherText, lang.Profile), opts); err != nil {
			return outcome{}, err
		}
	}
	return outcome{
		Report:    buf.String(),
		Plaintext: plain,
		KeyLength: 1,
		Record:    report.CaesarRecord(lang.Code, res, plain, manual, time.Since(started)),
	}, nil
}

func runVigenere(ctx context.Context, e *analysis.Engine, req request) (outcome, error) {
	started := time.Now()
	lang := e.Language()
	var buf bytes.Buffer

	if key := strings.TrimSpace(req.Key); key != "" {
		cand, err := e.DecryptWithKey(req.Text, key)
		if err != nil {
			return outcome{}, err
		}
		if err := report.RenderKey(&buf, cand); err != nil {
			return outcome{}, err
		}
		letters := len(text.Normalize(req.Text))
		return outcome{
			Report:    buf.String(),
			Plaintext: cand.Plaintext,
			KeyLength: cand.KeyLength,
			Record:    report.ManualKeyRecord(lang.Code, cand, letters, time.Since(started)),
		}, nil
	}

	rep, err := e.CrackVigenere(ctx, req.Text, req.Method)
	if err != nil {
		return outcome{}, err
	}
	if err := report.RenderVigenere(&buf, lang, rep); err != nil {
		return outcome{}, err
	}
	if rep.Coincidence != nil {
		opts := report.PlotOptions{Width: report.PlotWidthFor(req.Width)}
		if err := report.PlotCoincidence(&buf, *rep.Coincidence, opts); err != nil {
			return outcome{}, err
		}
	}
	rec, cols := report.VigenereRecord(lang.Code, rep, time.Since(started))
	out := outcome{Report: buf.String(), Record: rec, Columns: cols}
	if rep.Best != nil {
		out.Plaintext = rep.Best.Plaintext
		out.KeyLength = rep.Best.KeyLength
	}
	return out, nil
}

// parseShift accepts a shift as a number in [0,25] or as its key letter.
func parseShift(raw string) (analysis.Shift, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return analysis.NewShift(n)
	}
	letters := text.Normalize(raw)
	if len(letters) != 1 {
		return 0, fmt.Errorf("shift must be a number 0-25 or a single letter, got %q", raw)
	}
	return analysis.Shift(letters[0] - 'A'), nil
}
