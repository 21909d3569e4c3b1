package report

import (
	"time"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/store"
)

// CaesarRecord builds the history entry of a Caesar analysis.
func CaesarRecord(lang string, res analysis.CaesarResult, plain string, manual bool, elapsed time.Duration) model.AnalysisRecord {
	method := "peak"
	if manual {
		method = "shift"
	}
	return model.AnalysisRecord{
		CreatedAt:  time.Now(),
		Cipher:     model.CipherCaesar,
		Lang:       lang,
		Method:     method,
		Letters:    res.Letters,
		KeyLength:  1,
		Key:        string(res.Shift.Letter()),
		Manual:     manual,
		Conclusive: res.Letters > 0,
		DurationMs: elapsed.Milliseconds(),
		Preview:    Truncate(plain, PreviewLength),
	}
}

// VigenereRecord builds the history entry of a Vigenère analysis. Fallback
// results store the shortest candidate and are marked inconclusive.
func VigenereRecord(lang string, rep analysis.VigenereReport, elapsed time.Duration) (model.AnalysisRecord, []store.ColumnRecord) {
	rec := model.AnalysisRecord{
		CreatedAt:  time.Now(),
		Cipher:     model.CipherVigenere,
		Lang:       lang,
		Method:     string(rep.Method),
		Letters:    rep.Letters,
		KeyLength:  rep.KeyLength,
		DurationMs: elapsed.Milliseconds(),
	}
	cand := rep.Best
	if cand != nil {
		rec.Conclusive = true
	} else if len(rep.Fallback) > 0 {
		cand = &rep.Fallback[0]
	}
	if cand == nil {
		return rec, nil
	}
	rec.Key = cand.Key
	rec.KeyLength = cand.KeyLength
	rec.Preview = Truncate(cand.Plaintext, PreviewLength)
	return rec, ColumnRecords(cand.Columns)
}

// ManualKeyRecord builds the history entry of a decryption with a given key.
func ManualKeyRecord(lang string, cand analysis.KeyCandidate, letters int, elapsed time.Duration) model.AnalysisRecord {
	return model.AnalysisRecord{
		CreatedAt:  time.Now(),
		Cipher:     model.CipherVigenere,
		Lang:       lang,
		Method:     "key",
		Letters:    letters,
		KeyLength:  cand.KeyLength,
		Key:        cand.Key,
		Manual:     true,
		Conclusive: true,
		DurationMs: elapsed.Milliseconds(),
		Preview:    Truncate(cand.Plaintext, PreviewLength),
	}
}

// ColumnRecords converts column scores for storage.
func ColumnRecords(cols []analysis.ColumnScore) []store.ColumnRecord {
	if len(cols) == 0 {
		return nil
	}
	out := make([]store.ColumnRecord, len(cols))
	for i, c := range cols {
		out[i] = store.ColumnRecord{Column: c.Column, Letter: string(c.Letter), ChiSquared: c.ChiSquared, Length: c.Length}
	}
	return out
}
