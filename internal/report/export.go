package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
)

// Format selects the output encoding of the analysis commands.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text, json or yaml)", s)
}

// CaesarDoc is the machine-readable form of a Caesar analysis.
type CaesarDoc struct {
	Cipher       string             `json:"cipher" yaml:"cipher"`
	Lang         string             `json:"lang" yaml:"lang"`
	Letters      int                `json:"letters" yaml:"letters"`
	MostFrequent string             `json:"most_frequent,omitempty" yaml:"most_frequent,omitempty"`
	Shift        int                `json:"shift" yaml:"shift"`
	Key          string             `json:"key" yaml:"key"`
	Plaintext    string             `json:"plaintext" yaml:"plaintext"`
	Observed     map[string]float64 `json:"observed,omitempty" yaml:"observed,omitempty"`
	Alternatives []AlternativeDoc   `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Ranking      []ShiftScoreDoc    `json:"ranking,omitempty" yaml:"ranking,omitempty"`
}

// AlternativeDoc is one neighbouring shift.
type AlternativeDoc struct {
	Shift     int    `json:"shift" yaml:"shift"`
	Plaintext string `json:"plaintext" yaml:"plaintext"`
}

// ShiftScoreDoc is one ranked shift.
type ShiftScoreDoc struct {
	Shift      int     `json:"shift" yaml:"shift"`
	ChiSquared float64 `json:"chi2" yaml:"chi2"`
}

// VigenereDoc is the machine-readable form of a Vigenère analysis.
type VigenereDoc struct {
	Cipher      string          `json:"cipher" yaml:"cipher"`
	Lang        string          `json:"lang" yaml:"lang"`
	Method      string          `json:"method" yaml:"method"`
	Letters     int             `json:"letters" yaml:"letters"`
	Kasiski     *KasiskiDoc     `json:"kasiski,omitempty" yaml:"kasiski,omitempty"`
	Coincidence *CoincidenceDoc `json:"coincidence,omitempty" yaml:"coincidence,omitempty"`
	KeyLength   int             `json:"key_length" yaml:"key_length"`
	Key         string          `json:"key,omitempty" yaml:"key,omitempty"`
	Plaintext   string          `json:"plaintext,omitempty" yaml:"plaintext,omitempty"`
	Columns     []ColumnDoc     `json:"columns,omitempty" yaml:"columns,omitempty"`
	Fallback    []CandidateDoc  `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// KasiskiDoc summarizes a Kasiski examination.
type KasiskiDoc struct {
	Found     bool        `json:"found" yaml:"found"`
	KeyLength int         `json:"key_length" yaml:"key_length"`
	Distances int         `json:"distances" yaml:"distances"`
	Votes     map[int]int `json:"votes,omitempty" yaml:"votes,omitempty"`
}

// CoincidenceDoc summarizes the IC estimator.
type CoincidenceDoc struct {
	KeyLength  int             `json:"key_length" yaml:"key_length"`
	TargetIC   float64         `json:"target_ic" yaml:"target_ic"`
	Candidates map[int]float64 `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// ColumnDoc is one recovered key letter.
type ColumnDoc struct {
	Column     int     `json:"column" yaml:"column"`
	Letter     string  `json:"letter" yaml:"letter"`
	ChiSquared float64 `json:"chi2" yaml:"chi2"`
}

// CandidateDoc is one fallback key.
type CandidateDoc struct {
	KeyLength int    `json:"key_length" yaml:"key_length"`
	Key       string `json:"key" yaml:"key"`
	Plaintext string `json:"plaintext" yaml:"plaintext"`
}

// NewCaesarDoc converts a CaesarView.
func NewCaesarDoc(v CaesarView) CaesarDoc {
	doc := CaesarDoc{
		Cipher:    "caesar",
		Lang:      v.Lang.Code,
		Letters:   v.Result.Letters,
		Shift:     int(v.Result.Shift),
		Key:       string(v.Result.Shift.Letter()),
		Plaintext: v.Plaintext,
	}
	if v.Result.HasObserved {
		doc.MostFrequent = string(v.Result.MostFrequent)
		doc.Observed = make(map[string]float64, freq.AlphabetSize)
		for i, p := range v.Result.Observed {
			if p > 0 {
				doc.Observed[string(rune('A'+i))] = p
			}
		}
	}
	for _, a := range v.Alternatives {
		doc.Alternatives = append(doc.Alternatives, AlternativeDoc{Shift: int(a.Shift), Plaintext: a.Plaintext})
	}
	for _, s := range v.Ranked {
		doc.Ranking = append(doc.Ranking, ShiftScoreDoc{Shift: int(s.Shift), ChiSquared: s.ChiSquared})
	}
	return doc
}

// NewVigenereDoc converts a VigenereReport.
func NewVigenereDoc(lang string, rep analysis.VigenereReport) VigenereDoc {
	doc := VigenereDoc{
		Cipher:    "vigenere",
		Lang:      lang,
		Method:    string(rep.Method),
		Letters:   rep.Letters,
		KeyLength: rep.KeyLength,
	}
	if k := rep.Kasiski; k != nil {
		kd := &KasiskiDoc{Found: k.Found, KeyLength: k.KeyLength, Distances: len(k.Distances)}
		if len(k.Votes) > 0 {
			kd.Votes = make(map[int]int, len(k.Votes))
			for _, v := range k.Votes {
				kd.Votes[v.Length] = v.Count
			}
		}
		doc.Kasiski = kd
	}
	if c := rep.Coincidence; c != nil {
		cd := &CoincidenceDoc{KeyLength: c.KeyLength, TargetIC: c.TargetIC}
		if len(c.Candidates) > 0 {
			cd.Candidates = make(map[int]float64, len(c.Candidates))
			for _, cand := range c.Candidates {
				cd.Candidates[cand.Length] = cand.AvgIC
			}
		}
		doc.Coincidence = cd
	}
	if rep.Best != nil {
		doc.Key = rep.Best.Key
		doc.Plaintext = rep.Best.Plaintext
		doc.Columns = columnDocs(rep.Best.Columns)
	}
	for _, c := range rep.Fallback {
		doc.Fallback = append(doc.Fallback, CandidateDoc{KeyLength: c.KeyLength, Key: c.Key, Plaintext: c.Plaintext})
	}
	return doc
}

// NewKeyDoc converts a decryption with a known key.
func NewKeyDoc(lang, method string, letters int, cand analysis.KeyCandidate) VigenereDoc {
	return VigenereDoc{
		Cipher:    "vigenere",
		Lang:      lang,
		Method:    method,
		Letters:   letters,
		KeyLength: cand.KeyLength,
		Key:       cand.Key,
		Plaintext: cand.Plaintext,
		Columns:   columnDocs(cand.Columns),
	}
}

func columnDocs(cols []analysis.ColumnScore) []ColumnDoc {
	out := make([]ColumnDoc, 0, len(cols))
	for _, c := range cols {
		out = append(out, ColumnDoc{Column: c.Column, Letter: string(c.Letter), ChiSquared: c.ChiSquared})
	}
	return out
}

// Export writes doc as JSON or YAML.
func Export(w io.Writer, format Format, doc any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("cannot export as %q", format)
}
