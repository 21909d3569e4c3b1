package analysis

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/text"
)

// Shift is a Caesar rotation amount. Arithmetic on shifts is modulo 26.
type Shift int

// NewShift validates n as a shift in [0, 26).
func NewShift(n int) (Shift, error) {
	if n < 0 || n >= freq.AlphabetSize {
		return 0, fmt.Errorf("%w: shift must be in [0, %d), got %d", ErrInvalidArgument, freq.AlphabetSize, n)
	}
	return Shift(n), nil
}

func (s Shift) mod() int {
	return ((int(s) % freq.AlphabetSize) + freq.AlphabetSize) % freq.AlphabetSize
}

// Add returns (s + n) mod 26.
func (s Shift) Add(n int) Shift {
	return Shift((s.mod() + n%freq.AlphabetSize + freq.AlphabetSize) % freq.AlphabetSize)
}

// Letter returns the key letter that encodes this shift (0 is 'A').
func (s Shift) Letter() byte {
	return byte('A' + s.mod())
}

// rotate moves an ASCII letter by delta inside its own case; anything else is returned as is.
func rotate(ch byte, delta int) byte {
	var base byte
	switch {
	case ch >= 'A' && ch <= 'Z':
		base = 'A'
	case ch >= 'a' && ch <= 'z':
		base = 'a'
	default:
		return ch
	}
	idx := (int(ch-base) + delta) % freq.AlphabetSize
	if idx < 0 {
		idx += freq.AlphabetSize
	}
	return base + byte(idx)
}

func rotateAll(s string, delta int) string {
	out := []byte(s)
	for i := range out {
		out[i] = rotate(out[i], delta)
	}
	return string(out)
}

// EncryptCaesar rotates every letter of raw forward by shift, keeping case and non-letters in place.
func EncryptCaesar(raw string, shift Shift) string {
	return rotateAll(raw, shift.mod())
}

// DecryptCaesar rotates every letter of raw back by shift, keeping case and non-letters in place.
func DecryptCaesar(raw string, shift Shift) string {
	return rotateAll(raw, -shift.mod())
}

// EstimateShift assumes the most frequent ciphertext letter stands for the
// language's peak letter. Empty text yields shift 0.
func EstimateShift(cipherText string, lang freq.Language) Shift {
	observed, ok := freq.Count(cipherText).MostFrequent()
	if !ok {
		return 0
	}
	return Shift(0).Add(int(observed) - int(lang.Peak))
}

// CaesarResult is the outcome of a Caesar analysis.
type CaesarResult struct {
	Shift        Shift
	Observed     freq.Profile
	HasObserved  bool
	MostFrequent byte
	Letters      int
}

// AnalyzeCaesar normalizes raw, estimates its shift and reports the observed profile.
func AnalyzeCaesar(raw string, lang freq.Language) CaesarResult {
	normalized := text.Normalize(raw)
	counts := freq.Count(normalized)
	observed, ok := counts.Profile()
	top, _ := counts.MostFrequent()
	return CaesarResult{
		Shift:        EstimateShift(normalized, lang),
		Observed:     observed,
		HasObserved:  ok,
		MostFrequent: top,
		Letters:      counts.Total,
	}
}

// Alternative is a candidate decryption under a given shift.
type Alternative struct {
	Shift     Shift
	Plaintext string
}

// Alternatives decrypts raw with the n shifts following shift: (shift+i) mod 26 for i in 1..n.
func Alternatives(raw string, shift Shift, n int) []Alternative {
	if n <= 0 {
		return nil
	}
	if n > freq.AlphabetSize-1 {
		n = freq.AlphabetSize - 1
	}
	out := make([]Alternative, 0, n)
	for i := 1; i <= n; i++ {
		s := shift.Add(i)
		out = append(out, Alternative{Shift: s, Plaintext: DecryptCaesar(raw, s)})
	}
	return out
}

// ShiftScore pairs a shift with its chi-squared distance to the reference profile.
type ShiftScore struct {
	Shift      Shift
	ChiSquared float64
}

// RankShifts orders all 26 shifts of cipherText by chi-squared, best first,
// smaller shift first on ties.
func RankShifts(cipherText string, profile freq.Profile) []ShiftScore {
	scores := ChiSquaredScores(text.Normalize(cipherText), profile)
	out := make([]ShiftScore, freq.AlphabetSize)
	for i, s := range scores {
		out[i] = ShiftScore{Shift: Shift(i), ChiSquared: s}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChiSquared < out[j].ChiSquared
	})
	return out
}
