package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/text"
)

// ChiSquaredScores decrypts column with each of the 26 shifts and returns the
// chi-squared distance of every result to profile, indexed by shift.
// Letters with zero expected count are skipped.
func ChiSquaredScores(column string, profile freq.Profile) [freq.AlphabetSize]float64 {
	var scores [freq.AlphabetSize]float64
	n := float64(len(column))
	for k := 0; k < freq.AlphabetSize; k++ {
		counts := freq.Count(DecryptCaesar(column, Shift(k)))
		var chi2 float64
		for c := 0; c < freq.AlphabetSize; c++ {
			expected := profile[c] * n
			if expected <= 0 {
				continue
			}
			diff := float64(counts.Letters[c]) - expected
			chi2 += diff * diff / expected
		}
		scores[k] = chi2
	}
	return scores
}

// ColumnScore is the key letter chosen for one column and its chi-squared value.
type ColumnScore struct {
	Column     int
	Letter     byte
	ChiSquared float64
	Length     int
}

// RecoverKeyLetter returns the key letter whose Caesar decryption of column
// best fits profile (smallest chi-squared, smaller shift on ties). An empty
// column yields 'A'.
func RecoverKeyLetter(column string, profile freq.Profile) byte {
	letter, _ := bestShift(column, profile)
	return letter
}

func bestShift(column string, profile freq.Profile) (byte, float64) {
	if len(column) == 0 {
		return 'A', 0
	}
	scores := ChiSquaredScores(column, profile)
	best := 0
	bestScore := math.Inf(1)
	for k, s := range scores {
		if s < bestScore {
			bestScore = s
			best = k
		}
	}
	return Shift(best).Letter(), bestScore
}

// RecoverKeyColumns splits cipherText into keyLength columns and recovers
// each column's key letter independently.
func RecoverKeyColumns(cipherText string, keyLength int, profile freq.Profile) ([]ColumnScore, error) {
	if keyLength < 1 {
		return nil, fmt.Errorf("%w: key length must be >= 1, got %d", ErrInvalidArgument, keyLength)
	}
	cols := text.Columns(cipherText, keyLength)
	out := make([]ColumnScore, len(cols))
	for i, col := range cols {
		letter, chi2 := bestShift(col, profile)
		out[i] = ColumnScore{Column: i, Letter: letter, ChiSquared: chi2, Length: len(col)}
	}
	return out, nil
}

// RecoverKey returns the key of length keyLength that best explains cipherText.
func RecoverKey(cipherText string, keyLength int, profile freq.Profile) (string, error) {
	cols, err := RecoverKeyColumns(cipherText, keyLength, profile)
	if err != nil {
		return "", err
	}
	return keyFromColumns(cols), nil
}

func keyFromColumns(cols []ColumnScore) string {
	var b strings.Builder
	b.Grow(len(cols))
	for _, c := range cols {
		b.WriteByte(c.Letter)
	}
	return b.String()
}
