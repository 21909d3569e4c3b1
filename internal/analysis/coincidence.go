package analysis

import (
	"fmt"
	"math"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/text"
)

// DefaultMaxKeyLength bounds the candidate key lengths tried by the IC estimator.
const DefaultMaxKeyLength = 20

// IndexOfCoincidence is Σ f(f-1) / n(n-1) over the letter counts of s.
// Texts of fewer than two letters yield 0.
func IndexOfCoincidence(s string) float64 {
	counts := freq.Count(s)
	n := counts.Total
	if n <= 1 {
		return 0
	}
	var sum float64
	for _, f := range counts.Letters {
		sum += float64(f) * float64(f-1)
	}
	return sum / (float64(n) * float64(n-1))
}

// CandidateIC is the average column IC obtained for one candidate key length.
type CandidateIC struct {
	Length int
	AvgIC  float64
}

// CoincidenceResult is the outcome of the IC estimator. KeyLength is always set.
type CoincidenceResult struct {
	Candidates []CandidateIC
	KeyLength  int
	TargetIC   float64
}

// EstimateKeyLengthIC tries every length K in 1..min(maxKeyLen, len/2), and
// keeps the one whose average column IC is closest to targetIC (smallest K on
// ties). Columns shorter than two letters are left out of the average. When
// no candidate qualifies the result is 1.
func EstimateKeyLengthIC(cipherText string, maxKeyLen int, targetIC float64) (CoincidenceResult, error) {
	if maxKeyLen < 1 {
		return CoincidenceResult{}, fmt.Errorf("%w: maximum key length must be >= 1, got %d", ErrInvalidArgument, maxKeyLen)
	}
	res := CoincidenceResult{KeyLength: 1, TargetIC: targetIC}
	upper := maxKeyLen
	if half := len(cipherText) / 2; half < upper {
		upper = half
	}
	bestDiff := math.Inf(1)
	for k := 1; k <= upper; k++ {
		var sum float64
		var n int
		for _, col := range text.Columns(cipherText, k) {
			if len(col) <= 1 {
				continue
			}
			sum += IndexOfCoincidence(col)
			n++
		}
		if n == 0 {
			continue
		}
		avg := sum / float64(n)
		res.Candidates = append(res.Candidates, CandidateIC{Length: k, AvgIC: avg})
		if diff := math.Abs(avg - targetIC); diff < bestDiff {
			bestDiff = diff
			res.KeyLength = k
		}
	}
	return res, nil
}
