package analysis

import "fmt"

// Default substring bounds for the Kasiski examination.
const (
	DefaultKasiskiMin = 3
	DefaultKasiskiMax = 20
)

// RepeatedDistances scans every substring of length minLen..min(maxLen, len/2)
// and, each time a substring reappears, records the distance back to its
// previous occurrence. Distances from all lengths are pooled in scan order.
func RepeatedDistances(cipherText string, minLen, maxLen int) ([]int, error) {
	if err := checkKasiskiRange(minLen, maxLen); err != nil {
		return nil, err
	}
	upper := maxLen
	if half := len(cipherText) / 2; half < upper {
		upper = half
	}
	var distances []int
	for length := minLen; length <= upper; length++ {
		last := make(map[string]int)
		for i := 0; i+length <= len(cipherText); i++ {
			seq := cipherText[i : i+length]
			if prev, ok := last[seq]; ok {
				if d := i - prev; d > 0 {
					distances = append(distances, d)
				}
			}
			last[seq] = i
		}
	}
	return distances, nil
}

// GCDVote is one candidate key length and the number of distance pairs whose
// greatest common divisor equals it.
type GCDVote struct {
	Length int
	Count  int
}

// KasiskiResult is the outcome of a Kasiski examination. Found is false when
// no repeated sequence or no divisor above 1 exists: an inconclusive result,
// not an error.
type KasiskiResult struct {
	Distances []int
	Votes     []GCDVote
	KeyLength int
	Found     bool
}

// EstimateKeyLengthKasiski returns the most common pairwise GCD (> 1) of the
// repeat distances, the first one encountered on ties.
func EstimateKeyLengthKasiski(cipherText string, minLen, maxLen int) (KasiskiResult, error) {
	distances, err := RepeatedDistances(cipherText, minLen, maxLen)
	if err != nil {
		return KasiskiResult{}, err
	}
	res := KasiskiResult{Distances: distances}
	if len(distances) == 0 {
		return res, nil
	}

	index := make(map[int]int)
	for i := 0; i < len(distances); i++ {
		for j := i + 1; j < len(distances); j++ {
			g := gcd(distances[i], distances[j])
			if g <= 1 {
				continue
			}
			pos, ok := index[g]
			if !ok {
				pos = len(res.Votes)
				index[g] = pos
				res.Votes = append(res.Votes, GCDVote{Length: g})
			}
			res.Votes[pos].Count++
		}
	}
	if len(res.Votes) == 0 {
		return res, nil
	}

	best := 0
	for i := 1; i < len(res.Votes); i++ {
		if res.Votes[i].Count > res.Votes[best].Count {
			best = i
		}
	}
	res.KeyLength = res.Votes[best].Length
	res.Found = true
	return res, nil
}

func checkKasiskiRange(minLen, maxLen int) error {
	if minLen < 1 {
		return fmt.Errorf("%w: minimum sequence length must be >= 1, got %d", ErrInvalidArgument, minLen)
	}
	if maxLen < minLen {
		return fmt.Errorf("%w: maximum sequence length %d is below minimum %d", ErrInvalidArgument, maxLen, minLen)
	}
	return nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
