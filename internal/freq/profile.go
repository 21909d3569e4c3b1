// Package freq models letter frequencies: reference profiles per language
// and the observed distribution of a text.
package freq

import (
	"fmt"
	"math"
)

// AlphabetSize is the number of letters handled by the analyzers.
const AlphabetSize = 26

// Profile maps each letter A-Z (by index) to a relative frequency.
type Profile [AlphabetSize]float64

// Counts holds absolute letter counts of a text.
type Counts struct {
	Letters [AlphabetSize]int
	Total   int
}

// Count tallies the ASCII letters of s, folding lower case onto upper case.
func Count(s string) Counts {
	var c Counts
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			c.Letters[ch-'A']++
		case ch >= 'a' && ch <= 'z':
			c.Letters[ch-'a']++
		default:
			continue
		}
		c.Total++
	}
	return c
}

// Profile returns the observed relative frequencies. The second result is
// false for an empty text, whose profile is undefined.
func (c Counts) Profile() (Profile, bool) {
	var p Profile
	if c.Total == 0 {
		return p, false
	}
	for i, n := range c.Letters {
		p[i] = float64(n) / float64(c.Total)
	}
	return p, true
}

// MostFrequent returns the letter with the strictly highest count, the first
// one in A-Z order on ties. The second result is false when nothing was counted.
func (c Counts) MostFrequent() (byte, bool) {
	if c.Total == 0 {
		return 'A', false
	}
	best := 0
	for i := 1; i < AlphabetSize; i++ {
		if c.Letters[i] > c.Letters[best] {
			best = i
		}
	}
	return byte('A' + best), true
}

// MostFrequent returns the letter with the highest frequency, first in A-Z order on ties.
func (p Profile) MostFrequent() byte {
	best := 0
	for i := 1; i < AlphabetSize; i++ {
		if p[i] > p[best] {
			best = i
		}
	}
	return byte('A' + best)
}

// Sum returns the total of all frequencies.
func (p Profile) Sum() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum
}

// Normalized rescales p so that it sums to 1. A zero profile is returned unchanged.
func (p Profile) Normalized() Profile {
	sum := p.Sum()
	if sum <= 0 {
		return p
	}
	var out Profile
	for i, v := range p {
		out[i] = v / sum
	}
	return out
}

// ExpectedIC is the index of coincidence of a text that follows p exactly.
func (p Profile) ExpectedIC() float64 {
	var ic float64
	for _, v := range p.Normalized() {
		ic += v * v
	}
	return ic
}

// Validate rejects negative or non-finite entries and all-zero profiles.
func (p Profile) Validate() error {
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("frequency for %c is not finite", 'A'+i)
		}
		if v < 0 {
			return fmt.Errorf("frequency for %c is negative: %g", 'A'+i, v)
		}
	}
	if p.Sum() <= 0 {
		return fmt.Errorf("profile has no positive frequency")
	}
	return nil
}

// Of returns the frequency of letter ch (either case). Non-letters yield 0.
func (p Profile) Of(ch byte) float64 {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return p[ch-'A']
	case ch >= 'a' && ch <= 'z':
		return p[ch-'a']
	default:
		return 0
	}
}
