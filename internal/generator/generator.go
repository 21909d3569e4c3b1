// Package generator builds synthetic sample text for trying the analyzers.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/wordfreq"
)

const (
	minWordLen = 2
	maxWordLen = 8
)

// Options controls how letters are dressed up as prose.
type Options struct {
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// DefaultOptions capitalizes and punctuates a few words.
func DefaultOptions() Options {
	return Options{CapsPct: 0.1, PunctPct: 0.1, PunctSet: []rune{',', '.', ';', '!', '?'}}
}

// Generator produces randomized sample text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator. A zero seed uses the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Letters draws n lowercase letters independently, weighted by p.
func (g *Generator) Letters(p freq.Profile, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("letter count must not be negative")
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	cumulative := cumulativeWeights(p[:])
	total := cumulative[len(cumulative)-1]

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + pick(g.rnd, cumulative, total)))
	}
	return b.String(), nil
}

// Text draws n letters from p and groups them into pseudo-words.
func (g *Generator) Text(p freq.Profile, n int, opts Options) (string, error) {
	letters, err := g.Letters(p, n)
	if err != nil {
		return "", err
	}
	words := make([]string, 0, n/minWordLen+1)
	for len(letters) > 0 {
		size := min(minWordLen+g.rnd.Intn(maxWordLen-minWordLen+1), len(letters))
		words = append(words, g.dress(letters[:size], opts))
		letters = letters[size:]
	}
	return strings.Join(words, " "), nil
}

// Words selects count words weighted by their dataset frequency.
func (g *Generator) Words(words []wordfreq.Word, count int, opts Options) ([]string, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	weights := make([]float64, len(words))
	for i, w := range words {
		weights[i] = w.Weight
	}
	cumulative := cumulativeWeights(weights)
	total := cumulative[len(cumulative)-1]
	if total <= 0 {
		return nil, fmt.Errorf("word weights must be positive")
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[pick(g.rnd, cumulative, total)].Text
		result = append(result, g.dress(word, opts))
	}
	return result, nil
}

func (g *Generator) dress(word string, opts Options) string {
	word = applyCaps(g.rnd, word, opts.CapsPct)
	return applyPunct(g.rnd, word, opts.PunctPct, opts.PunctSet)
}

func cumulativeWeights(weights []float64) []float64 {
	out := make([]float64, len(weights))
	acc := 0.0
	for i, w := range weights {
		if w > 0 {
			acc += w
		}
		out[i] = acc
	}
	return out
}

// pick returns the first index whose cumulative weight reaches a uniform draw.
func pick(rnd *rand.Rand, cumulative []float64, total float64) int {
	r := rnd.Float64() * total
	for i, acc := range cumulative {
		if r < acc {
			return i
		}
	}
	for i := len(cumulative) - 1; i > 0; i-- {
		if cumulative[i] > cumulative[i-1] {
			return i
		}
	}
	return 0
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	return word + string(punctSet[rnd.Intn(len(punctSet))])
}
