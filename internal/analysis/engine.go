package analysis

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/text"
)

// Method selects the key-length estimator used by CrackVigenere.
type Method string

// Key-length estimators.
const (
	MethodKasiski Method = "kasiski"
	MethodIC      Method = "ic"
	MethodBoth    Method = "both"
)

// ParseMethod accepts "kasiski", "ic" or "both" in any case.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodKasiski:
		return MethodKasiski, nil
	case MethodIC, "coincidence":
		return MethodIC, nil
	case MethodBoth:
		return MethodBoth, nil
	default:
		return "", fmt.Errorf("%w: unknown method %q (use kasiski, ic or both)", ErrInvalidArgument, s)
	}
}

// Engine defaults.
const (
	DefaultFallbackMin = 2
	DefaultFallbackMax = 7
	DefaultMinLetters  = 20
)

// Options configures an Engine.
type Options struct {
	KasiskiMin   int
	KasiskiMax   int
	MaxKeyLength int
	// TargetIC overrides the language's theoretical IC when positive.
	TargetIC    float64
	FallbackMin int
	FallbackMax int
	// MinLetters is the shortest normalized ciphertext accepted for key estimation.
	MinLetters int
	Observer   Observer
}

// Option mutates Options.
type Option func(*Options)

// WithObserver sets the sink for intermediate values.
func WithObserver(o Observer) Option {
	return func(opts *Options) {
		opts.Observer = o
	}
}

// WithKasiskiRange sets the repeated-substring length bounds.
func WithKasiskiRange(minLen, maxLen int) Option {
	return func(opts *Options) {
		opts.KasiskiMin = minLen
		opts.KasiskiMax = maxLen
	}
}

// WithMaxKeyLength bounds the IC estimator's candidates.
func WithMaxKeyLength(n int) Option {
	return func(opts *Options) {
		opts.MaxKeyLength = n
	}
}

// WithTargetIC overrides the language's target IC.
func WithTargetIC(ic float64) Option {
	return func(opts *Options) {
		opts.TargetIC = ic
	}
}

// WithFallbackRange sets the key lengths tried when estimation is inconclusive.
func WithFallbackRange(minLen, maxLen int) Option {
	return func(opts *Options) {
		opts.FallbackMin = minLen
		opts.FallbackMax = maxLen
	}
}

// WithMinLetters sets the short-text guard for key estimation.
func WithMinLetters(n int) Option {
	return func(opts *Options) {
		opts.MinLetters = n
	}
}

// Engine binds the pure analyzers to one reference language and reports
// intermediate values to an Observer. It holds no mutable state.
type Engine struct {
	lang freq.Language
	opts Options
	obs  Observer
}

// New builds an Engine for lang.
func New(lang freq.Language, options ...Option) (*Engine, error) {
	opts := Options{
		KasiskiMin:   DefaultKasiskiMin,
		KasiskiMax:   DefaultKasiskiMax,
		MaxKeyLength: DefaultMaxKeyLength,
		FallbackMin:  DefaultFallbackMin,
		FallbackMax:  DefaultFallbackMax,
		MinLetters:   DefaultMinLetters,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	if err := checkKasiskiRange(opts.KasiskiMin, opts.KasiskiMax); err != nil {
		return nil, err
	}
	if opts.MaxKeyLength < 1 {
		return nil, fmt.Errorf("%w: maximum key length must be >= 1, got %d", ErrInvalidArgument, opts.MaxKeyLength)
	}
	if opts.TargetIC < 0 || opts.TargetIC > 1 {
		return nil, fmt.Errorf("%w: target IC must be in (0, 1], got %g", ErrInvalidArgument, opts.TargetIC)
	}
	if opts.FallbackMin < 1 || opts.FallbackMax < opts.FallbackMin {
		return nil, fmt.Errorf("%w: fallback range [%d, %d] is invalid", ErrInvalidArgument, opts.FallbackMin, opts.FallbackMax)
	}
	if opts.MinLetters < 0 {
		return nil, fmt.Errorf("%w: minimum letters must be >= 0, got %d", ErrInvalidArgument, opts.MinLetters)
	}
	return &Engine{lang: lang, opts: opts, obs: observerOrNop(opts.Observer)}, nil
}

// Language returns the reference language.
func (e *Engine) Language() freq.Language {
	return e.lang
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// TargetIC is the IC the coincidence estimator aims for.
func (e *Engine) TargetIC() float64 {
	if e.opts.TargetIC > 0 {
		return e.opts.TargetIC
	}
	return e.lang.TargetIC
}

// AnalyzeCaesar estimates the shift of raw and decrypts it.
func (e *Engine) AnalyzeCaesar(raw string) (CaesarResult, string) {
	res := AnalyzeCaesar(raw, e.lang)
	e.obs.Debug("caesar shift estimated",
		"letters", res.Letters,
		"most_frequent", string(res.MostFrequent),
		"peak", string(e.lang.Peak),
		"shift", int(res.Shift),
	)
	return res, DecryptCaesar(raw, res.Shift)
}

// KasiskiKeyLength runs the Kasiski examination on normalized ciphertext.
func (e *Engine) KasiskiKeyLength(cipherText string) (KasiskiResult, error) {
	res, err := EstimateKeyLengthKasiski(cipherText, e.opts.KasiskiMin, e.opts.KasiskiMax)
	if err != nil {
		return res, err
	}
	e.obs.Debug("kasiski distances", "count", len(res.Distances), "candidates", len(res.Votes))
	votes := 0
	for _, v := range res.Votes {
		if v.Length == res.KeyLength {
			votes = v.Count
		}
	}
	e.obs.Debug("kasiski key length", "length", res.KeyLength, "votes", votes, "found", res.Found)
	return res, nil
}

// CoincidenceKeyLength runs the IC estimator on normalized ciphertext.
func (e *Engine) CoincidenceKeyLength(cipherText string) (CoincidenceResult, error) {
	res, err := EstimateKeyLengthIC(cipherText, e.opts.MaxKeyLength, e.TargetIC())
	if err != nil {
		return res, err
	}
	for _, c := range res.Candidates {
		e.obs.Debug("coincidence candidate", "length", c.Length, "avg_ic", c.AvgIC)
	}
	e.obs.Debug("coincidence key length", "length", res.KeyLength, "target_ic", res.TargetIC)
	return res, nil
}

// KeyCandidate is a recovered key and the decryption it produces.
type KeyCandidate struct {
	KeyLength int
	Key       string
	Columns   []ColumnScore
	Plaintext string
}

// RecoverKey recovers the key of the given length and decrypts with it.
func (e *Engine) RecoverKey(cipherText string, keyLength int) (KeyCandidate, error) {
	cols, err := RecoverKeyColumns(cipherText, keyLength, e.lang.Profile)
	if err != nil {
		return KeyCandidate{}, err
	}
	for _, c := range cols {
		e.obs.Debug("column scored", "key_length", keyLength, "column", c.Column, "letter", string(c.Letter), "chi2", c.ChiSquared)
	}
	key := keyFromColumns(cols)
	plain, err := DecryptVigenere(cipherText, key)
	if err != nil {
		return KeyCandidate{}, err
	}
	e.obs.Debug("key recovered", "key_length", keyLength, "key", key)
	return KeyCandidate{KeyLength: keyLength, Key: key, Columns: cols, Plaintext: plain}, nil
}

// DecryptWithKey decrypts raw with a caller-supplied key.
func (e *Engine) DecryptWithKey(raw, key string) (KeyCandidate, error) {
	plain, err := DecryptVigenere(raw, key)
	if err != nil {
		return KeyCandidate{}, err
	}
	k := text.Normalize(key)
	return KeyCandidate{KeyLength: len(k), Key: k, Plaintext: plain}, nil
}

// VigenereReport collects everything CrackVigenere found. Kasiski and
// Coincidence are set for the estimators that ran. Best is nil when the
// estimate was inconclusive, in which case Fallback holds one candidate per
// length of the fallback range.
type VigenereReport struct {
	Method      Method
	Letters     int
	Kasiski     *KasiskiResult
	Coincidence *CoincidenceResult
	KeyLength   int
	Best        *KeyCandidate
	Fallback    []KeyCandidate
}

// CrackVigenere estimates the key length of raw with the chosen method,
// recovers the key and decrypts. With MethodBoth the two estimators run
// concurrently; Kasiski wins when conclusive, IC otherwise. Disagreement is
// reported, not reconciled.
func (e *Engine) CrackVigenere(ctx context.Context, raw string, method Method) (VigenereReport, error) {
	cipherText := text.Normalize(raw)
	report := VigenereReport{Method: method, Letters: len(cipherText)}
	if len(cipherText) < e.opts.MinLetters {
		return report, fmt.Errorf("%w: text too short for reliable analysis (%d letters, need %d)", ErrInvalidArgument, len(cipherText), e.opts.MinLetters)
	}

	runKasiski := method == MethodKasiski || method == MethodBoth
	runIC := method == MethodIC || method == MethodBoth
	if !runKasiski && !runIC {
		return report, fmt.Errorf("%w: unknown method %q", ErrInvalidArgument, method)
	}

	g, gctx := errgroup.WithContext(ctx)
	if runKasiski {
		g.Go(func() error {
			res, err := e.KasiskiKeyLength(cipherText)
			if err != nil {
				return err
			}
			report.Kasiski = &res
			return gctx.Err()
		})
	}
	if runIC {
		g.Go(func() error {
			res, err := e.CoincidenceKeyLength(cipherText)
			if err != nil {
				return err
			}
			report.Coincidence = &res
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	switch {
	case report.Kasiski != nil && report.Kasiski.Found:
		report.KeyLength = report.Kasiski.KeyLength
	case report.Coincidence != nil:
		report.KeyLength = report.Coincidence.KeyLength
	}
	if report.Kasiski != nil && report.Coincidence != nil && report.Kasiski.Found &&
		report.Kasiski.KeyLength != report.Coincidence.KeyLength {
		e.obs.Debug("estimators disagree", "kasiski", report.Kasiski.KeyLength, "ic", report.Coincidence.KeyLength)
	}

	if report.KeyLength > 1 {
		best, err := e.RecoverKey(cipherText, report.KeyLength)
		if err != nil {
			return report, err
		}
		report.Best = &best
		return report, nil
	}

	e.obs.Debug("key length inconclusive, trying fallback lengths", "min", e.opts.FallbackMin, "max", e.opts.FallbackMax)
	fallback, err := e.recoverRange(ctx, cipherText, e.opts.FallbackMin, e.opts.FallbackMax)
	if err != nil {
		return report, err
	}
	report.Fallback = fallback
	return report, nil
}

func (e *Engine) recoverRange(ctx context.Context, cipherText string, minLen, maxLen int) ([]KeyCandidate, error) {
	out := make([]KeyCandidate, maxLen-minLen+1)
	g, gctx := errgroup.WithContext(ctx)
	for length := minLen; length <= maxLen; length++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cand, err := e.RecoverKey(cipherText, length)
			if err != nil {
				return err
			}
			out[length-minLen] = cand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
