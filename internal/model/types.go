// Package model defines shared data structures.
package model

import "time"

// Cipher names stored with each analysis.
const (
	CipherCaesar   = "caesar"
	CipherVigenere = "vigenere"
)

// Config defines analysis settings after the config file and flags are merged.
type Config struct {
	Lang         string
	KasiskiMin   int
	KasiskiMax   int
	MaxKeyLength int
	// TargetIC overrides the language's value when positive.
	TargetIC     float64
	FoldAccents  bool
	History      bool
	Alternatives int
	FallbackMin  int
	FallbackMax  int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Lang:         "fr",
		KasiskiMin:   3,
		KasiskiMax:   20,
		MaxKeyLength: 20,
		History:      true,
		Alternatives: 3,
		FallbackMin:  2,
		FallbackMax:  7,
	}
}

// HistoryFilter defines filters for listing past analyses.
type HistoryFilter struct {
	Cipher string
	Lang   string
	Since  *time.Time
	Last   int
}

// AnalysisRecord captures one completed analysis.
type AnalysisRecord struct {
	ID        int64
	CreatedAt time.Time
	Cipher    string
	Lang      string
	Method    string
	Letters   int
	KeyLength int
	// Key is the recovered key, or the shift letter for Caesar.
	Key        string
	Manual     bool
	Conclusive bool
	DurationMs int64
	// Preview is the start of the recovered plaintext.
	Preview string
}
