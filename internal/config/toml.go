// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis AnalysisConfig               `toml:"analysis"`
	Profiles map[string]freq.ProfileTable `toml:"profiles"`
}

// AnalysisConfig maps analysis-related settings.
type AnalysisConfig struct {
	Lang         *string  `toml:"lang"`
	KasiskiMin   *int     `toml:"kasiski-min"`
	KasiskiMax   *int     `toml:"kasiski-max"`
	MaxKeyLength *int     `toml:"max-key"`
	TargetIC     *float64 `toml:"target-ic"`
	FoldAccents  *bool    `toml:"fold-accents"`
	History      *bool    `toml:"history"`
	Alternatives *int     `toml:"alternatives"`
	FallbackMin  *int     `toml:"fallback-min"`
	FallbackMax  *int     `toml:"fallback-max"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Merge copies every value set in the file onto cfg.
func (a AnalysisConfig) Merge(cfg model.Config) model.Config {
	setString(&cfg.Lang, a.Lang)
	setInt(&cfg.KasiskiMin, a.KasiskiMin)
	setInt(&cfg.KasiskiMax, a.KasiskiMax)
	setInt(&cfg.MaxKeyLength, a.MaxKeyLength)
	if a.TargetIC != nil {
		cfg.TargetIC = *a.TargetIC
	}
	setBool(&cfg.FoldAccents, a.FoldAccents)
	setBool(&cfg.History, a.History)
	setInt(&cfg.Alternatives, a.Alternatives)
	setInt(&cfg.FallbackMin, a.FallbackMin)
	setInt(&cfg.FallbackMax, a.FallbackMax)
	return cfg
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setBool(target, value *bool) {
	if value != nil {
		*target = *value
	}
}

// Validate checks merged settings. Flag names are used in messages since
// flags and config keys share them.
func Validate(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.KasiskiMin < 1 {
		return fmt.Errorf("--kasiski-min must be > 0")
	}
	if cfg.KasiskiMax < cfg.KasiskiMin {
		return fmt.Errorf("--kasiski-max must be >= --kasiski-min")
	}
	if cfg.MaxKeyLength < 1 {
		return fmt.Errorf("--max-key must be > 0")
	}
	if cfg.TargetIC < 0 || cfg.TargetIC > 1 {
		return fmt.Errorf("--target-ic must be between 0 and 1")
	}
	if cfg.Alternatives < 0 || cfg.Alternatives > 25 {
		return fmt.Errorf("--alternatives must be between 0 and 25")
	}
	if cfg.FallbackMin < 1 || cfg.FallbackMax < cfg.FallbackMin {
		return fmt.Errorf("fallback-min must be > 0 and fallback-max >= fallback-min")
	}
	return nil
}

// Languages gathers the user profiles: files in dir first, then inline
// [profiles.<code>] tables, which win on conflicts.
func Languages(fileCfg FileConfig, dir string) (map[string]freq.Language, error) {
	langs, err := freq.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for code, tbl := range fileCfg.Profiles {
		lang, err := tbl.Language(code)
		if err != nil {
			return nil, fmt.Errorf("invalid profile %q in config: %w", code, err)
		}
		langs[code] = lang
	}
	return langs, nil
}

// WriteSettings encodes cfg as an [analysis] table that LoadConfig reads
// back unchanged. A zero TargetIC is left out since it means the language's own.
func WriteSettings(w io.Writer, cfg model.Config) error {
	a := AnalysisConfig{
		Lang:         &cfg.Lang,
		KasiskiMin:   &cfg.KasiskiMin,
		KasiskiMax:   &cfg.KasiskiMax,
		MaxKeyLength: &cfg.MaxKeyLength,
		FoldAccents:  &cfg.FoldAccents,
		History:      &cfg.History,
		Alternatives: &cfg.Alternatives,
		FallbackMin:  &cfg.FallbackMin,
		FallbackMax:  &cfg.FallbackMax,
	}
	if cfg.TargetIC > 0 {
		a.TargetIC = &cfg.TargetIC
	}
	doc := struct {
		Analysis AnalysisConfig `toml:"analysis"`
	}{Analysis: a}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}

// DefaultTemplate is written by `chiffre config` when no file exists.
func DefaultTemplate() string {
	d := model.DefaultConfig()
	return fmt.Sprintf(`# chiffre configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# lang = %q              # Reference language (built-in: fr, en)
# kasiski-min = %d         # Shortest repeated sequence for Kasiski
# kasiski-max = %d        # Longest repeated sequence for Kasiski
# max-key = %d            # Longest key length tried by the IC estimator
# target-ic = 0.074        # Overrides the language's index of coincidence
# fold-accents = false     # Strip accents before analysis (é -> e)
# history = %t           # Record analyses in the history database
# alternatives = %d        # Neighbouring shifts shown after Caesar analysis
# fallback-min = %d        # Key lengths tried when estimation is inconclusive
# fallback-max = %d

# Extra languages can be declared inline or as files in the profiles directory.
# [profiles.de]
# name = "German"
# peak = "E"
# freq = { E = 0.174, N = 0.098, I = 0.076, S = 0.073, R = 0.070 }
`,
		d.Lang,
		d.KasiskiMin,
		d.KasiskiMax,
		d.MaxKeyLength,
		d.History,
		d.Alternatives,
		d.FallbackMin,
		d.FallbackMax,
	)
}
