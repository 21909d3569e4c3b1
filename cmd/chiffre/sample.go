package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/config"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/generator"
	"github.com/verte-zerg/chiffre/internal/wordfreq"
)

const (
	defaultSampleLetters = 500
	sampleWordPool       = 5000
)

var (
	sampleLang    string
	sampleLetters int
	sampleWords   int
	sampleShift   int
	sampleKey     string
	sampleSeed    int64
	samplePlain   bool
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate sample text, optionally encrypted",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().StringVar(&sampleLang, "lang", freq.DefaultLanguage, "language whose letter frequencies are sampled")
	cmd.Flags().IntVar(&sampleLetters, "letters", defaultSampleLetters, "number of letters to draw")
	cmd.Flags().IntVar(&sampleWords, "words", 0, "draw this many real words from wordfreq instead of letters")
	cmd.Flags().IntVar(&sampleShift, "shift", 0, "encrypt with this Caesar shift")
	cmd.Flags().StringVar(&sampleKey, "key", "", "encrypt with this Vigenère key")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().BoolVar(&samplePlain, "show-plain", false, "also print the plaintext to stderr")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	useShift := cmd.Flags().Changed("shift")
	if useShift && sampleKey != "" {
		return fmt.Errorf("use either --shift or --key")
	}
	if sampleLetters <= 0 {
		return fmt.Errorf("--letters must be greater than 0")
	}
	if sampleWords < 0 {
		return fmt.Errorf("--words must be >= 0")
	}

	gen := generator.New(sampleSeed)
	var (
		plain string
		err   error
	)
	if sampleWords > 0 {
		plain, err = sampleFromWordfreq(cmd, gen, sampleLang, sampleWords)
	} else {
		plain, err = sampleFromProfile(gen, sampleLang, sampleLetters)
	}
	if err != nil {
		return err
	}
	if samplePlain {
		logErrln(plain)
	}

	out := plain
	switch {
	case useShift:
		shift, err := analysis.NewShift(sampleShift)
		if err != nil {
			return err
		}
		out = analysis.EncryptCaesar(plain, shift)
	case sampleKey != "":
		if out, err = analysis.EncryptVigenere(plain, sampleKey); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func sampleFromProfile(gen *generator.Generator, code string, letters int) (string, error) {
	custom, err := loadLanguages()
	if err != nil {
		return "", err
	}
	lang, err := freq.Lookup(code, custom)
	if err != nil {
		return "", err
	}
	return gen.Text(lang.Profile, letters, generator.DefaultOptions())
}

func sampleFromWordfreq(cmd *cobra.Command, gen *generator.Generator, code string, count int) (string, error) {
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return "", fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	types, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return "", fmt.Errorf("failed to list languages: %w", err)
	}
	code = strings.ToLower(strings.TrimSpace(code))
	listType, ok := types.Best(code)
	if !ok {
		return "", fmt.Errorf("unknown wordfreq language %q", code)
	}
	words, err := wordfreq.Words(wheel.Path, code, listType, sampleWordPool)
	if err != nil {
		return "", err
	}
	picked, err := gen.Words(words, count, generator.DefaultOptions())
	if err != nil {
		return "", err
	}
	return strings.Join(picked, " "), nil
}
