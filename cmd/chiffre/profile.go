package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/config"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/report"
	"github.com/verte-zerg/chiffre/internal/text"
	"github.com/verte-zerg/chiffre/internal/wordfreq"
)

const defaultProfileWords = 50000

var (
	profileFromText string
	profileWordfreq string
	profileName     string
	profileLimit    int
	profileForce    bool
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage reference letter frequency profiles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known languages",
		Args:  cobra.NoArgs,
		RunE:  runProfileListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show CODE",
		Short: "Show the letter frequencies of a language",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileShowCmd,
	})

	build := &cobra.Command{
		Use:   "build CODE",
		Short: "Build a profile from a sample text or the wordfreq dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileBuildCmd,
	}
	build.Flags().StringVar(&profileFromText, "from-text", "", "count letters of this text file")
	build.Flags().StringVar(&profileWordfreq, "wordfreq", "", "wordfreq language code to derive the profile from")
	build.Flags().StringVar(&profileName, "name", "", "display name of the language")
	build.Flags().IntVar(&profileLimit, "limit", defaultProfileWords, "number of wordfreq words to use")
	build.Flags().BoolVar(&profileForce, "force", false, "overwrite an existing profile")
	cmd.AddCommand(build)
	return cmd
}

func loadLanguages() (map[string]freq.Language, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	langs, err := config.Languages(fileCfg, config.DefaultProfileDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return langs, nil
}

func runProfileListCmd(cmd *cobra.Command, _ []string) error {
	custom, err := loadLanguages()
	if err != nil {
		return err
	}
	codes := freq.Codes(custom)
	langs := make([]freq.Language, 0, len(codes))
	isCustom := make(map[string]bool, len(custom))
	for _, code := range codes {
		lang, err := freq.Lookup(code, custom)
		if err != nil {
			return err
		}
		langs = append(langs, lang)
		if _, ok := custom[code]; ok {
			isCustom[code] = true
		}
	}
	return report.RenderLanguages(cmd.OutOrStdout(), langs, isCustom)
}

func runProfileShowCmd(cmd *cobra.Command, args []string) error {
	custom, err := loadLanguages()
	if err != nil {
		return err
	}
	lang, err := freq.Lookup(args[0], custom)
	if err != nil {
		return err
	}
	return report.RenderProfile(cmd.OutOrStdout(), lang)
}

func runProfileBuildCmd(cmd *cobra.Command, args []string) error {
	code := strings.ToLower(strings.TrimSpace(args[0]))
	if code == "" {
		return fmt.Errorf("profile code must not be empty")
	}
	if (profileFromText == "") == (profileWordfreq == "") {
		return fmt.Errorf("use exactly one of --from-text or --wordfreq")
	}
	outPath := config.DefaultProfilePath(code)
	if !profileForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("profile already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat profile: %w", err)
		}
	}

	var (
		lang freq.Language
		err  error
	)
	if profileFromText != "" {
		lang, err = profileFromFile(code, profileName, profileFromText)
	} else {
		lang, err = profileFromWordfreq(cmd, code, profileName, profileWordfreq, profileLimit)
	}
	if err != nil {
		return err
	}
	if err := freq.WriteFile(outPath, lang); err != nil {
		return err
	}
	logErrf("Wrote %s (peak %c, target IC %.4f)\n", outPath, lang.Peak, lang.TargetIC)
	return nil
}

func profileFromFile(code, name, path string) (freq.Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return freq.Language{}, fmt.Errorf("failed to read sample text: %w", err)
	}
	counts := freq.Count(text.Normalize(text.FoldAccents(string(data))))
	profile, ok := counts.Profile()
	if !ok {
		return freq.Language{}, fmt.Errorf("sample text %s contains no letters", path)
	}
	if name == "" {
		name = code
	}
	lang := freq.Language{
		Code:     code,
		Name:     name,
		Profile:  profile,
		Peak:     profile.MostFrequent(),
		TargetIC: profile.ExpectedIC(),
	}
	return lang, lang.Validate()
}

func profileFromWordfreq(cmd *cobra.Command, code, name, source string, limit int) (freq.Language, error) {
	if limit <= 0 {
		return freq.Language{}, fmt.Errorf("--limit must be greater than 0")
	}
	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return freq.Language{}, fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}
	types, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return freq.Language{}, fmt.Errorf("failed to list languages: %w", err)
	}
	source = strings.ToLower(strings.TrimSpace(source))
	listType, ok := types.Best(source)
	if !ok {
		return freq.Language{}, fmt.Errorf("unknown wordfreq language %q (available: %s)", source, strings.Join(types.Languages(), ", "))
	}
	if listType != wordfreq.ListLarge {
		logErrf("Using %s list for %s (no %s list)\n", listType, source, wordfreq.ListLarge)
	}
	lang, err := wordfreq.BuildLanguage(wheel.Path, code, name, listType, limit)
	if err != nil {
		return freq.Language{}, fmt.Errorf("failed to build %s profile: %w", code, err)
	}
	if err := wordfreq.WriteAttribution(wheel, config.DefaultProfileDir()); err != nil {
		return freq.Language{}, fmt.Errorf("failed to write attribution: %w", err)
	}
	return lang, nil
}
