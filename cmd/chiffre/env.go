package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/config"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/logging"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/store"
	"github.com/verte-zerg/chiffre/internal/text"
)

var (
	flagLang         string
	flagKasiskiMin   int
	flagKasiskiMax   int
	flagMaxKey       int
	flagTargetIC     float64
	flagFoldAccents  bool
	flagNoHistory    bool
	flagAlternatives int
	flagInputFile    string
)

func addLangFlag(cmd *cobra.Command) {
	d := model.DefaultConfig()
	cmd.Flags().StringVar(&flagLang, "lang", d.Lang, "reference language code")
}

func addEngineFlags(cmd *cobra.Command) {
	d := model.DefaultConfig()
	cmd.Flags().IntVar(&flagKasiskiMin, "kasiski-min", d.KasiskiMin, "shortest repeated sequence for Kasiski")
	cmd.Flags().IntVar(&flagKasiskiMax, "kasiski-max", d.KasiskiMax, "longest repeated sequence for Kasiski")
	cmd.Flags().IntVar(&flagMaxKey, "max-key", d.MaxKeyLength, "longest key length tried by the IC estimator")
	cmd.Flags().Float64Var(&flagTargetIC, "target-ic", 0, "target index of coincidence (default: the language's)")
	cmd.Flags().BoolVar(&flagFoldAccents, "fold-accents", d.FoldAccents, "strip accents before analysis")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record this analysis")
	cmd.Flags().IntVar(&flagAlternatives, "alternatives", d.Alternatives, "neighbouring shifts shown after Caesar analysis")
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "read the text from a file")
}

// env is what every analysis command needs, built from the config file
// and the flags.
type env struct {
	cfg    model.Config
	langs  map[string]freq.Language
	lang   freq.Language
	log    *logging.Logger
	engine *analysis.Engine
	store  *store.Store
}

// resolveConfig merges defaults, the config file and the flags that were set,
// in that order.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	cfg := fileCfg.Analysis.Merge(model.DefaultConfig())
	applyStringFlag(cmd, "lang", &cfg.Lang, flagLang)
	applyIntFlag(cmd, "kasiski-min", &cfg.KasiskiMin, flagKasiskiMin)
	applyIntFlag(cmd, "kasiski-max", &cfg.KasiskiMax, flagKasiskiMax)
	applyIntFlag(cmd, "max-key", &cfg.MaxKeyLength, flagMaxKey)
	applyFloatFlag(cmd, "target-ic", &cfg.TargetIC, flagTargetIC)
	applyBoolFlag(cmd, "fold-accents", &cfg.FoldAccents, flagFoldAccents)
	applyIntFlag(cmd, "alternatives", &cfg.Alternatives, flagAlternatives)
	if cmd.Flags().Changed("no-history") && flagNoHistory {
		cfg.History = false
	}
	return cfg
}

func setup(cmd *cobra.Command, fullscreen bool) (*env, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	langs, err := config.Languages(fileCfg, config.DefaultProfileDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	lang, err := freq.Lookup(cfg.Lang, langs)
	if err != nil {
		return nil, err
	}

	lg, err := logging.New(logging.Config{
		Output:  logOutput(cmd, fullscreen),
		File:    logFile,
		JSON:    logJSON,
		Verbose: logVerbose,
	})
	if err != nil {
		return nil, err
	}

	engine, err := analysis.New(lang,
		analysis.WithObserver(lg),
		analysis.WithKasiskiRange(cfg.KasiskiMin, cfg.KasiskiMax),
		analysis.WithMaxKeyLength(cfg.MaxKeyLength),
		analysis.WithTargetIC(cfg.TargetIC),
		analysis.WithFallbackRange(cfg.FallbackMin, cfg.FallbackMax),
	)
	if err != nil {
		closeLogger(lg)
		return nil, err
	}

	e := &env{cfg: cfg, langs: langs, lang: lang, log: lg, engine: engine}
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			lg.Warn("history disabled", "error", err)
			logErrf("history disabled: %v\n", err)
		} else {
			e.store = st
		}
	}
	return e, nil
}

// logOutput is where log records go when --log-file is not set. A
// full-screen program owns the terminal, so its records are dropped.
func logOutput(cmd *cobra.Command, fullscreen bool) io.Writer {
	if fullscreen {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}

func (e *env) close() {
	if e.store != nil {
		if cerr := e.store.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	closeLogger(e.log)
}

func closeLogger(lg *logging.Logger) {
	if cerr := lg.Close(); cerr != nil {
		// Best-effort flush of the log sink.
		_ = cerr
	}
}

// save records an analysis. Failures are reported and never fail the command.
func (e *env) save(ctx context.Context, rec model.AnalysisRecord, cols []store.ColumnRecord) {
	if e.store == nil {
		return
	}
	id, err := e.store.InsertAnalysis(ctx, rec, cols)
	if err != nil {
		e.log.Error("failed to save analysis", "error", err)
		logErrf("failed to save analysis: %v\n", err)
		return
	}
	e.log.Info("analysis saved", "id", id, "cipher", rec.Cipher, "key", rec.Key)
}

// prepare applies accent folding when enabled.
func (e *env) prepare(raw string) string {
	if e.cfg.FoldAccents {
		return text.FoldAccents(raw)
	}
	return raw
}

// readInput takes the text from --file, the arguments, or stdin when there
// are no arguments or the only one is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if flagInputFile != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("use either --file or a text argument")
		}
		data, err := os.ReadFile(flagInputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyFloatFlag(cmd *cobra.Command, name string, target *float64, value float64) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
