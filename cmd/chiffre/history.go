package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/config"
	"github.com/verte-zerg/chiffre/internal/model"
	"github.com/verte-zerg/chiffre/internal/report"
	"github.com/verte-zerg/chiffre/internal/store"
)

const defaultHistoryLast = 20

var (
	historyCipher string
	historyLang   string
	historySince  string
	historyLast   int
	historyID     int64
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyCipher, "cipher", "", "cipher filter: caesar or vigenere")
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N analyses (0 for all)")
	cmd.Flags().Int64Var(&historyID, "id", 0, "show the recovered key columns of one analysis")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	switch historyCipher {
	case "", model.CipherCaesar, model.CipherVigenere:
	default:
		return fmt.Errorf("invalid --cipher %q (use caesar or vigenere)", historyCipher)
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyID < 0 {
		return fmt.Errorf("--id must be > 0")
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	filter := model.HistoryFilter{
		Cipher: historyCipher,
		Lang:   historyLang,
		Since:  sinceTime,
		Last:   historyLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyID > 0 {
		cols, err := st.ListColumns(cmd.Context(), historyID)
		if err != nil {
			return fmt.Errorf("failed to load columns: %w", err)
		}
		return report.RenderColumns(cmd.OutOrStdout(), historyID, cols)
	}

	h, err := report.BuildHistory(cmd.Context(), st, filter)
	if err != nil {
		return err
	}
	return report.RenderHistory(cmd.OutOrStdout(), h)
}
