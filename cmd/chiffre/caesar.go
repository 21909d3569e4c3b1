package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/report"
	"github.com/verte-zerg/chiffre/internal/text"
)

var (
	caesarShift   int
	caesarEncrypt bool
	caesarRank    bool
	caesarPlot    bool
	caesarOutput  string
)

func newCaesarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caesar [TEXT|-]",
		Short: "Break, decrypt or encrypt a Caesar cipher",
		RunE:  runCaesarCmd,
	}
	cmd.Flags().IntVar(&caesarShift, "shift", 0, "use this shift (0-25) instead of estimating it")
	cmd.Flags().BoolVar(&caesarEncrypt, "encrypt", false, "encrypt the text with --shift")
	cmd.Flags().BoolVar(&caesarRank, "rank", false, "rank all shifts by chi-squared")
	cmd.Flags().BoolVar(&caesarPlot, "plot", false, "plot chi-squared by shift")
	cmd.Flags().StringVarP(&caesarOutput, "output", "o", "text", "output format: text, json or yaml")
	addLangFlag(cmd)
	addEngineFlags(cmd)
	addInputFlag(cmd)
	return cmd
}

func runCaesarCmd(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(caesarOutput)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	manual := cmd.Flags().Changed("shift")
	var shift analysis.Shift
	if manual {
		if shift, err = analysis.NewShift(caesarShift); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()

	if caesarEncrypt {
		if !manual {
			return fmt.Errorf("--encrypt requires --shift")
		}
		_, err := fmt.Fprintln(out, analysis.EncryptCaesar(raw, shift))
		return err
	}

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	started := time.Now()
	input := e.prepare(raw)
	res, plain := e.engine.AnalyzeCaesar(input)
	if manual {
		res.Shift = shift
		plain = analysis.DecryptCaesar(input, shift)
	}
	cipherText := text.Normalize(input)
	view := report.CaesarView{
		Lang:         e.lang,
		Result:       res,
		Plaintext:    plain,
		Alternatives: analysis.Alternatives(input, res.Shift, e.cfg.Alternatives),
	}
	if caesarRank {
		view.Ranked = analysis.RankShifts(cipherText, e.lang.Profile)
	}
	e.save(cmd.Context(), report.CaesarRecord(e.lang.Code, res, plain, manual, time.Since(started)), nil)

	if format != report.FormatText {
		return report.Export(out, format, report.NewCaesarDoc(view))
	}
	if err := report.RenderCaesar(out, view); err != nil {
		return err
	}
	if err := report.RenderFrequencyTable(out, freq.Count(cipherText), e.lang); err != nil {
		return err
	}
	if caesarPlot && res.Letters > 0 {
		opts := report.PlotOptions{Color: report.UseColor(out)}
		return report.PlotShiftScores(out, analysis.ChiSquaredScores(cipherText, e.lang.Profile), opts)
	}
	return nil
}
