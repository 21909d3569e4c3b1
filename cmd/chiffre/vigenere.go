package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/analysis"
	"github.com/verte-zerg/chiffre/internal/report"
	"github.com/verte-zerg/chiffre/internal/text"
)

var (
	vigenereMethod  string
	vigenereKey     string
	vigenereEncrypt bool
	vigenerePlot    bool
	vigenereOutput  string
)

func newVigenereCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vigenere [TEXT|-]",
		Short: "Break, decrypt or encrypt a Vigenère cipher",
		RunE:  runVigenereCmd,
	}
	cmd.Flags().StringVarP(&vigenereMethod, "method", "m", string(analysis.MethodBoth), "key length estimator: kasiski, ic or both")
	cmd.Flags().StringVarP(&vigenereKey, "key", "k", "", "decrypt with this key instead of estimating it")
	cmd.Flags().BoolVar(&vigenereEncrypt, "encrypt", false, "encrypt the text with --key")
	cmd.Flags().BoolVar(&vigenerePlot, "plot", false, "plot average IC by key length")
	cmd.Flags().StringVarP(&vigenereOutput, "output", "o", "text", "output format: text, json or yaml")
	addLangFlag(cmd)
	addEngineFlags(cmd)
	addInputFlag(cmd)
	return cmd
}

func runVigenereCmd(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(vigenereOutput)
	if err != nil {
		return err
	}
	method, err := analysis.ParseMethod(vigenereMethod)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if vigenereEncrypt {
		if vigenereKey == "" {
			return fmt.Errorf("--encrypt requires --key")
		}
		cipher, err := analysis.EncryptVigenere(raw, vigenereKey)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, cipher)
		return err
	}

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	started := time.Now()
	input := e.prepare(raw)
	if vigenereKey != "" {
		cand, err := e.engine.DecryptWithKey(input, vigenereKey)
		if err != nil {
			return err
		}
		letters := len(text.Normalize(input))
		e.save(cmd.Context(), report.ManualKeyRecord(e.lang.Code, cand, letters, time.Since(started)), nil)
		if format != report.FormatText {
			return report.Export(out, format, report.NewKeyDoc(e.lang.Code, "key", letters, cand))
		}
		return report.RenderKey(out, cand)
	}

	rep, err := e.engine.CrackVigenere(cmd.Context(), input, method)
	if err != nil {
		return err
	}
	rec, cols := report.VigenereRecord(e.lang.Code, rep, time.Since(started))
	e.save(cmd.Context(), rec, cols)
	if rep.Best == nil {
		e.log.Warn("key length inconclusive", "letters", rep.Letters, "candidates", len(rep.Fallback))
	}

	if format != report.FormatText {
		return report.Export(out, format, report.NewVigenereDoc(e.lang.Code, rep))
	}
	if err := report.RenderVigenere(out, e.lang, rep); err != nil {
		return err
	}
	if vigenerePlot && rep.Coincidence != nil {
		opts := report.PlotOptions{Color: report.UseColor(out)}
		return report.PlotCoincidence(out, *rep.Coincidence, opts)
	}
	return nil
}
