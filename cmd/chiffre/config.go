package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/chiffre/internal/config"
	"github.com/verte-zerg/chiffre/internal/model"
)

var (
	configShowPath  bool
	configPrintOnly bool
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the config file or print the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configShowPath, "path", false, "print the config file location")
	cmd.Flags().BoolVar(&configPrintOnly, "print", false, "print the settings after applying the config file to the defaults")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	out := cmd.OutOrStdout()

	if configShowPath {
		_, err := fmt.Fprintln(out, path)
		return err
	}
	if configPrintOnly {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg := fileCfg.Analysis.Merge(model.DefaultConfig())
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return config.WriteSettings(out, cfg)
	}

	created, err := ensureConfigFile(path)
	if err != nil {
		return err
	}
	if created {
		logErrf("Created %s\n", path)
	}
	editor := editorCommand(path)
	editor.Stdin = cmd.InOrStdin()
	editor.Stdout = out
	editor.Stderr = cmd.ErrOrStderr()
	if err := editor.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", editor.Path, err)
	}
	return nil
}

// editorCommand opens path with $VISUAL, then $EDITOR, then vi.
func editorCommand(path string) *exec.Cmd {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return exec.Command(fields[0], append(fields[1:], path)...)
		}
	}
	return exec.Command("vi", path)
}

// ensureConfigFile writes the commented template when path does not exist
// and reports whether it did.
func ensureConfigFile(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create config: %w", err)
	}
	if _, err := io.WriteString(f, config.DefaultTemplate()); err != nil {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after a failed write.
			_ = cerr
		}
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
