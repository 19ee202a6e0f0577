package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/cstpack/i18n"
	"github.com/reoring/cstpack/internal/config"
	"github.com/reoring/cstpack/internal/logging"
)

// errReported marks failures whose diagnostic was already printed.
var errReported = errors.New("reported")

type app struct {
	configPath string
	verbose    bool
	lang       string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}
	root := &cobra.Command{
		Use:           "tsh",
		Short:         "Track working hours in a plain text timesheet",
		Long:          `tsh reads a timesheet file, packs it into typed logs and reports the credit or deficit against the expected working day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML or TOML settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "language of packing diagnostics (en, ja)")

	root.AddCommand(
		newReportCmd(a),
		newCheckCmd(a),
		newDumpCmd(a),
		newPackCmd(a),
		newStartCmd(a),
		newEndCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.lang != "" {
		if !i18n.Supported(a.lang) {
			return fmt.Errorf("unsupported language %q", a.lang)
		}
		cfg.Language = a.lang
	}
	i18n.SetLanguage(cfg.Language)
	a.cfg = cfg
	a.log.Debug("configured", "config", a.configPath, "working_day", cfg.WorkingDay, "language", cfg.Language)
	return nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read timesheet: %w", err)
	}
	return string(b), nil
}
