// Package commands wires configuration, storage and services into the
// tickrate command tree.
package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/tickrate/internal/config"
	"github.com/jask/tickrate/internal/converter"
	"github.com/jask/tickrate/internal/database"
	"github.com/jask/tickrate/internal/database/repository"
	"github.com/jask/tickrate/internal/logging"
	"github.com/jask/tickrate/internal/rates"
	"github.com/jask/tickrate/internal/service"
)

// Version is set at build time.
var Version = "0.1.0"

var errHistoryDisabled = errors.New("history is disabled (history.enabled = false)")

type envKey struct{}

// env is what PersistentPreRunE prepares for every subcommand.
type env struct {
	cfg    config.Config
	logger *slog.Logger

	closeLog func() error
	db       *sql.DB
}

func fromContext(ctx context.Context) *env {
	if ctx == nil {
		return &env{logger: logging.Discard(), closeLog: func() error { return nil }}
	}
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{logger: logging.Discard(), closeLog: func() error { return nil }}
}

// NewRootCmd builds the command tree. Running it without a subcommand opens
// the TUI.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		variant string
	)

	root := &cobra.Command{
		Use:   "tickrate",
		Short: "Stopwatch and currency converter for the terminal",
		Long: `tickrate is a terminal app with a millisecond stopwatch and a currency
converter backed by either a static rate table or a live rate endpoint.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			if cfgFile != "" {
				if err := os.Setenv("TICKRATE_CONFIG", cfgFile); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if variant != "" {
				cfg.Converter.Variant = variant
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger, closeLog, err := logging.New(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				return err
			}
			logger.Debug("command start", "cmd", cmd.CommandPath(), "variant", cfg.Converter.Variant)
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{cfg: cfg, logger: logger, closeLog: closeLog}))
			return nil
		},
		RunE: runUI,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/tickrate/config.toml)")
	root.PersistentFlags().StringVar(&variant, "variant", "", "rate source: static or live (overrides converter.variant)")
	_ = root.RegisterFlagCompletionFunc("variant", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{rates.VariantStatic, rates.VariantLive}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newUICmd(),
		newConvertCmd(),
		newCurrenciesCmd(),
		newHistoryCmd(),
		newServeRatesCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and prints any error.
func Execute() error {
	if _, err := execute(NewRootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// execute runs root and releases the env of whichever command ran, whether
// or not it failed. Cobra skips post-run hooks on error.
func execute(root *cobra.Command) (*cobra.Command, error) {
	cmd, err := root.ExecuteC()
	if cmd == nil {
		return nil, err
	}
	if cerr := fromContext(cmd.Context()).close(); err == nil {
		err = cerr
	}
	return cmd, err
}

func (e *env) close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
		e.db = nil
	}
	if e.closeLog != nil {
		errs = append(errs, e.closeLog())
		e.closeLog = nil
	}
	return errors.Join(errs...)
}

// source builds the rate source selected by converter.variant.
func (e *env) source() (rates.Source, error) {
	switch e.cfg.Converter.Variant {
	case rates.VariantStatic:
		return rates.NewStatic(e.cfg.Converter.MockDelay), nil
	case rates.VariantLive:
		return rates.NewLive(e.cfg.Rates.BaseURL, e.cfg.Rates.ReferenceBase, e.cfg.Rates.Timeout, rates.WithLogger(e.logger)), nil
	default:
		return nil, fmt.Errorf("unknown converter variant %q", e.cfg.Converter.Variant)
	}
}

func (e *env) converter() (*converter.Service, error) {
	src, err := e.source()
	if err != nil {
		return nil, err
	}
	return converter.NewService(src, e.cfg.Converter.Variant, e.logger), nil
}

func (e *env) database() (*sql.DB, error) {
	if !e.cfg.History.Enabled {
		return nil, errHistoryDisabled
	}
	if e.db != nil {
		return e.db, nil
	}
	db, err := database.OpenAndMigrate(e.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	e.db = db
	return db, nil
}

// recorder returns nil when history is disabled.
func (e *env) recorder() (*service.Recorder, error) {
	if !e.cfg.History.Enabled {
		return nil, nil
	}
	db, err := e.database()
	if err != nil {
		return nil, err
	}
	return &service.Recorder{
		Conversions: repository.NewConversionRepo(db),
		Sessions:    repository.NewSessionRepo(db),
		Logger:      e.logger,
	}, nil
}
