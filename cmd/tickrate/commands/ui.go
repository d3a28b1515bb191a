package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/tickrate/internal/tui"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the stopwatch and converter TUI",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e := fromContext(ctx)

	svc, err := e.converter()
	if err != nil {
		return err
	}
	rec, err := e.recorder()
	if err != nil {
		return err
	}

	app := tui.New(ctx, e.cfg, tui.Services{Converter: svc, Recorder: rec}, e.logger)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		e.logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
