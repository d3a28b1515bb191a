package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/tickrate/internal/database/repository"
	"github.com/jask/tickrate/internal/service"
	"github.com/jask/tickrate/internal/stopwatch"
)

const timeLayout = "2006-01-02 15:04:05"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled conversions and stopwatch sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e := fromContext(ctx)
			db, err := e.database()
			if err != nil {
				return err
			}
			convs, err := repository.NewConversionRepo(db).Recent(ctx, limit)
			if err != nil {
				return err
			}
			sessions, err := repository.NewSessionRepo(db).Recent(ctx, limit)
			if err != nil {
				return err
			}
			layout, err := stopwatch.ParseLayout(e.cfg.Stopwatch.Layout)
			if err != nil {
				layout = stopwatch.LayoutCentiseconds
			}
			w := cmd.OutOrStdout()
			writeConversions(w, convs)
			_, _ = fmt.Fprintln(w)
			writeSessions(w, sessions, layout)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "rows per section (0 for all)")
	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all journaled conversions and sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromContext(cmd.Context())
			db, err := e.database()
			if err != nil {
				return err
			}
			maint := &service.MaintenanceService{DB: db}
			cleared, err := maint.ClearHistory(cmd.Context())
			if err != nil {
				return err
			}
			e.logger.Info("history cleared", "conversions", cleared.Conversions, "sessions", cleared.Sessions)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "history cleared: %d conversions, %d sessions\n",
				cleared.Conversions, cleared.Sessions)
			return nil
		},
	}
}

func styleCells(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

func writeConversions(w io.Writer, convs []repository.Conversion) {
	if len(convs) == 0 {
		_, _ = fmt.Fprintln(w, "no conversions recorded")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleCells).
		Headers("When", "Amount", "From", "To", "Rate", "Result", "Source")
	for _, c := range convs {
		t.Row(
			c.CreatedAt.Local().Format(timeLayout),
			c.Amount.String(),
			c.From,
			c.To,
			c.Rate.String(),
			c.Result,
			c.Variant,
		)
	}
	_, _ = fmt.Fprintln(w, t.String())
}

func writeSessions(w io.Writer, sessions []repository.Session, layout stopwatch.Layout) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(w, "no stopwatch sessions recorded")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleCells).
		Headers("Recorded", "Elapsed", "ms")
	for _, s := range sessions {
		t.Row(
			s.RecordedAt.Local().Format(timeLayout),
			layout.Format(s.ElapsedMs),
			strconv.FormatInt(s.ElapsedMs, 10),
		)
	}
	_, _ = fmt.Fprintln(w, t.String())
}
