package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/tickrate/internal/rates"
	"github.com/jask/tickrate/internal/rateserver"
)

func newServeRatesCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-rates",
		Short: "Serve the static rate table over HTTP",
		Long: `Serves the static rate table at GET /latest/{base} in the same shape the
live variant reads. Point rates.base_url at http://<addr>/latest to run the
live variant offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromContext(cmd.Context())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           rateserver.New(rates.NewStatic(0), e.logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving rates on http://%s/latest\n", addr)
			e.logger.Info("rate server listening", "addr", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve rates: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			e.logger.Info("rate server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
