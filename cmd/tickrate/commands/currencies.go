package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the selectable currency codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := fromContext(cmd.Context())
			svc, err := e.converter()
			if err != nil {
				return err
			}
			list, err := svc.LoadCurrencies(cmd.Context())
			if err != nil {
				return fmt.Errorf("load currencies: %w", err)
			}
			for _, code := range list {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}
}
