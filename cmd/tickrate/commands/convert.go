package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jask/tickrate/internal/converter"
	"github.com/jask/tickrate/internal/rates"
)

func newConvertCmd() *cobra.Command {
	var amount, from, to string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount once and print the result",
		Example: `  tickrate convert --amount 100 --from USD --to EUR
  tickrate convert --amount 12.5 --from gbp --to inr --variant live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e := fromContext(ctx)
			if from == "" {
				from = e.cfg.Converter.DefaultFrom
			}
			if to == "" {
				to = e.cfg.Converter.DefaultTo
			}
			from, to = rates.Normalize(from), rates.Normalize(to)

			svc, err := e.converter()
			if err != nil {
				return err
			}
			known, err := svc.LoadCurrencies(ctx)
			if err == nil {
				if err := checkKnown(known, from, to); err != nil {
					return err
				}
			}

			out, err := svc.ConvertAmount(ctx, amount, from, to)
			if err != nil {
				if out.Message != "" && out.Message != err.Error() {
					return fmt.Errorf("%s (%w)", out.Message, err)
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s (rate %s)\n",
				out.Amount.String(), from, out.Value, to, out.Rate.String())

			record(ctx, e, svc.Variant(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount to convert")
	cmd.Flags().StringVarP(&from, "from", "f", "", "source currency (default converter.default_from)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "target currency (default converter.default_to)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// checkKnown rejects codes outside the selectable list, suggesting the
// nearest known code when one is close.
func checkKnown(known []string, codes ...string) error {
	for _, code := range codes {
		if slices.Contains(known, code) {
			continue
		}
		if s := rates.Suggest(code, known); s != "" {
			return fmt.Errorf("%w: %q (did you mean %s?)", rates.ErrUnsupportedCurrency, code, s)
		}
		return fmt.Errorf("%w: %q", rates.ErrUnsupportedCurrency, code)
	}
	return nil
}

// record journals a one-shot conversion. Journal failures are logged and do
// not fail the command.
func record(ctx context.Context, e *env, variant string, out converter.Outcome) {
	rec, err := e.recorder()
	if err == nil {
		err = rec.RecordConversion(ctx, variant, out)
	}
	if err != nil {
		e.logger.Warn("record conversion", "err", err)
	}
}
