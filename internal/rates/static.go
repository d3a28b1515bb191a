package rates

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StaticCurrencies is the fixed currency list of the static variant.
var StaticCurrencies = []string{"USD", "EUR", "GBP", "INR", "JPY", "PKR"}

var mockRates = map[string]map[string]string{
	"USD": {"EUR": "0.85", "GBP": "0.75", "INR": "74", "JPY": "110"},
	"EUR": {"USD": "1.18", "GBP": "0.88", "INR": "87", "JPY": "129"},
	"GBP": {"USD": "1.34", "EUR": "1.14", "INR": "101", "JPY": "148"},
	"INR": {"USD": "0.013", "EUR": "0.011", "GBP": "0.0099", "JPY": "1.46"},
	"JPY": {"USD": "0.0091", "EUR": "0.0078", "GBP": "0.0068", "INR": "0.68"},
	"PKR": {"USD": "0.005", "EUR": "0.0043", "GBP": "0.0038", "INR": "0.37", "JPY": "0.83"},
}

// Static serves rates from an in-memory table after a fixed delay that
// stands in for network latency.
type Static struct {
	table map[string]map[string]decimal.Decimal
	delay time.Duration
}

// NewStatic builds the mock table. A zero delay resolves immediately.
func NewStatic(delay time.Duration) *Static {
	table := make(map[string]map[string]decimal.Decimal, len(mockRates))
	for from, row := range mockRates {
		quotes := make(map[string]decimal.Decimal, len(row))
		for to, v := range row {
			quotes[to] = decimal.RequireFromString(v)
		}
		table[from] = quotes
	}
	return &Static{table: table, delay: delay}
}

func (s *Static) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return one, nil
	}
	rate, ok := s.table[from][to]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return rate, nil
}

func (s *Static) Currencies(ctx context.Context) ([]string, error) {
	return append([]string(nil), StaticCurrencies...), ctx.Err()
}

// Quotes returns every rate listed for base, including base itself at 1.
// It does not apply the simulated delay.
func (s *Static) Quotes(base string) (map[string]decimal.Decimal, bool) {
	row, ok := s.table[base]
	if !ok {
		return nil, false
	}
	out := make(map[string]decimal.Decimal, len(row)+1)
	for code, v := range row {
		out[code] = v
	}
	out[base] = one
	return out, true
}

// Bases lists the codes that have a row in the table.
func (s *Static) Bases() []string {
	out := make([]string, 0, len(s.table))
	for code := range s.table {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
