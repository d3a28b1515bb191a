// Package rates provides the conversion-rate sources used by the converter:
// a static table with simulated latency and a live HTTP rate-table client.
package rates

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Variant names accepted in configuration.
const (
	VariantStatic = "static"
	VariantLive   = "live"
)

var (
	// ErrRateUnavailable means the source has no rate for the requested pair.
	ErrRateUnavailable = errors.New("conversion rate not available")
	// ErrMalformedResponse means a rate table could not be read.
	ErrMalformedResponse = errors.New("malformed rate response")
	// ErrUnsupportedCurrency means a code is malformed or not offered.
	ErrUnsupportedCurrency = errors.New("unsupported currency code")
)

// Source supplies currency-pair conversion multipliers.
type Source interface {
	// Rate returns the multiplier converting from into to. It is 1 when the
	// codes are equal.
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
	// Currencies returns the selectable currency codes.
	Currencies(ctx context.Context) ([]string, error)
}

var one = decimal.NewFromInt(1)
