package converter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/tickrate/internal/rates"
	"github.com/jask/tickrate/internal/testutil"
)

func staticService(t *testing.T) *Service {
	t.Helper()
	return NewService(rates.NewStatic(0), rates.VariantStatic, testutil.NewTestLogger(t))
}

func TestConvertStatic(t *testing.T) {
	t.Parallel()

	svc := staticService(t)
	ctx := context.Background()

	f, req, err := NewForm("USD", "EUR", rates.StaticCurrencies).SetAmount("100").Begin()
	require.NoError(t, err)
	f = f.Resolve(svc.Convert(ctx, req))
	require.True(t, f.HasResult)
	require.Equal(t, "85.00", f.Converted)
	require.Empty(t, f.Err)

	out, err := svc.ConvertAmount(ctx, "3", "INR", "GBP")
	require.NoError(t, err)
	require.Equal(t, "0.03", out.Value)
	require.True(t, decimal.RequireFromString("0.0099").Equal(out.Rate))

	out, err = svc.ConvertAmount(ctx, "12.345", "PKR", "INR")
	require.NoError(t, err)
	require.Equal(t, "4.57", out.Value)
}

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	t.Parallel()

	svc := staticService(t)
	for _, code := range rates.StaticCurrencies {
		out, err := svc.ConvertAmount(context.Background(), "42.5", code, code)
		require.NoError(t, err)
		require.Equal(t, "42.50", out.Value, code)
	}
}

func TestConvertStaticFailureMessage(t *testing.T) {
	t.Parallel()

	svc := staticService(t)
	f, req, err := NewForm("USD", "PKR", rates.StaticCurrencies).SetAmount("10").Begin()
	require.NoError(t, err)

	out := svc.Convert(context.Background(), req)
	require.ErrorIs(t, out.Err, rates.ErrRateUnavailable)
	f = f.Resolve(out)
	require.Equal(t, MsgStaticFailure, f.Err)
	require.False(t, f.HasResult)
}

func TestConvertAmountInvalid(t *testing.T) {
	t.Parallel()

	svc := staticService(t)
	for _, amount := range []string{"0", "abc", "1e100000000"} {
		out, err := svc.ConvertAmount(context.Background(), amount, "USD", "EUR")
		require.ErrorIs(t, err, ErrInvalidAmount)
		require.Equal(t, MsgInvalidAmount, out.Message)
		require.Empty(t, out.Value)
	}
}

func TestConvertLivePropagatesMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"GBP":0.79}}`))
	}))
	t.Cleanup(srv.Close)

	live := rates.NewLive(srv.URL, "USD", time.Second)
	svc := NewService(live, rates.VariantLive, testutil.NewTestLogger(t))

	out, err := svc.ConvertAmount(context.Background(), "10", "USD", "EUR")
	require.ErrorIs(t, err, rates.ErrRateUnavailable)
	require.Equal(t, out.Err.Error(), out.Message)
	require.Contains(t, out.Message, "EUR")

	out, err = svc.ConvertAmount(context.Background(), "10", "USD", "GBP")
	require.NoError(t, err)
	require.Equal(t, "7.90", out.Value)
}

func TestLoadCurrencies(t *testing.T) {
	t.Parallel()

	list, err := staticService(t).LoadCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, rates.StaticCurrencies, list)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD"}`))
	}))
	t.Cleanup(srv.Close)
	svc := NewService(rates.NewLive(srv.URL, "USD", time.Second), rates.VariantLive, nil)

	list, err = svc.LoadCurrencies(context.Background())
	require.ErrorIs(t, err, rates.ErrMalformedResponse)
	f := NewForm("USD", "EUR", nil).WithCurrencies(list, err)
	require.Empty(t, f.Currencies)
	require.NotEmpty(t, f.LoadErr)
}
