package rates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tickrate/internal/rates"
	"github.com/jask/tickrate/internal/rateserver"
	"github.com/jask/tickrate/internal/testutil"
)

func newLive(t *testing.T, h http.Handler) *rates.Live {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return rates.NewLive(srv.URL+"/latest", "USD", 2*time.Second, rates.WithLogger(testutil.NewTestLogger(t)))
}

func TestLiveRateAgainstRateServer(t *testing.T) {
	t.Parallel()

	live := newLive(t, rateserver.New(rates.NewStatic(0), nil))
	ctx := context.Background()

	rate, err := live.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	require.Equal(t, "0.85", rate.String())

	rate, err = live.Rate(ctx, "GBP", "GBP")
	require.NoError(t, err)
	require.Equal(t, "1", rate.String())

	_, err = live.Rate(ctx, "USD", "PKR")
	require.ErrorIs(t, err, rates.ErrRateUnavailable)
	require.Contains(t, err.Error(), "PKR")

	_, err = live.Rate(ctx, "CHF", "USD")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestLiveCurrenciesSorted(t *testing.T) {
	t.Parallel()

	live := newLive(t, rateserver.New(rates.NewStatic(0), nil))
	list, err := live.Currencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"EUR", "GBP", "INR", "JPY", "USD"}, list)
}

func TestLiveMalformedResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "rates key absent", body: `{"base":"USD","result":"ok"}`},
		{name: "not json", body: `<html>rate limited</html>`},
		{name: "rates wrong type", body: `{"rates":["EUR"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			live := newLive(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			list, err := live.Currencies(context.Background())
			require.ErrorIs(t, err, rates.ErrMalformedResponse)
			require.Empty(t, list)

			_, err = live.Rate(context.Background(), "USD", "EUR")
			require.ErrorIs(t, err, rates.ErrMalformedResponse)
		})
	}
}

func TestLiveRequestPath(t *testing.T) {
	t.Parallel()

	var path atomic.Value
	live := newLive(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.9}}`))
	}))

	rate, err := live.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	require.Equal(t, "0.9", rate.String())
	require.Equal(t, "/latest/USD", path.Load())
}

func TestLiveRejectsInvalidCodesWithoutRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	live := newLive(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))

	_, err := live.Rate(context.Background(), "USD", "../x")
	require.ErrorIs(t, err, rates.ErrUnsupportedCurrency)
	_, err = live.Rate(context.Background(), "us", "EUR")
	require.ErrorIs(t, err, rates.ErrUnsupportedCurrency)
	_, err = live.Rate(context.Background(), "../x", "EUR")
	require.ErrorIs(t, err, rates.ErrUnsupportedCurrency)
	require.Zero(t, calls.Load())
}

func TestLiveConvertsEveryListedCode(t *testing.T) {
	t.Parallel()

	// GGP, FOK, IMP, JEP, KID and TVD are published by rate APIs but are not
	// ISO-4217 codes.
	live := newLive(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.9,"GGP":0.79,"FOK":6.8,"IMP":0.79,"JEP":0.79,"KID":1.5,"TVD":1.5}}`))
	}))
	ctx := context.Background()

	codes, err := live.Currencies(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 8)

	for _, code := range codes {
		rate, err := live.Rate(ctx, "USD", code)
		require.NoError(t, err, code)
		require.True(t, rate.IsPositive(), code)

		rate, err = live.Rate(ctx, code, code)
		require.NoError(t, err, code)
		require.Equal(t, "1", rate.String(), code)

		_, err = live.Rate(ctx, code, "EUR")
		require.NoError(t, err, code)
	}

	_, err = live.Rate(ctx, "USD", "XYZ")
	require.ErrorIs(t, err, rates.ErrRateUnavailable)
}

func TestLiveTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	live := rates.NewLive(url, "USD", time.Second)
	_, err := live.Rate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "fetch rates for USD"), err.Error())
	require.False(t, errors.Is(err, rates.ErrMalformedResponse))
}

func TestLiveCancelledContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	live := newLive(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := live.Rate(ctx, "USD", "EUR")
	require.ErrorIs(t, err, context.Canceled)
}
