package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of a rate table is read.
const maxBodyBytes = 1 << 20

type rateTable struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Live reads rate tables from an HTTP endpoint of the form
// GET {baseURL}/{CODE} returning {"rates": {"EUR": 0.85, ...}}.
// Nothing is cached between calls.
type Live struct {
	client        *http.Client
	baseURL       string
	referenceBase string
	logger        *slog.Logger
}

// LiveOption customizes a Live source.
type LiveOption func(*Live)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) LiveOption {
	return func(l *Live) { l.client = c }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) LiveOption {
	return func(l *Live) { l.logger = logger }
}

// NewLive creates a live source. referenceBase is the table fetched to build
// the currency list.
func NewLive(baseURL, referenceBase string, timeout time.Duration, opts ...LiveOption) *Live {
	l := &Live{
		client:        &http.Client{Timeout: timeout},
		baseURL:       baseURL,
		referenceBase: Normalize(referenceBase),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Live) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return one, nil
	}
	if err := CheckCode(to); err != nil {
		return decimal.Zero, err
	}
	table, err := l.fetch(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := table.Rates[to]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s is not listed for %s", ErrRateUnavailable, to, from)
	}
	return rate, nil
}

// Currencies returns the sorted key set of the reference table.
func (l *Live) Currencies(ctx context.Context) ([]string, error) {
	table, err := l.fetch(ctx, l.referenceBase)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(table.Rates))
	for code := range table.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (l *Live) fetch(ctx context.Context, base string) (rateTable, error) {
	if err := CheckCode(base); err != nil {
		return rateTable{}, err
	}
	endpoint, err := url.JoinPath(l.baseURL, base)
	if err != nil {
		return rateTable{}, fmt.Errorf("build rates url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return rateTable{}, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return rateTable{}, fmt.Errorf("fetch rates for %s: %w", base, err)
	}
	defer resp.Body.Close()
	l.logger.Debug("rates fetched", "base", base, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return rateTable{}, fmt.Errorf("fetch rates for %s: unexpected status %s", base, resp.Status)
	}
	var table rateTable
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&table); err != nil {
		return rateTable{}, fmt.Errorf("%w: decode rates for %s: %v", ErrMalformedResponse, base, err)
	}
	if table.Rates == nil {
		return rateTable{}, fmt.Errorf("%w: no rates in table for %s", ErrMalformedResponse, base)
	}
	return table, nil
}
