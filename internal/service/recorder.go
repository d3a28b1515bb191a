package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jask/tickrate/internal/converter"
	"github.com/jask/tickrate/internal/database"
	"github.com/jask/tickrate/internal/database/repository"
)

// Recorder journals finished conversions and stopwatch sessions. A Recorder
// with nil repos is disabled and every call is a no-op.
type Recorder struct {
	Conversions *repository.ConversionRepo
	Sessions    *repository.SessionRepo
	Logger      *slog.Logger
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.Conversions != nil && r.Sessions != nil
}

// RecordConversion stores a successful outcome. Failed outcomes are skipped.
func (r *Recorder) RecordConversion(ctx context.Context, variant string, o converter.Outcome) error {
	if !r.Enabled() || o.Err != nil || o.Value == "" {
		return nil
	}
	c := &repository.Conversion{
		Amount:    o.Amount,
		From:      o.From,
		To:        o.To,
		Rate:      o.Rate,
		Result:    o.Value,
		Variant:   variant,
		CreatedAt: database.Now(),
	}
	if err := r.Conversions.Insert(ctx, c); err != nil {
		return fmt.Errorf("record conversion: %w", err)
	}
	r.logger().Debug("conversion recorded", "id", c.ID, "from", c.From, "to", c.To)
	return nil
}

// RecordSession stores a stopwatch run. Zero-length runs are skipped.
func (r *Recorder) RecordSession(ctx context.Context, elapsedMs int64) error {
	if !r.Enabled() || elapsedMs <= 0 {
		return nil
	}
	s := &repository.Session{ElapsedMs: elapsedMs, RecordedAt: database.Now()}
	if err := r.Sessions.Insert(ctx, s); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	r.logger().Debug("session recorded", "id", s.ID, "elapsed_ms", elapsedMs)
	return nil
}

func (r *Recorder) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
