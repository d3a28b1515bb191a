package converter

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/jask/tickrate/internal/rates"
)

// Service runs conversions against a rate source.
type Service struct {
	source  rates.Source
	variant string
	logger  *slog.Logger
}

func NewService(source rates.Source, variant string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{source: source, variant: variant, logger: logger}
}

func (s *Service) Variant() string { return s.variant }

// Convert looks up the rate for req and multiplies, rounding to two decimal
// places. Failures are reported in the outcome, never returned.
func (s *Service) Convert(ctx context.Context, req Request) Outcome {
	out := Outcome{Request: req}
	rate, err := s.source.Rate(ctx, req.From, req.To)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("conversion failed", "from", req.From, "to", req.To, "seq", req.Seq, "err", err)
		}
		out.Err = err
		out.Message = s.message(err)
		return out
	}
	out.Rate = rate
	out.Value = req.Amount.Mul(rate).StringFixed(2)
	s.logger.Debug("converted", "from", req.From, "to", req.To, "amount", req.Amount, "rate", rate, "value", out.Value)
	return out
}

// ConvertAmount validates raw input and converts it in one call.
func (s *Service) ConvertAmount(ctx context.Context, amount, from, to string) (Outcome, error) {
	form, req, err := NewForm(from, to, nil).SetAmount(amount).Begin()
	if err != nil {
		return Outcome{Err: err, Message: form.Err}, err
	}
	out := s.Convert(ctx, req)
	return out, out.Err
}

// LoadCurrencies fetches the selectable currency list.
func (s *Service) LoadCurrencies(ctx context.Context) ([]string, error) {
	list, err := s.source.Currencies(ctx)
	if err != nil {
		s.logger.Warn("load currencies", "variant", s.variant, "err", err)
		return nil, err
	}
	return list, nil
}

// The static variant shows a generic message; the live variant surfaces
// the specific failure.
func (s *Service) message(err error) string {
	if s.variant == rates.VariantLive {
		return err.Error()
	}
	return MsgStaticFailure
}
