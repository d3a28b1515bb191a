package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is a journaled successful conversion.
type Conversion struct {
	ID        string
	Amount    decimal.Decimal
	From      string
	To        string
	Rate      decimal.Decimal
	Result    string
	Variant   string
	CreatedAt time.Time
}

// Session is a finished stopwatch run, recorded on reset.
type Session struct {
	ID         string
	ElapsedMs  int64
	RecordedAt time.Time
}
