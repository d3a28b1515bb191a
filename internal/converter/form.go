// Package converter holds the currency converter form state, its
// transitions, and the service that turns a validated request into a result.
package converter

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// User-facing messages.
const (
	MsgInvalidAmount = "Please enter a valid amount."
	MsgStaticFailure = "Failed to fetch conversion rate."
)

// ErrInvalidAmount is returned when the amount is empty, not a number, or not
// greater than zero.
var ErrInvalidAmount = errors.New("invalid amount")

// Form is the converter state. Transitions return a new Form; a Form is never
// mutated in place.
type Form struct {
	Amount     string
	From       string
	To         string
	Currencies []string

	// Converted holds the last result when HasResult is set.
	Converted string
	HasResult bool
	Err       string
	LoadErr   string

	// Pending is the sequence number of the conversion in flight, 0 when idle.
	Pending uint64
	seq     uint64
}

// Request is a validated conversion ready to be sent to a rate source.
type Request struct {
	Seq    uint64
	Amount decimal.Decimal
	From   string
	To     string
}

// Outcome is the result of running a Request.
type Outcome struct {
	Request
	Rate    decimal.Decimal
	Value   string
	Err     error
	Message string
}

func NewForm(from, to string, currencies []string) Form {
	return Form{From: from, To: to, Currencies: slices.Clone(currencies)}
}

// maxAmountDigits bounds the digits on each side of the decimal point, so
// inputs like "1e100000000" are rejected before any arithmetic.
const maxAmountDigits = 30

// ParseAmount accepts a finite decimal strictly greater than zero with at
// most maxAmountDigits integer and fraction digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > 4*maxAmountDigits {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	exp := int64(d.Exponent())
	intDigits := int64(len(d.Coefficient().String())) + exp
	if intDigits > maxAmountDigits || -exp > maxAmountDigits {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func (f Form) SetAmount(raw string) Form {
	f.Amount = raw
	return f
}

// Begin starts a conversion attempt. It clears the previous result and
// error, then either records the invalid-amount error or hands out a request
// carrying a fresh sequence number. Any earlier in-flight request becomes
// stale either way.
func (f Form) Begin() (Form, Request, error) {
	f.Err = ""
	f.Converted = ""
	f.HasResult = false
	f.Pending = 0

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		f.Err = MsgInvalidAmount
		return f, Request{}, err
	}
	f.seq++
	f.Pending = f.seq
	return f, Request{Seq: f.Pending, Amount: amount, From: f.From, To: f.To}, nil
}

// Accepts reports whether o answers the request currently in flight.
func (f Form) Accepts(o Outcome) bool {
	return o.Seq != 0 && o.Seq == f.Pending
}

// Resolve applies an outcome. Outcomes of superseded requests are dropped.
func (f Form) Resolve(o Outcome) Form {
	if !f.Accepts(o) {
		return f
	}
	f.Pending = 0
	if o.Err != nil {
		f.Err = o.Message
		return f
	}
	f.Converted = o.Value
	f.HasResult = true
	return f
}

// Busy reports whether a conversion is in flight.
func (f Form) Busy() bool { return f.Pending != 0 }

// Swap exchanges the source and target currencies in one step.
func (f Form) Swap() Form {
	f.From, f.To = f.To, f.From
	return f
}

// Field names a currency selector.
type Field int

const (
	FieldFrom Field = iota
	FieldTo
)

// Cycle moves the selected currency of field by delta positions, wrapping
// around the currency list.
func (f Form) Cycle(field Field, delta int) Form {
	n := len(f.Currencies)
	if n == 0 {
		return f
	}
	cur := f.From
	if field == FieldTo {
		cur = f.To
	}
	idx := slices.Index(f.Currencies, cur)
	if idx < 0 {
		idx = 0
		if delta > 0 {
			delta--
		}
	}
	next := f.Currencies[((idx+delta)%n+n)%n]
	if field == FieldTo {
		f.To = next
	} else {
		f.From = next
	}
	return f
}

// WithCurrencies applies the result of loading the currency list. On error
// the list is emptied and LoadErr is set. Selections not present in a loaded
// list fall back to its first entries.
func (f Form) WithCurrencies(list []string, err error) Form {
	if err != nil {
		f.Currencies = nil
		f.LoadErr = "Failed to load currencies: " + err.Error()
		return f
	}
	f.Currencies = slices.Clone(list)
	f.LoadErr = ""
	if len(list) == 0 {
		return f
	}
	if !slices.Contains(list, f.From) {
		f.From = list[0]
	}
	if !slices.Contains(list, f.To) {
		f.To = list[min(1, len(list)-1)]
	}
	return f
}
