package stopwatch

import (
	"fmt"
	"strings"
)

// Layout controls how the sub-minute remainder is split into the SS and FF
// fields of the display.
type Layout struct {
	Name            string
	SecondDivisor   int64
	FractionModulus int64
	FractionDivisor int64
}

var (
	// LayoutCentiseconds renders whole seconds and hundredths of a second.
	LayoutCentiseconds = Layout{Name: "centiseconds", SecondDivisor: 1000, FractionModulus: 1000, FractionDivisor: 10}
	// LayoutLegacy keeps the divisors of the first stopwatch release (SS counts
	// 200ms steps, FF is ms mod 100). Kept until product decides which one ships.
	LayoutLegacy = Layout{Name: "legacy", SecondDivisor: 200, FractionModulus: 100, FractionDivisor: 1}
)

// ParseLayout resolves a layout by name. Empty means centiseconds.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutCentiseconds.Name:
		return LayoutCentiseconds, nil
	case LayoutLegacy.Name:
		return LayoutLegacy, nil
	default:
		return Layout{}, fmt.Errorf("unknown stopwatch layout %q", name)
	}
}

// Format renders elapsedMs as MM:SS:FF using the centisecond layout.
func Format(elapsedMs int64) string {
	return LayoutCentiseconds.Format(elapsedMs)
}

// Format renders elapsedMs as MM:SS:FF. Every field is padded to two digits;
// minutes past 99 widen instead of wrapping.
func (l Layout) Format(elapsedMs int64) string {
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	minutes := elapsedMs / 60000
	seconds := (elapsedMs % 60000) / l.SecondDivisor
	fraction := (elapsedMs % l.FractionModulus) / l.FractionDivisor
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, fraction)
}
