package services

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// finite is the single place where non-finite arithmetic results are
// eliminated: NaN and ±Inf become 0.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// mean returns sum/n, or 0 when there is nothing to average.
func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return finite(sum / float64(n))
}

// parseNumber coerces a stored exact-decimal value to float64.
// present is false for an absent value; err is set when a value is present
// but not numeric.
func parseNumber(raw string) (value float64, present bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, true, eris.Wrapf(err, "not a number: %q", raw)
	}
	f, _ := d.Float64()
	return finite(f), true, nil
}

// accumulator collects a running sum for one group.
type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.n++
}

func (a *accumulator) mean() float64 {
	return mean(a.sum, a.n)
}
