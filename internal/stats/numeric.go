// Package stats turns reporting rows into the per-person metric tables shown
// on the dashboard: CSM onboarding and retention, setter and closer
// performance, and VA delivery throughput.
//
// Everything in this package is pure. Callers fetch rows, pick a date range
// and a roster, and get back rows plus a totals row.
package stats

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Percent is n/d as a percentage rounded to two decimals, or 0 when d is 0.
func Percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return Round2(float64(n) / float64(d) * 100)
}

// Ratio is n/d rounded to two decimals, or 0 when d is 0.
func Ratio(n float64, d int) float64 {
	if d == 0 {
		return 0
	}
	return Round2(n / float64(d))
}

// Weighted is a value with its weight.
type Weighted struct {
	Value  float64
	Weight int
}

// WeightedAverage is Σ(v·w)/Σw rounded to two decimals, 0 when Σw is 0.
func WeightedAverage(pairs []Weighted) float64 {
	var sum float64
	var total int
	for _, p := range pairs {
		if p.Weight <= 0 {
			continue
		}
		sum += p.Value * float64(p.Weight)
		total += p.Weight
	}
	if total == 0 {
		return 0
	}
	return Round2(sum / float64(total))
}

func valueOr0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
