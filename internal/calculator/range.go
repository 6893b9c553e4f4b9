package calculator

import (
	"errors"
	"math"

	"ChartAI/internal/model"
)

// PriceRange returns the highest and lowest sample price.
func PriceRange(samples []model.QuoteSample) (high, low float64, err error) {
	if len(samples) == 0 {
		return 0, 0, errors.New("no samples provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, s := range samples {
		p := s.Price.InexactFloat64()
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return high, low, nil
}

// Change returns the absolute and percentage move from the first to the
// last sample.
func Change(samples []model.QuoteSample) (abs, pct float64, err error) {
	if len(samples) == 0 {
		return 0, 0, errors.New("no samples provided")
	}
	first := samples[0].Price
	last := samples[len(samples)-1].Price
	diff := last.Sub(first)
	abs = diff.InexactFloat64()
	if first.IsZero() {
		return abs, 0, nil
	}
	pct = diff.Div(first).Shift(2).Round(2).InexactFloat64()
	return abs, pct, nil
}
