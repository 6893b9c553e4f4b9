package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSample is one point of a price chart.
type QuoteSample struct {
	Time   time.Time       `json:"time"`
	Price  decimal.Decimal `json:"price"`
	Volume int64           `json:"volume"`
	Label  string          `json:"label"`
}

// Indicators holds the studies drawn over a chart.
type Indicators struct {
	SMA20     float64 `json:"sma20"`
	RSI14     float64 `json:"rsi14"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`

	// SMA20Series is the moving-average overlay aligned with the last
	// len(SMA20Series) samples.
	SMA20Series []float64 `json:"sma20_series,omitempty"`
}

// ChartSnapshot is everything the dashboard needs to draw one chart.
type ChartSnapshot struct {
	Symbol      string        `json:"symbol"`
	Timeframe   Timeframe     `json:"timeframe"`
	Samples     []QuoteSample `json:"samples"`
	Indicators  Indicators    `json:"indicators"`
	LastUpdated time.Time     `json:"last_updated"`
}

// LastPrice returns the most recent sample price, or zero when empty.
func (s *ChartSnapshot) LastPrice() decimal.Decimal {
	if len(s.Samples) == 0 {
		return decimal.Zero
	}
	return s.Samples[len(s.Samples)-1].Price
}
