package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"

	"ChartAI/internal/calculator"
	"ChartAI/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Count   int
	Samples []model.QuoteSample
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSamples(_ context.Context, _ string, tf model.Timeframe) ([]model.QuoteSample, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Samples != nil {
		return m.Samples, nil
	}
	count := m.Count
	if count == 0 {
		count = 30
	}
	return generateMockSamples(m.Price, count, tf), nil
}

func generateMockSamples(basePrice float64, count int, tf model.Timeframe) []model.QuoteSample {
	samples := make([]model.QuoteSample, count)
	step := 24 * time.Hour
	if tf.Intraday() {
		step = 5 * time.Minute
	}
	start := time.Now().In(ist).Add(-time.Duration(count) * step)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		at := start.Add(time.Duration(i) * step)
		samples[i] = model.QuoteSample{
			Time:   at,
			Price:  decimal.NewFromFloat(p).Round(2),
			Volume: 1000000,
			Label:  at.Format(tf.LabelLayout()),
		}
	}
	return samples
}

// Collector orchestrates sample fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, now: time.Now}
}

// Collect fetches samples for symbol over tf and computes the chart studies.
// A study that cannot be computed degrades to a neutral value.
func (c *Collector) Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error) {
	samples, err := c.Fetcher.FetchSamples(ctx, symbol, tf)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, tf, err)
	}

	snap := &model.ChartSnapshot{
		Symbol:    symbol,
		Timeframe: tf,
		Samples:   samples,
	}
	if len(samples) == 0 {
		snap.LastUpdated = c.now()
		return snap, nil
	}

	closes := calculator.Closes(samples)
	last := closes[len(closes)-1]
	ind := &snap.Indicators

	// SMA20
	if sma, err := calculator.CalculateSMA(closes, 20); err != nil {
		log.Warn().Str("symbol", symbol).Err(err).Msg("SMA20 calculation failed, using last price")
		ind.SMA20 = last
	} else {
		ind.SMA20 = sma
		ind.SMA20Series, _ = calculator.SMASeries(closes, 20)
	}

	// RSI14
	if rsi, err := calculator.CalculateRSI(closes, 14); err != nil {
		log.Warn().Str("symbol", symbol).Err(err).Msg("RSI14 calculation failed, defaulting to 50")
		ind.RSI14 = 50
	} else {
		ind.RSI14 = rsi
	}

	// Range
	if h, l, err := calculator.PriceRange(samples); err != nil {
		log.Warn().Str("symbol", symbol).Err(err).Msg("range calculation failed")
		ind.High, ind.Low = last, last
	} else {
		ind.High, ind.Low = h, l
	}

	// Change
	if abs, pct, err := calculator.Change(samples); err == nil {
		ind.Change, ind.ChangePct = abs, pct
	}

	snap.LastUpdated = c.now()
	return snap, nil
}
