package collector

import (
	"context"

	"ChartAI/internal/model"
)

// Fetcher defines the interface for fetching chart samples.
type Fetcher interface {
	FetchSamples(ctx context.Context, symbol string, tf model.Timeframe) ([]model.QuoteSample, error)
	Name() string
}
