package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ChartAI/internal/model"
	"ChartAI/internal/relay"
)

// ist is the exchange time zone used for sample labels.
var ist = time.FixedZone("IST", 5*3600+30*60)

// YahooFetcher implements Fetcher using the Yahoo Finance chart API through
// the relay.
type YahooFetcher struct {
	Relay     *relay.Client
	ChartURL  string
	SymbolMap map[string]string // maps display aliases to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(r *relay.Client, chartURL string) *YahooFetcher {
	return &YahooFetcher{
		Relay:    r,
		ChartURL: strings.TrimRight(chartURL, "/"),
		SymbolMap: map[string]string{
			"NIFTY":     "^NSEI",
			"NIFTY50":   "^NSEI",
			"SENSEX":    "^BSESN",
			"BANKNIFTY": "^NSEBANK",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}

// ProviderURL is the chart endpoint for symbol and tf, before relay wrapping.
func (f *YahooFetcher) ProviderURL(symbol string, tf model.Timeframe) string {
	return fmt.Sprintf("%s/%s?interval=%s&range=%s",
		f.ChartURL, url.PathEscape(f.yahooSymbol(symbol)), tf.Interval(), tf.Range())
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchSamples(ctx context.Context, symbol string, tf model.Timeframe) ([]model.QuoteSample, error) {
	body, err := f.Relay.Get(ctx, f.ProviderURL(symbol, tf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return decodeChart(body, tf)
}

func decodeChart(body []byte, tf model.Timeframe) ([]model.QuoteSample, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrNoData, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	if len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: no timestamps", ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	layout := tf.LabelLayout()
	samples := make([]model.QuoteSample, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue // gap (holiday, halted session)
		}
		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = int64(math.Round(*quote.Volume[i]))
		}
		at := time.Unix(ts, 0).In(ist)
		samples = append(samples, model.QuoteSample{
			Time:   at,
			Price:  decimal.NewFromFloat(*quote.Close[i]).Round(2),
			Volume: volume,
			Label:  at.Format(layout),
		})
	}
	return samples, nil
}
