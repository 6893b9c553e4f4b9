package collector

import "errors"

var (
	// ErrTransport covers network failures and non-success HTTP statuses.
	ErrTransport = errors.New("quote transport error")
	// ErrNoData is returned when the provider payload carries no result.
	ErrNoData = errors.New("no quote data")
)

// UserMessage maps a quote error to the text shown in the chart error banner.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoData):
		return "No chart data is available for this symbol and timeframe."
	case errors.Is(err, ErrTransport):
		return "Could not load chart data. Check your connection and try refreshing."
	default:
		return "Something went wrong while loading the chart."
	}
}
