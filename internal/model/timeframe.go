package model

import "fmt"

// Timeframe names how much history a chart shows. Its value is the
// provider range parameter.
type Timeframe string

const (
	Timeframe1D  Timeframe = "1d"
	Timeframe5D  Timeframe = "5d"
	Timeframe1M  Timeframe = "1mo"
	Timeframe3M  Timeframe = "3mo"
	Timeframe6M  Timeframe = "6mo"
	TimeframeYTD Timeframe = "ytd"
	Timeframe1Y  Timeframe = "1y"
	Timeframe5Y  Timeframe = "5y"
	TimeframeMax Timeframe = "max"
)

// Timeframes lists every supported timeframe in display order.
var Timeframes = []Timeframe{
	Timeframe1D, Timeframe5D, Timeframe1M, Timeframe3M, Timeframe6M,
	TimeframeYTD, Timeframe1Y, Timeframe5Y, TimeframeMax,
}

var timeframeIntervals = map[Timeframe]string{
	Timeframe1D:  "5m",
	Timeframe5D:  "15m",
	Timeframe1M:  "1d",
	Timeframe3M:  "1d",
	Timeframe6M:  "1d",
	TimeframeYTD: "1d",
	Timeframe1Y:  "1wk",
	Timeframe5Y:  "1mo",
	TimeframeMax: "1mo",
}

// ParseTimeframe validates s against the supported set.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := timeframeIntervals[tf]; !ok {
		return "", fmt.Errorf("unknown timeframe %q", s)
	}
	return tf, nil
}

// Range is the provider range parameter.
func (t Timeframe) Range() string { return string(t) }

// Interval is the sampling interval statically mapped to t.
func (t Timeframe) Interval() string { return timeframeIntervals[t] }

// Intraday reports whether samples are finer than one day.
func (t Timeframe) Intraday() bool {
	return t == Timeframe1D || t == Timeframe5D
}

// LabelLayout is the time layout used for sample labels.
func (t Timeframe) LabelLayout() string {
	switch t {
	case Timeframe1D:
		return "15:04"
	case Timeframe5D:
		return "02 Jan 15:04"
	case Timeframe5Y, TimeframeMax:
		return "Jan 2006"
	default:
		return "02 Jan"
	}
}
