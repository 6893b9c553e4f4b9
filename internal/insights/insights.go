// Package insights serves the static expert commentary shown next to the
// chart for each headline index.
package insights

import (
	"errors"
	"strings"
)

// ErrUnknownIndex is returned for an index without commentary.
var ErrUnknownIndex = errors.New("unknown index")

// Insight is one expert's view on an index.
type Insight struct {
	Expert string `json:"expert"`
	Title  string `json:"title"`
	Advice string `json:"advice"`
	Date   string `json:"date"`
}

// Index is a tab of the insights panel.
type Index struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Indices lists the tabs in display order.
var Indices = []Index{
	{Key: "nifty", Label: "NIFTY 50"},
	{Key: "sensex", Label: "SENSEX"},
}

var byIndex = map[string][]Insight{
	"nifty": {
		{
			Expert: "Dr. Priya Sharma",
			Title:  "Market Strategist",
			Advice: "NIFTY 50 is showing strong technical support at 24,500 levels. Investors could consider accumulating quality large-caps in the IT and banking sectors during market dips. The short-term outlook remains bullish with targets of 25,800 in the next quarter.",
			Date:   "March 28, 2025",
		},
		{
			Expert: "Rajiv Mehta",
			Title:  "Chief Investment Officer",
			Advice: "With Q4 earnings season approaching, NIFTY is likely to experience sector rotation. Consider reducing exposure to overvalued consumer stocks and increasing allocation to infrastructure and energy sectors which are trading at attractive valuations.",
			Date:   "March 30, 2025",
		},
		{
			Expert: "Ananya Desai",
			Title:  "Technical Analyst",
			Advice: "NIFTY has formed a bullish consolidation pattern after breaking out from its previous resistance. The 50-day moving average is trending upward, suggesting continued momentum. Risk-averse investors should wait for pullbacks to 24,300 for entry points.",
			Date:   "March 31, 2025",
		},
	},
	"sensex": {
		{
			Expert: "Vikram Joshi",
			Title:  "Equity Research Head",
			Advice: "SENSEX is trading at a P/E of 22.5, slightly above historical averages. However, with expected earnings growth of 15% for FY26, valuations remain reasonable. Focus on high-quality financial stocks which may benefit from the credit growth cycle.",
			Date:   "March 29, 2025",
		},
		{
			Expert: "Meera Patel",
			Title:  "Portfolio Manager",
			Advice: "SENSEX looks overbought in the short term with RSI above 70. Investors should exercise caution and consider partial profit booking. Healthy correction of 5-7% could present better entry opportunities in the coming weeks.",
			Date:   "March 30, 2025",
		},
		{
			Expert: "Sunil Kapoor",
			Title:  "Economic Advisor",
			Advice: "Recent policy announcements and stable macroeconomic indicators support a positive long-term outlook for SENSEX. Companies with strong export potential and low debt may outperform as interest rates stabilize. Target 86,000 by year-end.",
			Date:   "March 31, 2025",
		},
	},
}

// For returns the insights for index ("nifty" or "sensex", any case).
func For(index string) ([]Insight, error) {
	list, ok := byIndex[strings.ToLower(strings.TrimSpace(index))]
	if !ok {
		return nil, ErrUnknownIndex
	}
	out := make([]Insight, len(list))
	copy(out, list)
	return out, nil
}
