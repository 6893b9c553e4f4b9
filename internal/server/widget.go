package server

import "strings"

// DefaultWidgetSymbol is shown when no symbol is requested.
const DefaultWidgetSymbol = "NSE:NIFTY"

// WidgetConfig is the TradingView advanced-chart embed configuration.
type WidgetConfig struct {
	Autosize          bool     `json:"autosize"`
	Symbol            string   `json:"symbol"`
	Interval          string   `json:"interval"`
	Timezone          string   `json:"timezone"`
	Theme             string   `json:"theme"`
	Style             string   `json:"style"`
	Locale            string   `json:"locale"`
	EnablePublishing  bool     `json:"enable_publishing"`
	WithDateRanges    bool     `json:"withdateranges"`
	HideSideToolbar   bool     `json:"hide_side_toolbar"`
	AllowSymbolChange bool     `json:"allow_symbol_change"`
	Details           bool     `json:"details"`
	Hotlist           bool     `json:"hotlist"`
	Calendar          bool     `json:"calendar"`
	SupportHost       string   `json:"support_host"`
	Studies           []string `json:"studies"`
	ContainerID       string   `json:"container_id"`
}

// NewWidgetConfig builds the widget configuration for a quote symbol.
func NewWidgetConfig(symbol string) WidgetConfig {
	return WidgetConfig{
		Autosize:          true,
		Symbol:            WidgetSymbol(symbol),
		Interval:          "D",
		Timezone:          "Asia/Kolkata",
		Theme:             "light",
		Style:             "1",
		Locale:            "in",
		WithDateRanges:    true,
		AllowSymbolChange: true,
		Details:           true,
		Hotlist:           true,
		Calendar:          true,
		SupportHost:       "https://www.tradingview.com",
		Studies:           []string{"MASimple@tv-basicstudies", "RSI@tv-basicstudies"},
		ContainerID:       "tradingview_chart",
	}
}

var widgetIndices = map[string]string{
	"^NSEI":    "NSE:NIFTY",
	"^BSESN":   "BSE:SENSEX",
	"^NSEBANK": "NSE:BANKNIFTY",
}

// WidgetSymbol converts a quote symbol to the widget's EXCHANGE:TICKER form.
func WidgetSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return DefaultWidgetSymbol
	}
	if s, ok := widgetIndices[symbol]; ok {
		return s
	}
	switch {
	case strings.Contains(symbol, ":"):
		return symbol
	case strings.HasSuffix(symbol, ".NS"):
		return "NSE:" + strings.TrimSuffix(symbol, ".NS")
	case strings.HasSuffix(symbol, ".BO"):
		return "BSE:" + strings.TrimSuffix(symbol, ".BO")
	default:
		return "NSE:" + symbol
	}
}
