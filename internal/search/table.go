package search

import "ChartAI/internal/model"

// knownSymbols is the compiled-in symbol table, in display priority order.
var knownSymbols = []model.SymbolEntry{
	{Symbol: "^NSEI", DisplayName: "NIFTY 50"},
	{Symbol: "^BSESN", DisplayName: "S&P BSE SENSEX"},
	{Symbol: "^NSEBANK", DisplayName: "NIFTY Bank"},
	{Symbol: "^CNXIT", DisplayName: "NIFTY IT"},
	{Symbol: "RELIANCE.NS", DisplayName: "Reliance Industries Ltd."},
	{Symbol: "TCS.NS", DisplayName: "Tata Consultancy Services Ltd."},
	{Symbol: "HDFCBANK.NS", DisplayName: "HDFC Bank Ltd."},
	{Symbol: "INFY.NS", DisplayName: "Infosys Ltd."},
	{Symbol: "ICICIBANK.NS", DisplayName: "ICICI Bank Ltd."},
	{Symbol: "HINDUNILVR.NS", DisplayName: "Hindustan Unilever Ltd."},
	{Symbol: "ITC.NS", DisplayName: "ITC Ltd."},
	{Symbol: "SBIN.NS", DisplayName: "State Bank of India"},
	{Symbol: "BHARTIARTL.NS", DisplayName: "Bharti Airtel Ltd."},
	{Symbol: "KOTAKBANK.NS", DisplayName: "Kotak Mahindra Bank Ltd."},
	{Symbol: "LT.NS", DisplayName: "Larsen & Toubro Ltd."},
	{Symbol: "AXISBANK.NS", DisplayName: "Axis Bank Ltd."},
	{Symbol: "BAJFINANCE.NS", DisplayName: "Bajaj Finance Ltd."},
	{Symbol: "ASIANPAINT.NS", DisplayName: "Asian Paints Ltd."},
	{Symbol: "MARUTI.NS", DisplayName: "Maruti Suzuki India Ltd."},
	{Symbol: "TATAMOTORS.NS", DisplayName: "Tata Motors Ltd."},
	{Symbol: "TATASTEEL.NS", DisplayName: "Tata Steel Ltd."},
	{Symbol: "SUNPHARMA.NS", DisplayName: "Sun Pharmaceutical Industries Ltd."},
	{Symbol: "WIPRO.NS", DisplayName: "Wipro Ltd."},
	{Symbol: "HCLTECH.NS", DisplayName: "HCL Technologies Ltd."},
	{Symbol: "ADANIENT.NS", DisplayName: "Adani Enterprises Ltd."},
	{Symbol: "TITAN.NS", DisplayName: "Titan Company Ltd."},
	{Symbol: "ULTRACEMCO.NS", DisplayName: "UltraTech Cement Ltd."},
	{Symbol: "NTPC.NS", DisplayName: "NTPC Ltd."},
	{Symbol: "POWERGRID.NS", DisplayName: "Power Grid Corporation of India Ltd."},
	{Symbol: "ONGC.NS", DisplayName: "Oil & Natural Gas Corporation Ltd."},
	{Symbol: "RELIANCE.BO", DisplayName: "Reliance Industries Ltd. (BSE)"},
	{Symbol: "TCS.BO", DisplayName: "Tata Consultancy Services Ltd. (BSE)"},
}

// Known returns a copy of the compiled-in symbol table.
func Known() []model.SymbolEntry {
	out := make([]model.SymbolEntry, len(knownSymbols))
	copy(out, knownSymbols)
	return out
}
