package mcptools

import (
	"fmt"
	"strings"

	"ChartAI/internal/model"
)

// maxSampleRows caps the price table; the studies cover the full series.
const maxSampleRows = 20

func formatSnapshot(s *model.ChartSnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s (%s, %s bars)\n\n", s.Symbol, s.Timeframe, s.Timeframe.Interval()))
	if len(s.Samples) == 0 {
		sb.WriteString("No samples.\n")
		return sb.String()
	}

	ind := s.Indicators
	sign := ""
	if ind.Change > 0 {
		sign = "+"
	}
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Last | %s |\n", s.LastPrice().StringFixed(2)))
	sb.WriteString(fmt.Sprintf("| Change | %s%.2f (%s%.2f%%) |\n", sign, ind.Change, sign, ind.ChangePct))
	sb.WriteString(fmt.Sprintf("| High | %.2f |\n", ind.High))
	sb.WriteString(fmt.Sprintf("| Low | %.2f |\n", ind.Low))
	sb.WriteString(fmt.Sprintf("| SMA 20 | %.2f |\n", ind.SMA20))
	sb.WriteString(fmt.Sprintf("| RSI 14 | %.2f |\n", ind.RSI14))
	sb.WriteString(fmt.Sprintf("| Samples | %d |\n", len(s.Samples)))
	if !s.LastUpdated.IsZero() {
		sb.WriteString(fmt.Sprintf("| Updated | %s |\n", s.LastUpdated.Format("2006-01-02 15:04:05")))
	}

	samples := s.Samples
	if len(samples) > maxSampleRows {
		samples = samples[len(samples)-maxSampleRows:]
		sb.WriteString(fmt.Sprintf("\nLast %d samples:\n", maxSampleRows))
	}
	sb.WriteString("\n| Time | Price | Volume |\n")
	sb.WriteString("|------|-------|--------|\n")
	for _, q := range samples {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", q.Label, q.Price.StringFixed(2), q.Volume))
	}
	return sb.String()
}

func formatSymbols(query string, entries []model.SymbolEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No symbols match %q.", query)
	}
	var sb strings.Builder
	sb.WriteString("| Symbol | Name |\n")
	sb.WriteString("|--------|------|\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", e.Symbol, e.DisplayName))
	}
	return sb.String()
}
