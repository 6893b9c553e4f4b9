package assistant

import "fmt"

// Section labels requested from, and extracted out of, a chart analysis.
const (
	LabelTrend      = "TREND"
	LabelResistance = "RESISTANCE"
	LabelSupport    = "SUPPORT"
	LabelPatterns   = "PATTERNS"
	LabelVolume     = "VOLUME"
	LabelEducation  = "EDUCATION"
)

// Labels lists the analysis sections in reply order.
var Labels = []string{LabelTrend, LabelResistance, LabelSupport, LabelPatterns, LabelVolume, LabelEducation}

const textTemplate = `You are a friendly stock market educator focused on Indian markets (NSE and BSE).
Answer the question below for educational purposes only. Do not give personalised
buy or sell recommendations. Keep the answer under 150 words and use plain language.

Question: %s`

const analysisPrompt = `You are a technical analysis educator. The attached image is a screenshot of a
stock market chart. Describe what the chart shows for educational purposes only.
Reply with exactly these six sections, each starting on a new line with its label:

TREND: the overall direction and its strength.
RESISTANCE: key price levels acting as resistance.
SUPPORT: key price levels acting as support.
PATTERNS: any recognisable chart or candlestick patterns.
VOLUME: what the volume bars suggest, if visible.
EDUCATION: one concept a beginner can learn from this chart.

Keep each section to two or three sentences. Do not give buy or sell advice.`

const selfTestPrompt = "Reply with the single word OK."

func textPrompt(question string) string {
	return fmt.Sprintf(textTemplate, question)
}
