package assistant

import (
	"regexp"
	"strings"

	"ChartAI/internal/model"
)

const (
	// Placeholder fills a section the reply did not contain.
	Placeholder = "Information not available"
	// Disclaimer is attached to every analysis.
	Disclaimer = "This analysis is for educational purposes only and is not financial advice. Always do your own research before investing."
)

// labelPattern matches "TREND:", "**TREND:**" and "**TREND**:".
var labelPattern = regexp.MustCompile(`\**\b(TREND|RESISTANCE|SUPPORT|PATTERNS|VOLUME|EDUCATION)\b\**\s*:\**`)

// ParseAnalysis extracts the labelled sections from reply. Each section runs
// from its label to the next recognised label or the end of the text.
func ParseAnalysis(reply string) model.Analysis {
	sections := make(map[string]string, len(Labels))
	matches := labelPattern.FindAllStringSubmatchIndex(reply, -1)
	for i, m := range matches {
		label := reply[m[2]:m[3]]
		if _, seen := sections[label]; seen {
			continue
		}
		end := len(reply)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections[label] = cleanSection(reply[m[1]:end])
	}

	get := func(label string) string {
		if s := sections[label]; s != "" {
			return s
		}
		return Placeholder
	}
	return model.Analysis{
		Trend:      get(LabelTrend),
		Resistance: get(LabelResistance),
		Support:    get(LabelSupport),
		Patterns:   get(LabelPatterns),
		Volume:     get(LabelVolume),
		Education:  get(LabelEducation),
		Disclaimer: Disclaimer,
	}
}

func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "-#* \n")
	return strings.TrimSpace(s)
}
