package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnalysis_AllSections(t *testing.T) {
	reply := `**TREND:** Strong uptrend over the last five sessions.
**RESISTANCE:** Around 23,400 where price is consolidating.
**SUPPORT:** Near 23,200.
**PATTERNS**: Higher highs and higher lows.
**VOLUME:** Expanding on green candles.
**EDUCATION:** Support and resistance flip after a breakout.`

	got := ParseAnalysis(reply)

	assert.Equal(t, "Strong uptrend over the last five sessions.", got.Trend)
	assert.Equal(t, "Around 23,400 where price is consolidating.", got.Resistance)
	assert.Equal(t, "Near 23,200.", got.Support)
	assert.Equal(t, "Higher highs and higher lows.", got.Patterns)
	assert.Equal(t, "Expanding on green candles.", got.Volume)
	assert.Equal(t, "Support and resistance flip after a breakout.", got.Education)
	assert.Equal(t, Disclaimer, got.Disclaimer)
}

func TestParseAnalysis_MissingVolume(t *testing.T) {
	reply := "TREND: Sideways.\nRESISTANCE: 480.\nSUPPORT: 455.\nPATTERNS: Range.\nEDUCATION: Ranges end in breakouts."

	got := ParseAnalysis(reply)

	assert.Equal(t, Placeholder, got.Volume)
	assert.Equal(t, "Sideways.", got.Trend)
	assert.Equal(t, "480.", got.Resistance)
	assert.Equal(t, "455.", got.Support)
	assert.Equal(t, "Range.", got.Patterns)
	assert.Equal(t, "Ranges end in breakouts.", got.Education)
}

func TestParseAnalysis_Unstructured(t *testing.T) {
	got := ParseAnalysis("I cannot see a chart in this image.")

	for _, field := range []string{got.Trend, got.Resistance, got.Support, got.Patterns, got.Volume, got.Education} {
		assert.Equal(t, Placeholder, field)
	}
}

func TestParseAnalysis_FirstOccurrenceWins(t *testing.T) {
	got := ParseAnalysis("TREND: Up.\nTREND: Down.\nSUPPORT:   \n")

	assert.Equal(t, "Up.", got.Trend)
	assert.Equal(t, Placeholder, got.Support)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, wantW, wantH int
	}{
		{800, 600, 800, 600},
		{1024, 1024, 1024, 1024},
		{2048, 1024, 1024, 512},
		{900, 3000, 307, 1024},
		{5000, 2, 1024, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, MaxImageSide)
		assert.Equal(t, tt.wantW, w, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "%dx%d", tt.w, tt.h)
	}
}
