package model

import "testing"

func TestTimeframe_IntervalMapping(t *testing.T) {
	tests := []struct {
		tf       Timeframe
		interval string
	}{
		{Timeframe1D, "5m"},
		{Timeframe5D, "15m"},
		{Timeframe1M, "1d"},
		{Timeframe3M, "1d"},
		{Timeframe6M, "1d"},
		{TimeframeYTD, "1d"},
		{Timeframe1Y, "1wk"},
		{Timeframe5Y, "1mo"},
		{TimeframeMax, "1mo"},
	}
	if len(Timeframes) != len(tests) {
		t.Fatalf("expected %d timeframes, got %d", len(tests), len(Timeframes))
	}
	for _, tt := range tests {
		if got := tt.tf.Interval(); got != tt.interval {
			t.Errorf("%s: expected interval %q, got %q", tt.tf, tt.interval, got)
		}
		if got := tt.tf.Range(); got != string(tt.tf) {
			t.Errorf("%s: expected range %q, got %q", tt.tf, tt.tf, got)
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	for _, tf := range Timeframes {
		got, err := ParseTimeframe(string(tf))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tf, err)
		}
		if got != tf {
			t.Errorf("expected %s, got %s", tf, got)
		}
	}
	if _, err := ParseTimeframe("2w"); err == nil {
		t.Error("expected error for unknown timeframe")
	}
}
