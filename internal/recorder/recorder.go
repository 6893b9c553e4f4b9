package recorder

import "time"

// RefreshEvent holds one chart refresh outcome.
type RefreshEvent struct {
	Symbol      string
	Timeframe   string
	Trigger     string // "manual", "symbol", "timeframe", "cron", "mount"
	Generation  uint64
	SampleCount int
	LastPrice   float64
	Stale       bool // a newer refresh had already started; result discarded
	Err         string
}

// AssistantEvent holds one assistant call outcome.
type AssistantEvent struct {
	Path    string // "text", "image", "selftest"
	Outcome string // "ok" or an error class
	Latency time.Duration
}

// Recorder persists operational history for analysis.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	RecordAssistant(evt *AssistantEvent) error
	Close() error
}
