package mcptools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChartAI/internal/assistant"
	"ChartAI/internal/collector"
	"ChartAI/internal/model"
	"ChartAI/internal/search"
)

type stubQuotes struct {
	err error
	tf  model.Timeframe
}

func (s *stubQuotes) Collect(_ context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error) {
	s.tf = tf
	if s.err != nil {
		return nil, s.err
	}
	samples := make([]model.QuoteSample, 30)
	for i := range samples {
		samples[i] = model.QuoteSample{Price: decimal.NewFromInt(int64(100 + i)), Label: "L", Volume: 10}
	}
	return &model.ChartSnapshot{
		Symbol:     symbol,
		Timeframe:  tf,
		Samples:    samples,
		Indicators: model.Indicators{SMA20: 119.5, RSI14: 100, Change: 29, ChangePct: 29},
	}, nil
}

type stubAsker struct {
	reply string
	err   error
}

func (s stubAsker) Ask(context.Context, string) (string, error) { return s.reply, s.err }

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := h(t.Context(), request)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	return result.Content[0].(mcp.TextContent).Text, result.IsError
}

func TestGetQuotes(t *testing.T) {
	q := &stubQuotes{}
	text, isErr := call(t, handleGetQuotes(q), map[string]any{"symbol": "TCS.NS", "timeframe": "5d"})

	assert.False(t, isErr)
	assert.Equal(t, model.Timeframe5D, q.tf)
	assert.Contains(t, text, "# TCS.NS (5d, 15m bars)")
	assert.Contains(t, text, "| Last | 129.00 |")
	assert.Contains(t, text, "| Change | +29.00 (+29.00%) |")
	assert.Contains(t, text, "Last 20 samples")
}

func TestGetQuotes_DefaultTimeframe(t *testing.T) {
	q := &stubQuotes{}
	_, isErr := call(t, handleGetQuotes(q), map[string]any{"symbol": "^NSEI"})
	assert.False(t, isErr)
	assert.Equal(t, model.Timeframe1M, q.tf)
}

func TestGetQuotes_Errors(t *testing.T) {
	text, isErr := call(t, handleGetQuotes(&stubQuotes{}), map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "symbol parameter is required")

	text, isErr = call(t, handleGetQuotes(&stubQuotes{}), map[string]any{"symbol": "X", "timeframe": "2w"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown timeframe")

	text, isErr = call(t, handleGetQuotes(&stubQuotes{err: collector.ErrNoData}), map[string]any{"symbol": "X"})
	assert.True(t, isErr)
	assert.Equal(t, collector.UserMessage(collector.ErrNoData), text)
}

func TestSearchSymbols(t *testing.T) {
	h := handleSearchSymbols(search.New(nil))

	text, isErr := call(t, h, map[string]any{"query": "infosys"})
	assert.False(t, isErr)
	assert.Contains(t, text, "| INFY.NS |")

	text, _ = call(t, h, map[string]any{"query": "i"})
	assert.Equal(t, `No symbols match "i".`, text)
}

func TestAskAssistant(t *testing.T) {
	text, isErr := call(t, handleAskAssistant(stubAsker{reply: "RSI measures momentum."}), map[string]any{"question": "what is RSI?"})
	assert.False(t, isErr)
	assert.Equal(t, "RSI measures momentum.", text)

	text, isErr = call(t, handleAskAssistant(stubAsker{err: assistant.ErrRateLimit}), map[string]any{"question": "q"})
	assert.True(t, isErr)
	assert.Equal(t, assistant.MsgRateLimit, text)
}

func TestListTimeframes(t *testing.T) {
	text, isErr := call(t, handleListTimeframes(), nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "| 1d | 5m |")
	assert.Contains(t, text, "| max | 1mo |")
}

func TestRegister(t *testing.T) {
	s := server.NewMCPServer("chartai", "test", server.WithToolCapabilities(true))
	assert.NotPanics(t, func() {
		Register(s, &stubQuotes{}, search.New(nil), stubAsker{})
	})
}
