// Package mcptools exposes the quote, search and assistant operations as MCP
// tools.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ChartAI/internal/assistant"
	"ChartAI/internal/collector"
	"ChartAI/internal/model"
)

// Quotes runs one quote request.
type Quotes interface {
	Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error)
}

// Symbols resolves a search query.
type Symbols interface {
	Search(ctx context.Context, query string) []model.SymbolEntry
}

// Asker answers a free-text market question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Register adds every tool to s.
func Register(s *server.MCPServer, q Quotes, sym Symbols, a Asker) {
	s.AddTool(createGetQuotesTool(), handleGetQuotes(q))
	s.AddTool(createSearchSymbolsTool(), handleSearchSymbols(sym))
	s.AddTool(createAskAssistantTool(), handleAskAssistant(a))
	s.AddTool(createListTimeframesTool(), handleListTimeframes())
}

func createGetQuotesTool() mcp.Tool {
	return mcp.NewTool("get_quotes",
		mcp.WithDescription("Get the price series and SMA/RSI studies for an NSE/BSE symbol (e.g. '^NSEI', 'RELIANCE.NS')."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Quote symbol, e.g. '^NSEI', '^BSESN', 'TCS.NS'")),
		mcp.WithString("timeframe", mcp.Description("One of 1d, 5d, 1mo, 3mo, 6mo, ytd, 1y, 5y, max (default: 1mo)")),
	)
}

func createSearchSymbolsTool() mcp.Tool {
	return mcp.NewTool("search_symbols",
		mcp.WithDescription("Search Indian-market symbols by ticker or company name. Queries shorter than 2 characters return nothing."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Ticker or company name fragment")),
	)
}

func createAskAssistantTool() mcp.Tool {
	return mcp.NewTool("ask_assistant",
		mcp.WithDescription("Ask the market assistant a general, educational question. Not financial advice."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to ask")),
	)
}

func createListTimeframesTool() mcp.Tool {
	return mcp.NewTool("list_timeframes",
		mcp.WithDescription("List the supported chart timeframes and their sampling intervals."),
	)
}

func textResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func errorResult(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

func handleGetQuotes(q Quotes) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || strings.TrimSpace(symbol) == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		tf := model.Timeframe1M
		if v := request.GetString("timeframe", ""); v != "" {
			if tf, err = model.ParseTimeframe(v); err != nil {
				return errorResult(fmt.Sprintf("Error: %v", err)), nil
			}
		}

		snap, err := q.Collect(ctx, strings.TrimSpace(symbol), tf)
		if err != nil {
			return errorResult(collector.UserMessage(err)), nil
		}
		return textResult(formatSnapshot(snap)), nil
	}
}

func handleSearchSymbols(sym Symbols) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return errorResult("Error: query parameter is required"), nil
		}
		return textResult(formatSymbols(query, sym.Search(ctx, query))), nil
	}
}

func handleAskAssistant(a Asker) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil || strings.TrimSpace(question) == "" {
			return errorResult("Error: question parameter is required"), nil
		}
		reply, err := a.Ask(ctx, question)
		if err != nil {
			return errorResult(assistant.UserMessage(err)), nil
		}
		return textResult(reply), nil
	}
}

func handleListTimeframes() server.ToolHandlerFunc {
	return func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		sb.WriteString("| Timeframe | Interval |\n")
		sb.WriteString("|-----------|----------|\n")
		for _, tf := range model.Timeframes {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", tf.Range(), tf.Interval()))
		}
		return textResult(sb.String()), nil
	}
}
