// Package app wires the quote, search, assistant and recorder components
// from a loaded config.
package app

import (
	"time"

	"github.com/phuslu/log"

	"ChartAI/internal/assistant"
	"ChartAI/internal/collector"
	"ChartAI/internal/config"
	"ChartAI/internal/httpx"
	"ChartAI/internal/recorder"
	"ChartAI/internal/relay"
	"ChartAI/internal/search"
)

// upstreamTimeout bounds every outbound quote, search and assistant call.
const upstreamTimeout = 30 * time.Second

// App holds the components shared by the dashboard and the MCP server.
type App struct {
	Config    *config.Config
	Collector *collector.Collector
	Searcher  *search.Searcher
	Assistant *assistant.Client
	Recorder  recorder.Recorder
}

// New builds the components. A recorder that fails to open falls back to
// the no-op recorder.
func New(cfg *config.Config) *App {
	client := httpx.New(upstreamTimeout, cfg.Proxy)
	r := relay.New(cfg.Relay.BaseURL, client)

	fetcher := collector.NewYahooFetcher(r, cfg.Quote.ChartURL)
	log.Info().Str("source", fetcher.Name()).Str("relay", cfg.Relay.BaseURL).Msg("quote source configured")

	remote := search.NewRemoteSearcher(r, cfg.Search.URL, time.Duration(cfg.Search.CacheTTLSec)*time.Second)

	ai := assistant.New(cfg.Assistant.APIKey,
		assistant.WithEndpoint(cfg.Assistant.Endpoint),
		assistant.WithHTTPClient(client),
		assistant.WithMaxTokens(cfg.Assistant.TextMaxTokens, cfg.Assistant.ImageMaxTokens),
	)
	if !ai.HasAPIKey() {
		log.Warn().Msg("no assistant API key configured; set one with /apikey")
	}

	return &App{
		Config:    cfg,
		Collector: collector.NewCollector(fetcher),
		Searcher:  search.New(remote),
		Assistant: ai,
		Recorder:  openRecorder(cfg.Database.SQLitePath),
	}
}

func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

// Close releases the recorder.
func (a *App) Close() error {
	return a.Recorder.Close()
}
