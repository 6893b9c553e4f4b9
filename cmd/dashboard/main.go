package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"

	"ChartAI/internal/app"
	"ChartAI/internal/capture"
	"ChartAI/internal/chat"
	"ChartAI/internal/config"
	"ChartAI/internal/httpx"
	"ChartAI/internal/logging"
	"ChartAI/internal/model"
	"ChartAI/internal/notifier"
	"ChartAI/internal/scheduler"
	"ChartAI/internal/server"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("ChartAI dashboard starting")

	a := app.New(cfg)
	defer a.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mount the chart view and start the once-a-minute refresh
	refresher, err := scheduler.NewRefresher(ctx, a.Collector, a.Recorder, cfg.Quote.RefreshCron)
	if err != nil {
		log.Fatal().Err(err).Msg("init refresher")
	}
	tf, _ := model.ParseTimeframe(cfg.Quote.DefaultTimeframe)
	view, err := refresher.Mount(ctx, cfg.Quote.DefaultSymbol, tf)
	if err != nil {
		log.Fatal().Err(err).Msg("mount chart view")
	}
	if st := view.State(); st.Error != "" {
		log.Warn().Str("error", st.Error).Msg("initial chart load failed; the next refresh will retry")
	}
	refresher.Start()
	defer refresher.Stop()

	capturer := capture.NewChromeCapturer(capture.Options{
		URL:      cfg.Capture.URL,
		Selector: cfg.Capture.Selector,
		Width:    cfg.Capture.Width,
		Height:   cfg.Capture.Height,
		Timeout:  time.Duration(cfg.Capture.TimeoutSec) * time.Second,
	})
	session := chat.NewSession(a.Assistant, capturer, a.Recorder)

	srv, err := server.New(cfg.Server.Addr, server.Deps{
		Quotes:  a.Collector,
		Symbols: a.Searcher,
		View:    view,
		Session: session,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init server")
	}

	// Telegram shares the dashboard's chat session
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, httpx.New(30*time.Second, cfg.Proxy))
		go tn.StartPolling(ctx, notifier.SessionHandler(session))
		log.Info().Msg("telegram polling started")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info().Str("addr", cfg.Server.Addr).Msg("ChartAI is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}

	cancel()
	refresher.Unmount(view)
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("ChartAI stopped")
}
