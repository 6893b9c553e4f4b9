package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"ChartAI/internal/app"
	"ChartAI/internal/config"
	"ChartAI/internal/logging"
	"ChartAI/internal/mcptools"
)

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "configs/config.yaml", "path to the YAML or TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol; logs go to stderr.
	logging.Setup(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	a := app.New(cfg)
	defer a.Close()

	mcpServer := server.NewMCPServer("chartai", version, server.WithToolCapabilities(true))
	mcptools.Register(mcpServer, a.Collector, a.Searcher, a.Assistant)

	log.Info().Str("version", version).Msg("MCP stdio server starting")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error().Err(err).Msg("stdio server error")
		a.Close()
		os.Exit(1)
	}
}
