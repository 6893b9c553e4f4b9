package server

import (
	"embed"
	"net/http"
)

//go:embed templates/index.html
var templates embed.FS

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/quotes", s.handleQuotes)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/symbols", s.handleSymbols)
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("POST /api/chart", s.handleChartSwitch)
	mux.HandleFunc("POST /api/chart/refresh", s.handleChartRefresh)
	mux.HandleFunc("GET /api/chat/messages", s.handleMessages)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/widget", s.handleWidget)
	mux.HandleFunc("GET /api/insights", s.handleInsights)

	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	sendError(w, "not found", http.StatusNotFound)
}
