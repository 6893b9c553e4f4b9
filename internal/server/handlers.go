package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"ChartAI/internal/collector"
	"ChartAI/internal/insights"
	"ChartAI/internal/model"
	"ChartAI/internal/scheduler"
	"ChartAI/internal/search"
)

// pageData feeds the dashboard template.
type pageData struct {
	Widget     WidgetConfig
	Timeframes []model.Timeframe
	State      scheduler.ViewState
	Indices    []insights.Index
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	st := s.deps.View.State()
	data := pageData{
		Widget:     NewWidgetConfig(st.Symbol),
		Timeframes: model.Timeframes,
		State:      st,
		Indices:    insights.Indices,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render dashboard page")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// quoteStatus maps a quote error to an HTTP status.
func quoteStatus(err error) int {
	switch {
	case errors.Is(err, collector.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, collector.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseTimeframe reads the timeframe parameter, defaulting to one month.
func parseTimeframe(s string) (model.Timeframe, error) {
	if s == "" {
		return model.Timeframe1M, nil
	}
	return model.ParseTimeframe(s)
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		sendError(w, "symbol is required", http.StatusBadRequest)
		return
	}
	tf, err := parseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.deps.Quotes.Collect(r.Context(), symbol, tf)
	if err != nil {
		log.Warn().Str("symbol", symbol).Str("timeframe", string(tf)).Err(err).Msg("quote request failed")
		sendError(w, collector.UserMessage(err), quoteStatus(err))
		return
	}
	sendJSON(w, snap, http.StatusOK)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results := s.deps.Symbols.Search(r.Context(), r.URL.Query().Get("q"))
	sendJSON(w, results, http.StatusOK)
}

// handleSymbols lists the built-in symbol table for the search suggestions.
func (s *Server) handleSymbols(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, search.Known(), http.StatusOK)
}

func (s *Server) handleChart(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, s.deps.View.State(), http.StatusOK)
}

// chartRequest switches the mounted chart. Empty fields keep their value.
type chartRequest struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
}

func (s *Server) handleChartSwitch(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var tf model.Timeframe
	if req.Timeframe != "" {
		parsed, err := model.ParseTimeframe(req.Timeframe)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		tf = parsed
	}
	s.respondRefresh(w, s.deps.View.Switch(r.Context(), strings.TrimSpace(req.Symbol), tf))
}

func (s *Server) handleChartRefresh(w http.ResponseWriter, r *http.Request) {
	s.respondRefresh(w, s.deps.View.Refresh(r.Context(), scheduler.TriggerManual))
}

// respondRefresh writes the view state after a refresh. A superseded
// refresh is not an error for the caller: the newer one owns the view.
func (s *Server) respondRefresh(w http.ResponseWriter, err error) {
	switch {
	case err == nil, scheduler.IsStale(err):
		sendJSON(w, s.deps.View.State(), http.StatusOK)
	case errors.Is(err, scheduler.ErrUnmounted):
		sendError(w, "chart is not mounted", http.StatusConflict)
	default:
		sendError(w, collector.UserMessage(err), quoteStatus(err))
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, s.deps.Session.Messages(), http.StatusOK)
}

// chatRequest is one chat turn.
type chatRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(w, "text is required", http.StatusBadRequest)
		return
	}
	sendJSON(w, s.deps.Session.HandleInput(r.Context(), req.Text), http.StatusOK)
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, NewWidgetConfig(r.URL.Query().Get("symbol")), http.StatusOK)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	index := r.URL.Query().Get("index")
	if index == "" {
		index = insights.Indices[0].Key
	}
	list, err := insights.For(index)
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendJSON(w, list, http.StatusOK)
}
