package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ChartAI/internal/model"
	"ChartAI/internal/relay"
)

// fetchTimeout bounds a shared lookup once it is detached from its caller.
const fetchTimeout = 30 * time.Second

// RemoteSearcher queries the Yahoo symbol-search endpoint through the relay.
// Concurrent identical queries share one request and answers are cached for
// ttl.
type RemoteSearcher struct {
	relay   *relay.Client
	baseURL string
	ttl     time.Duration
	now     func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	entries []model.SymbolEntry
	at      time.Time
}

// NewRemoteSearcher creates a remote searcher. A zero ttl disables caching.
func NewRemoteSearcher(r *relay.Client, baseURL string, ttl time.Duration) *RemoteSearcher {
	return &RemoteSearcher{
		relay:   r,
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]cached),
	}
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
		Market    string `json:"market"`
	} `json:"quotes"`
}

// Search implements Remote.
func (r *RemoteSearcher) Search(ctx context.Context, query string) ([]model.SymbolEntry, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if entries, ok := r.lookup(key); ok {
		return entries, nil
	}

	// The flight outlives whichever caller started it.
	detached := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(detached, fetchTimeout)
		defer cancel()
		entries, err := r.fetch(fctx, query)
		if err != nil {
			return nil, err
		}
		r.store(key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.SymbolEntry), nil
}

func (r *RemoteSearcher) fetch(ctx context.Context, query string) ([]model.SymbolEntry, error) {
	target := fmt.Sprintf("%s?q=%s&quotesCount=%d&newsCount=0", r.baseURL, url.QueryEscape(query), MaxResults)
	body, err := r.relay.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("symbol search: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode symbol search: %w", err)
	}

	entries := make([]model.SymbolEntry, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if q.Symbol == "" || !indianListing(q.Exchange, q.QuoteType, q.Market) {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}
		entries = append(entries, model.SymbolEntry{Symbol: q.Symbol, DisplayName: name})
	}
	return entries, nil
}

// indianListing keeps NSE/BSE listings and Indian-market indices.
func indianListing(exchange, quoteType, market string) bool {
	switch exchange {
	case "NSI", "BSE":
		return true
	}
	return quoteType == "INDEX" && market == "in_market"
}

func (r *RemoteSearcher) lookup(key string) ([]model.SymbolEntry, bool) {
	if r.ttl <= 0 {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cache[key]
	if !ok || r.now().Sub(c.at) > r.ttl {
		delete(r.cache, key)
		return nil, false
	}
	return c.entries, true
}

func (r *RemoteSearcher) store(key string, entries []model.SymbolEntry) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	r.cache[key] = cached{entries: entries, at: r.now()}
	r.mu.Unlock()
}
