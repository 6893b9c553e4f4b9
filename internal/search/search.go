// Package search resolves user input to chartable symbols from a static
// table, topped up by a remote search through the relay.
package search

import (
	"context"
	"strings"

	"github.com/phuslu/log"

	"ChartAI/internal/model"
)

const (
	// MinQueryLen is the shortest query that is searched at all.
	MinQueryLen = 2
	// MaxLocal caps matches from the static table.
	MaxLocal = 6
	// MaxResults caps the merged result.
	MaxResults = 10
)

// Remote looks symbols up in an external index.
type Remote interface {
	Search(ctx context.Context, query string) ([]model.SymbolEntry, error)
}

// Searcher merges static-table and remote matches.
type Searcher struct {
	table  []model.SymbolEntry
	remote Remote
}

// New creates a Searcher over the compiled-in table. remote may be nil.
func New(remote Remote) *Searcher {
	return &Searcher{table: knownSymbols, remote: remote}
}

// NewWithTable creates a Searcher over a custom table.
func NewWithTable(table []model.SymbolEntry, remote Remote) *Searcher {
	return &Searcher{table: table, remote: remote}
}

// Search returns at most MaxResults unique entries for query. Local matches
// come first. Remote failures are logged and the local matches returned.
func (s *Searcher) Search(ctx context.Context, query string) []model.SymbolEntry {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLen {
		return []model.SymbolEntry{}
	}

	results := s.Local(query)
	if len(results) >= MaxLocal || s.remote == nil {
		return results
	}

	remote, err := s.remote.Search(ctx, query)
	if err != nil {
		log.Warn().Str("query", query).Err(err).Msg("remote symbol search failed")
		return results
	}
	return merge(results, remote, MaxResults)
}

// Local returns up to MaxLocal static-table matches for query.
func (s *Searcher) Local(query string) []model.SymbolEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.SymbolEntry, 0, MaxLocal)
	if q == "" {
		return out
	}
	for _, e := range s.table {
		if strings.Contains(strings.ToLower(baseSymbol(e.Symbol)), q) ||
			strings.Contains(strings.ToLower(e.DisplayName), q) {
			out = append(out, e)
			if len(out) == MaxLocal {
				break
			}
		}
	}
	return out
}

// merge appends extra entries whose symbol is not yet present, up to limit.
func merge(base, extra []model.SymbolEntry, limit int) []model.SymbolEntry {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]model.SymbolEntry, 0, limit)
	for _, e := range base {
		if len(out) == limit {
			return out
		}
		if _, ok := seen[e.Symbol]; ok {
			continue
		}
		seen[e.Symbol] = struct{}{}
		out = append(out, e)
	}
	for _, e := range extra {
		if len(out) == limit {
			break
		}
		if _, ok := seen[e.Symbol]; ok {
			continue
		}
		seen[e.Symbol] = struct{}{}
		out = append(out, e)
	}
	return out
}

// baseSymbol strips the exchange suffix.
func baseSymbol(symbol string) string {
	for _, suffix := range []string{".NS", ".BO"} {
		if strings.HasSuffix(symbol, suffix) {
			return strings.TrimSuffix(symbol, suffix)
		}
	}
	return symbol
}
