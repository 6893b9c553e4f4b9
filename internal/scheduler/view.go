package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/phuslu/log"

	"ChartAI/internal/collector"
	"ChartAI/internal/model"
	"ChartAI/internal/recorder"
)

// Trigger names what started a refresh.
type Trigger string

const (
	TriggerMount     Trigger = "mount"
	TriggerManual    Trigger = "manual"
	TriggerSymbol    Trigger = "symbol"
	TriggerTimeframe Trigger = "timeframe"
	TriggerCron      Trigger = "cron"
)

// View is one mounted chart. Every refresh takes a new generation and only
// the result of the newest generation is applied.
type View struct {
	refresher *Refresher

	mu         sync.Mutex
	symbol     string
	timeframe  model.Timeframe
	generation uint64
	loading    bool
	snapshot   *model.ChartSnapshot
	err        error
	unmounted  bool
}

// ViewState is a point-in-time copy of a view for rendering.
type ViewState struct {
	Symbol     string               `json:"symbol"`
	Timeframe  model.Timeframe      `json:"timeframe"`
	Generation uint64               `json:"generation"`
	Loading    bool                 `json:"loading"`
	Snapshot   *model.ChartSnapshot `json:"snapshot,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// Symbol returns the view's current symbol.
func (v *View) Symbol() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.symbol
}

// State returns a copy of the view.
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ViewState{
		Symbol:     v.symbol,
		Timeframe:  v.timeframe,
		Generation: v.generation,
		Loading:    v.loading,
		Snapshot:   v.snapshot,
		Error:      collector.UserMessage(v.err),
	}
}

// SetSymbol switches the view to symbol and refetches.
func (v *View) SetSymbol(ctx context.Context, symbol string) error {
	v.mu.Lock()
	v.symbol = symbol
	v.mu.Unlock()
	return v.Refresh(ctx, TriggerSymbol)
}

// SetTimeframe switches the view to tf and refetches.
func (v *View) SetTimeframe(ctx context.Context, tf model.Timeframe) error {
	v.mu.Lock()
	v.timeframe = tf
	v.mu.Unlock()
	return v.Refresh(ctx, TriggerTimeframe)
}

// Switch changes symbol and/or timeframe with a single refetch. Empty
// arguments keep the current value; when nothing changes it is a manual
// refresh.
func (v *View) Switch(ctx context.Context, symbol string, tf model.Timeframe) error {
	trigger := TriggerManual
	v.mu.Lock()
	if tf != "" && tf != v.timeframe {
		v.timeframe = tf
		trigger = TriggerTimeframe
	}
	if symbol != "" && symbol != v.symbol {
		v.symbol = symbol
		trigger = TriggerSymbol
	}
	v.mu.Unlock()
	return v.Refresh(ctx, trigger)
}

// Refresh fetches a new snapshot. It returns ErrStale when a newer refresh
// superseded it; the view keeps its previous snapshot on error.
func (v *View) Refresh(ctx context.Context, trigger Trigger) error {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		return ErrUnmounted
	}
	v.generation++
	gen := v.generation
	symbol, tf := v.symbol, v.timeframe
	v.loading = true
	v.mu.Unlock()

	snap, err := v.refresher.Collector.Collect(ctx, symbol, tf)

	v.mu.Lock()
	stale := gen != v.generation
	if !stale {
		v.loading = false
		v.err = err
		if err == nil {
			v.snapshot = snap
		}
	}
	v.mu.Unlock()

	evt := &recorder.RefreshEvent{
		Symbol:     symbol,
		Timeframe:  string(tf),
		Trigger:    string(trigger),
		Generation: gen,
		Stale:      stale,
	}
	if err != nil {
		evt.Err = err.Error()
	} else {
		evt.SampleCount = len(snap.Samples)
		evt.LastPrice = snap.LastPrice().InexactFloat64()
	}
	v.refresher.record(evt)

	switch {
	case stale:
		log.Debug().Str("symbol", symbol).Uint64("generation", gen).Msg("discarding stale refresh")
		return ErrStale
	case err != nil:
		log.Warn().Str("symbol", symbol).Str("timeframe", string(tf)).Str("trigger", string(trigger)).Err(err).Msg("chart refresh failed")
		return err
	}
	return nil
}

// IsStale reports whether err came from a superseded refresh.
func IsStale(err error) bool { return errors.Is(err, ErrStale) }
