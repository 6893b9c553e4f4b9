package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"ChartAI/internal/model"
	"ChartAI/internal/recorder"
)

// DefaultSpec refreshes every mounted view at the top of each minute.
const DefaultSpec = "0 * * * * *"

// refreshTimeout bounds one cron-triggered refresh.
const refreshTimeout = 30 * time.Second

// Collector builds a chart snapshot.
type Collector interface {
	Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error)
}

// Refresher manages the periodic refresh of mounted chart views.
type Refresher struct {
	Cron      *cron.Cron
	Collector Collector
	Recorder  recorder.Recorder
	Ctx       context.Context

	spec  string
	mu    sync.Mutex
	views map[*View]cron.EntryID
}

// NewRefresher creates a Refresher. An empty spec uses DefaultSpec.
func NewRefresher(ctx context.Context, col Collector, rec recorder.Recorder, spec string) (*Refresher, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(spec); err != nil {
		return nil, fmt.Errorf("parse refresh spec %q: %w", spec, err)
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Refresher{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Ctx:       ctx,
		spec:      spec,
		views:     make(map[*View]cron.EntryID),
	}, nil
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Info().Str("spec", r.spec).Msg("refresher started")
}

// Stop stops the cron scheduler and waits for running refreshes.
func (r *Refresher) Stop() {
	<-r.Cron.Stop().Done()
	log.Info().Msg("refresher stopped")
}

// Mount creates a view for symbol and tf, loads it once and schedules its
// periodic refresh. A failed first load is kept in the view state.
func (r *Refresher) Mount(ctx context.Context, symbol string, tf model.Timeframe) (*View, error) {
	v := &View{refresher: r, symbol: symbol, timeframe: tf}

	id, err := r.Cron.AddFunc(r.spec, func() {
		cctx, cancel := context.WithTimeout(r.Ctx, refreshTimeout)
		defer cancel()
		_ = v.Refresh(cctx, TriggerCron)
	})
	if err != nil {
		return nil, fmt.Errorf("register refresh: %w", err)
	}

	r.mu.Lock()
	r.views[v] = id
	r.mu.Unlock()
	log.Info().Str("symbol", symbol).Str("timeframe", string(tf)).Msg("chart view mounted")

	_ = v.Refresh(ctx, TriggerMount)
	return v, nil
}

// Unmount cancels the view's periodic refresh. In-flight refreshes finish but
// their results are discarded.
func (r *Refresher) Unmount(v *View) {
	r.mu.Lock()
	id, ok := r.views[v]
	delete(r.views, v)
	r.mu.Unlock()
	if !ok {
		return
	}
	r.Cron.Remove(id)

	v.mu.Lock()
	v.unmounted = true
	v.generation++
	v.loading = false
	v.mu.Unlock()
	log.Info().Str("symbol", v.Symbol()).Msg("chart view unmounted")
}

// Mounted returns the number of mounted views.
func (r *Refresher) Mounted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *Refresher) record(evt *recorder.RefreshEvent) {
	if err := r.Recorder.RecordRefresh(evt); err != nil {
		log.Error().Err(err).Msg("record refresh")
	}
}

// ErrStale is returned by Refresh when a newer refresh started before this
// one finished; its result was discarded.
var ErrStale = errors.New("refresh superseded by a newer request")

// ErrUnmounted is returned by operations on an unmounted view.
var ErrUnmounted = errors.New("chart view unmounted")
