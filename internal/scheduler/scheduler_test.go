package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChartAI/internal/collector"
	"ChartAI/internal/model"
	"ChartAI/internal/recorder"
)

// stubCollector returns a one-sample snapshot whose price encodes the call
// number. Calls listed in hold block until released.
type stubCollector struct {
	mu    sync.Mutex
	calls int
	hold  map[int]chan struct{}
	err   map[int]error
	seen  []string
}

func (s *stubCollector) Collect(_ context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.seen = append(s.seen, symbol+"/"+string(tf))
	wait := s.hold[n]
	err := s.err[n]
	s.mu.Unlock()

	if wait != nil {
		<-wait
	}
	if err != nil {
		return nil, err
	}
	return &model.ChartSnapshot{
		Symbol:    symbol,
		Timeframe: tf,
		Samples:   []model.QuoteSample{{Price: decimal.NewFromInt(int64(n))}},
	}, nil
}

type memRecorder struct {
	recorder.NoopRecorder
	mu     sync.Mutex
	events []recorder.RefreshEvent
}

func (m *memRecorder) RecordRefresh(evt *recorder.RefreshEvent) error {
	m.mu.Lock()
	m.events = append(m.events, *evt)
	m.mu.Unlock()
	return nil
}

func newRefresher(t *testing.T, col Collector, rec recorder.Recorder) *Refresher {
	t.Helper()
	r, err := NewRefresher(context.Background(), col, rec, "")
	require.NoError(t, err)
	return r
}

func TestNewRefresher_InvalidSpec(t *testing.T) {
	_, err := NewRefresher(context.Background(), &stubCollector{}, nil, "every minute")
	require.Error(t, err)
}

func TestMount_LoadsAndSchedules(t *testing.T) {
	col := &stubCollector{}
	r := newRefresher(t, col, nil)

	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	st := v.State()
	assert.Equal(t, "^NSEI", st.Symbol)
	assert.False(t, st.Loading)
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, "1", st.Snapshot.LastPrice().String())
	assert.Equal(t, 1, r.Mounted())
	assert.Len(t, r.Cron.Entries(), 1)

	r.Unmount(v)
	assert.Equal(t, 0, r.Mounted())
	assert.Empty(t, r.Cron.Entries())
	require.ErrorIs(t, v.Refresh(t.Context(), TriggerManual), ErrUnmounted)

	// Unmounting twice is harmless.
	r.Unmount(v)
}

func TestSetSymbolAndTimeframe(t *testing.T) {
	col := &stubCollector{}
	rec := &memRecorder{}
	r := newRefresher(t, col, rec)
	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	require.NoError(t, v.SetSymbol(t.Context(), "TCS.NS"))
	require.NoError(t, v.SetTimeframe(t.Context(), model.Timeframe1D))

	assert.Equal(t, []string{"^NSEI/1mo", "TCS.NS/1mo", "TCS.NS/1d"}, col.seen)
	st := v.State()
	assert.Equal(t, "TCS.NS", st.Snapshot.Symbol)
	assert.Equal(t, model.Timeframe1D, st.Snapshot.Timeframe)

	require.Len(t, rec.events, 3)
	assert.Equal(t, "mount", rec.events[0].Trigger)
	assert.Equal(t, "symbol", rec.events[1].Trigger)
	assert.Equal(t, "timeframe", rec.events[2].Trigger)
	assert.Equal(t, 1, rec.events[2].SampleCount)
}

func TestSwitch_SingleRefetch(t *testing.T) {
	col := &stubCollector{}
	rec := &memRecorder{}
	r := newRefresher(t, col, rec)
	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	require.NoError(t, v.Switch(t.Context(), "INFY.NS", model.Timeframe1Y))
	require.NoError(t, v.Switch(t.Context(), "", ""))

	assert.Equal(t, []string{"^NSEI/1mo", "INFY.NS/1y", "INFY.NS/1y"}, col.seen)
	require.Len(t, rec.events, 3)
	assert.Equal(t, "symbol", rec.events[1].Trigger)
	assert.Equal(t, "manual", rec.events[2].Trigger)
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	col := &stubCollector{hold: map[int]chan struct{}{2: release}}
	rec := &memRecorder{}
	r := newRefresher(t, col, rec)
	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	// Call 2 is slow and started first; call 3 finishes before it.
	slow := make(chan error, 1)
	go func() { slow <- v.Refresh(context.Background(), TriggerManual) }()
	require.Eventually(t, func() bool {
		col.mu.Lock()
		defer col.mu.Unlock()
		return col.calls == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, v.State().Loading)

	require.NoError(t, v.Refresh(t.Context(), TriggerManual))
	assert.Equal(t, "3", v.State().Snapshot.LastPrice().String())

	close(release)
	err = <-slow
	require.ErrorIs(t, err, ErrStale)
	assert.True(t, IsStale(err))

	st := v.State()
	assert.Equal(t, "3", st.Snapshot.LastPrice().String())
	assert.False(t, st.Loading)

	last := rec.events[len(rec.events)-1]
	assert.True(t, last.Stale)
	assert.Equal(t, uint64(2), last.Generation)
}

func TestRefresh_ErrorKeepsSnapshot(t *testing.T) {
	col := &stubCollector{err: map[int]error{2: collector.ErrNoData}}
	r := newRefresher(t, col, nil)
	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	err = v.Refresh(t.Context(), TriggerManual)
	require.ErrorIs(t, err, collector.ErrNoData)

	st := v.State()
	assert.Equal(t, "1", st.Snapshot.LastPrice().String())
	assert.Equal(t, collector.UserMessage(collector.ErrNoData), st.Error)

	require.NoError(t, v.Refresh(t.Context(), TriggerManual))
	assert.Empty(t, v.State().Error)
}

func TestUnmount_DiscardsInFlight(t *testing.T) {
	release := make(chan struct{})
	col := &stubCollector{hold: map[int]chan struct{}{2: release}}
	r := newRefresher(t, col, nil)
	v, err := r.Mount(t.Context(), "^NSEI", model.Timeframe1M)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() { slow <- v.Refresh(context.Background(), TriggerCron) }()
	require.Eventually(t, func() bool {
		col.mu.Lock()
		defer col.mu.Unlock()
		return col.calls == 2
	}, 2*time.Second, 5*time.Millisecond)

	r.Unmount(v)
	close(release)
	require.ErrorIs(t, <-slow, ErrStale)
	assert.Equal(t, "1", v.State().Snapshot.LastPrice().String())
}
