package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_RecordRefresh(t *testing.T) {
	r := openTemp(t)
	r.now = func() time.Time { return time.Unix(1741000000, 0) }

	require.NoError(t, r.RecordRefresh(&RefreshEvent{
		Symbol: "^NSEI", Timeframe: "1mo", Trigger: "cron", Generation: 7,
		SampleCount: 21, LastPrice: 22310.5,
	}))
	require.NoError(t, r.RecordRefresh(&RefreshEvent{
		Symbol: "^NSEI", Timeframe: "1mo", Trigger: "manual", Generation: 6,
		Stale: true, Err: "no quote data",
	}))

	rows, err := r.db.Query(`SELECT timestamp, "trigger", generation, sample_count, last_price, stale, error
		FROM refresh_events ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		ts, gen   int64
		trigger   string
		count     int
		price     float64
		stale     int
		errString sql.NullString
	}
	var got []row
	for rows.Next() {
		var rw row
		require.NoError(t, rows.Scan(&rw.ts, &rw.trigger, &rw.gen, &rw.count, &rw.price, &rw.stale, &rw.errString))
		got = append(got, rw)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)

	assert.Equal(t, int64(1741000000), got[0].ts)
	assert.Equal(t, "cron", got[0].trigger)
	assert.Equal(t, int64(7), got[0].gen)
	assert.Equal(t, 21, got[0].count)
	assert.Equal(t, 22310.5, got[0].price)
	assert.Equal(t, 0, got[0].stale)
	assert.False(t, got[0].errString.Valid)

	assert.Equal(t, 1, got[1].stale)
	assert.Equal(t, "no quote data", got[1].errString.String)
}

func TestSQLiteRecorder_RecordAssistant(t *testing.T) {
	r := openTemp(t)

	require.NoError(t, r.RecordAssistant(&AssistantEvent{Path: "image", Outcome: "ok", Latency: 1250 * time.Millisecond}))

	var path, outcome string
	var latency int64
	require.NoError(t, r.db.QueryRow(`SELECT path, outcome, latency_ms FROM assistant_events`).Scan(&path, &outcome, &latency))
	assert.Equal(t, "image", path)
	assert.Equal(t, "ok", outcome)
	assert.Equal(t, int64(1250), latency)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordAssistant(&AssistantEvent{Path: "text", Outcome: "auth"}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM assistant_events`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRefresh(&RefreshEvent{}))
	assert.NoError(t, r.RecordAssistant(&AssistantEvent{}))
	assert.NoError(t, r.Close())
}
