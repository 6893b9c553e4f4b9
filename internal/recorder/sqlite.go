package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so external readers don't block the dashboard's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refresh_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			timeframe    TEXT NOT NULL,
			"trigger"    TEXT,
			generation   INTEGER,
			sample_count INTEGER,
			last_price   REAL,
			stale        INTEGER NOT NULL DEFAULT 0,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_ts ON refresh_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_symbol ON refresh_events(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS assistant_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			path       TEXT NOT NULL,
			outcome    TEXT NOT NULL,
			latency_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assistant_ts ON assistant_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRefresh(evt *RefreshEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stale := 0
	if evt.Stale {
		stale = 1
	}
	_, err := r.db.Exec(`INSERT INTO refresh_events
		(timestamp, symbol, timeframe, "trigger", generation, sample_count, last_price, stale, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.Symbol, evt.Timeframe, evt.Trigger, int64(evt.Generation),
		evt.SampleCount, evt.LastPrice, stale, nullString(evt.Err),
	)
	return err
}

func (r *SQLiteRecorder) RecordAssistant(evt *AssistantEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO assistant_events
		(timestamp, path, outcome, latency_ms)
		VALUES (?,?,?,?)`,
		r.now().Unix(), evt.Path, evt.Outcome, evt.Latency.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
