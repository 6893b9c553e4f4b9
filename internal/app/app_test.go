package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChartAI/internal/config"
	"ChartAI/internal/recorder"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestNew_NoopRecorderWithoutPath(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Database.SQLitePath = ""

	a := New(cfg)
	defer a.Close()

	assert.IsType(t, &recorder.NoopRecorder{}, a.Recorder)
	assert.NotNil(t, a.Collector)
	assert.NotNil(t, a.Searcher)
	assert.False(t, a.Assistant.HasAPIKey())
}

func TestNew_SQLiteRecorder(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "chartai.db")
	cfg.Assistant.APIKey = " key "

	a := New(cfg)
	defer a.Close()

	assert.IsType(t, &recorder.SQLiteRecorder{}, a.Recorder)
	assert.Equal(t, "key", a.Assistant.APIKey())
}

func TestNew_UnopenableRecorderFallsBack(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "no", "such", "dir", "chartai.db")

	a := New(cfg)
	defer a.Close()

	assert.IsType(t, &recorder.NoopRecorder{}, a.Recorder)
}
