package iocache

import (
	"path/filepath"
	"testing"

	"github.com/rmonroe/shotline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// RecordRun should return 0 for NoneBackend
	runID, err := store.RecordRun(map[string]any{"command": "regress"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestRunStore_SQLiteRecordRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// A run without a regression result stores NULL metrics
	firstID, err := store.RecordRun(map[string]any{"command": "yearly"}, nil)
	require.NoError(t, err)
	assert.Greater(t, firstID, int64(0))

	result := &schema.RegressionResult{
		Slope:     0.2,
		Intercept: 0.0,
		RSquared:  1.0,
		PValue:    0.0,
		N:         3,
	}
	secondID, err := store.RecordRun(map[string]any{"command": "regress"}, result)
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)
}

func TestRunStore_SQLiteGetStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	_, err = store.RecordRun(map[string]any{"command": "regress"}, nil)
	require.NoError(t, err)
	lastID, err := store.RecordRun(map[string]any{"command": "report"}, nil)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.False(t, status.OldestRunTime.IsZero())
	assert.False(t, status.OldestRunTime.After(status.LastRunTime))
}
