package history

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepcheck/common/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry(id string, ts time.Time, manipulated bool) models.AnalysisEntry {
	classification := models.PossiblyManipulated
	risk := models.RiskHigh
	if !manipulated {
		classification = models.HighlyManipulated
		risk = models.RiskLow
	}
	return models.AnalysisEntry{
		ID:             id,
		Timestamp:      ts,
		MediaType:      models.MediaTypeImage,
		Source:         "https://example.com/" + id + ".jpg",
		Confidence:     61.5,
		IsManipulated:  manipulated,
		Classification: classification,
		RiskLevel:      risk,
	}
}

func TestAppendAndRecent(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(sampleEntry("older", base, true)))
	require.NoError(t, store.Append(sampleEntry("newer", base.Add(time.Minute), false)))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "newer", entries[0].ID)
	assert.Equal(t, "older", entries[1].ID)

	got := entries[1]
	assert.Equal(t, models.MediaTypeImage, got.MediaType)
	assert.Equal(t, "https://example.com/older.jpg", got.Source)
	assert.Equal(t, 61.5, got.Confidence)
	assert.True(t, got.IsManipulated)
	assert.Equal(t, models.PossiblyManipulated, got.Classification)
	assert.Equal(t, models.RiskHigh, got.RiskLevel)
	assert.True(t, got.Timestamp.Equal(base))
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(sampleEntry(id, base.Add(time.Duration(i)*time.Minute), true)))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
}

func TestRecentEmpty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteCSV(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(sampleEntry("first", base, true)))
	require.NoError(t, store.Append(sampleEntry("second", base.Add(time.Minute), false)))

	var buf bytes.Buffer
	require.NoError(t, store.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "timestamp", "media_type", "source", "confidence", "is_manipulated", "classification", "risk_level"}, records[0])

	// Oldest first in the export.
	assert.Equal(t, "first", records[1][0])
	assert.Equal(t, "2026-08-25T12:00:00Z", records[1][1])
	assert.Equal(t, "image", records[1][2])
	assert.Equal(t, "61.50", records[1][4])
	assert.Equal(t, "true", records[1][5])
	assert.Equal(t, "second", records[2][0])
	assert.Equal(t, "false", records[2][5])
}
