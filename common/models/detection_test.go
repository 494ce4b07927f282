package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectionResultEntry(t *testing.T) {
	analyzedAt := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	res := &DetectionResult{
		ID:             "abc-123",
		Source:         "https://example.com/clip.mp4",
		Confidence:     41.7,
		IsManipulated:  true,
		Classification: LikelyAuthentic,
		RiskLevel:      RiskMedium,
		Metadata:       MediaMetadata{MediaType: MediaTypeVideo, Format: "mp4"},
		AnalyzedAt:     analyzedAt,
	}

	entry := res.Entry()

	assert.Equal(t, "abc-123", entry.ID)
	assert.Equal(t, analyzedAt, entry.Timestamp)
	assert.Equal(t, MediaTypeVideo, entry.MediaType)
	assert.Equal(t, "https://example.com/clip.mp4", entry.Source)
	assert.Equal(t, 41.7, entry.Confidence)
	assert.True(t, entry.IsManipulated)
	assert.Equal(t, LikelyAuthentic, entry.Classification)
	assert.Equal(t, RiskMedium, entry.RiskLevel)
}
