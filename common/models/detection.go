package models

import "time"

// MediaType identifies the kind of media an analysis ran against.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

// Classification is the coarse four-level label bucketed from the headline
// confidence score.
type Classification string

const (
	HighlyAuthentic     Classification = "highly_authentic"
	LikelyAuthentic     Classification = "likely_authentic"
	PossiblyManipulated Classification = "possibly_manipulated"
	HighlyManipulated   Classification = "highly_manipulated"
)

// RiskLevel summarizes user-facing urgency of a verdict.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BoundingBox is a pixel-space rectangle within a frame or image.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HighlightedArea marks a region of an image flagged as manipulated.
type HighlightedArea struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// FrameScore carries the per-frame confidence of a video analysis.
type FrameScore struct {
	Index       int     `json:"index"`
	TimestampMs int     `json:"timestamp_ms"`
	Confidence  float64 `json:"confidence"`
}

// SuspiciousFrame flags a single video frame as likely manipulated.
type SuspiciousFrame struct {
	Index       int          `json:"index"`
	TimestampMs int          `json:"timestamp_ms"`
	Confidence  float64      `json:"confidence"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
}

// SuspiciousSegment flags a span of audio as likely manipulated.
type SuspiciousSegment struct {
	TimestampMs int     `json:"timestamp_ms"`
	DurationMs  int     `json:"duration_ms"`
	Confidence  float64 `json:"confidence"`
	AnomalyType string  `json:"anomaly_type"`
}

// AudioAnalysis carries the audio-specific sub-scores and flagged segments.
type AudioAnalysis struct {
	PitchConsistency   float64             `json:"pitch_consistency"`
	FrequencyAnomaly   float64             `json:"frequency_anomaly"`
	ArtificialPatterns float64             `json:"artificial_patterns"`
	SuspiciousSegments []SuspiciousSegment `json:"suspicious_segments"`
}

// AnalysisDetail holds the sub-scores common to every media type plus the
// media-specific annotation set. Exactly one of HighlightedAreas,
// FrameScores/SuspiciousFrames, or Audio is populated per result.
type AnalysisDetail struct {
	FaceConsistency     float64 `json:"face_consistency"`
	LightingConsistency float64 `json:"lighting_consistency"`
	ArtifactsScore      float64 `json:"artifacts_score"`

	HighlightedAreas []HighlightedArea `json:"highlighted_areas,omitempty"`
	FrameScores      []FrameScore      `json:"frame_scores,omitempty"`
	SuspiciousFrames []SuspiciousFrame `json:"suspicious_frames,omitempty"`
	Audio            *AudioAnalysis    `json:"audio_analysis,omitempty"`
}

// MediaMetadata describes the analyzed media. Only the fields relevant to
// the media type are set.
type MediaMetadata struct {
	MediaType  MediaType `json:"media_type"`
	Format     string    `json:"format"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	DurationMs int       `json:"duration_ms,omitempty"`
	FrameCount int       `json:"frame_count,omitempty"`
	SampleRate int       `json:"sample_rate,omitempty"`
	Channels   int       `json:"channels,omitempty"`
}

// DetectionResult is the complete outcome of one analysis call. It is built
// once by the detection engine and never mutated afterwards.
type DetectionResult struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	Confidence     float64        `json:"confidence"`
	IsManipulated  bool           `json:"is_manipulated"`
	Classification Classification `json:"classification"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Analysis       AnalysisDetail `json:"analysis"`
	Metadata       MediaMetadata  `json:"metadata"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
}

// Entry derives the lightweight history row for this result.
func (r *DetectionResult) Entry() AnalysisEntry {
	return AnalysisEntry{
		ID:             r.ID,
		Timestamp:      r.AnalyzedAt,
		MediaType:      r.Metadata.MediaType,
		Source:         r.Source,
		Confidence:     r.Confidence,
		IsManipulated:  r.IsManipulated,
		Classification: r.Classification,
		RiskLevel:      r.RiskLevel,
	}
}
