package detector

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"deepcheck/common/models"
)

const (
	defaultVideoFrames  = 10
	defaultWebcamFrames = 5

	// Fraction of frames flagged suspicious in a manipulated video.
	suspiciousFrameRate = 0.4
)

// anomalyTypes is the fixed vocabulary for audio segment annotations.
var anomalyTypes = []string{
	"pitch_shift",
	"unnatural_pause",
	"spectral_discontinuity",
	"synthetic_artifact",
}

// Engine runs the detection pipeline: it obtains a verdict from the scoring
// backend, synthesizes sub-scores and media-specific annotations, and
// assembles the immutable result record. All four Analyze methods share the
// single toggle, so consecutive analyses alternate outcomes.
type Engine struct {
	rng     Rand
	toggle  *Toggle
	backend ScoreBackend
	policy  FallbackPolicy

	// Synthetic path used when the configured backend fails.
	fallback ScoreBackend

	videoFrames  int
	webcamFrames int

	log *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand substitutes the randomness source behind every draw.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithToggle substitutes the alternating verdict state.
func WithToggle(t *Toggle) Option {
	return func(e *Engine) { e.toggle = t }
}

// WithBackend substitutes the scoring backend.
func WithBackend(b ScoreBackend) Option {
	return func(e *Engine) { e.backend = b }
}

// WithFallbackPolicy sets how backend failures are handled.
func WithFallbackPolicy(p FallbackPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithFrameCounts sets the fabricated frame counts for video and webcam
// analyses. Non-positive values keep the defaults.
func WithFrameCounts(video, webcam int) Option {
	return func(e *Engine) {
		if video > 0 {
			e.videoFrames = video
		}
		if webcam > 0 {
			e.webcamFrames = webcam
		}
	}
}

// NewEngine builds an engine with the synthetic backend and silent fallback
// unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		policy:       FallbackSynthesize,
		videoFrames:  defaultVideoFrames,
		webcamFrames: defaultWebcamFrames,
		log:          logrus.WithField("component", "detector"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newDefaultRand()
	}
	if e.toggle == nil {
		e.toggle = NewToggle(e.rng)
	}
	e.fallback = &syntheticBackend{toggle: e.toggle, rng: e.rng}
	if e.backend == nil {
		e.backend = e.fallback
	}
	return e
}

// AnalyzeImage runs the detection pipeline against an image source. A
// manipulated image carries 1-3 highlighted regions; an authentic one
// carries none.
func (e *Engine) AnalyzeImage(ctx context.Context, source string) (*models.DetectionResult, error) {
	v, err := e.verdict(ctx, models.MediaTypeImage, source)
	if err != nil {
		return nil, err
	}
	meta := e.imageMetadata()
	detail := e.baseDetail(v.Manipulated)
	if v.Manipulated {
		detail.HighlightedAreas = e.highlightedAreas(v.Confidence, meta.Width, meta.Height)
	}
	return e.assemble(source, v, detail, meta), nil
}

// AnalyzeVideo runs the detection pipeline against a video source. Every
// frame gets a confidence score; in a manipulated video roughly 40% of
// frames (at least one) are flagged suspicious.
func (e *Engine) AnalyzeVideo(ctx context.Context, source string) (*models.DetectionResult, error) {
	return e.analyzeFrames(ctx, source, e.videoFrames)
}

// AnalyzeWebcam analyzes a captured webcam stream. It reuses the video path
// with a small synthetic frame count, and yields a video-typed result.
func (e *Engine) AnalyzeWebcam(ctx context.Context, streamID string) (*models.DetectionResult, error) {
	return e.analyzeFrames(ctx, streamID, e.webcamFrames)
}

// AnalyzeAudio runs the detection pipeline against an audio source. A
// manipulated recording carries 2-5 suspicious segments sorted by
// timestamp; an authentic one carries none.
func (e *Engine) AnalyzeAudio(ctx context.Context, source string) (*models.DetectionResult, error) {
	v, err := e.verdict(ctx, models.MediaTypeAudio, source)
	if err != nil {
		return nil, err
	}
	meta := e.audioMetadata()
	detail := e.baseDetail(v.Manipulated)
	pitch, frequency, artificial := audioScores(e.rng, v.Manipulated)
	audio := &models.AudioAnalysis{
		PitchConsistency:   pitch,
		FrequencyAnomaly:   frequency,
		ArtificialPatterns: artificial,
		SuspiciousSegments: []models.SuspiciousSegment{},
	}
	if v.Manipulated {
		audio.SuspiciousSegments = e.suspiciousSegments(v.Confidence, meta.DurationMs)
	}
	detail.Audio = audio
	return e.assemble(source, v, detail, meta), nil
}

// verdict asks the backend for the primary verdict, applying the fallback
// policy on failure. The toggle advances exactly once per call whichever
// path produces the verdict.
func (e *Engine) verdict(ctx context.Context, media models.MediaType, source string) (Verdict, error) {
	v, err := e.backend.Score(ctx, media, source)
	if err == nil {
		return v, nil
	}
	if e.policy == FallbackPropagate {
		return Verdict{}, err
	}
	e.log.WithError(err).WithField("media_type", media).Warn("scoring backend failed, synthesizing fallback verdict")
	v, _ = e.fallback.Score(ctx, media, source)
	return v, nil
}

func (e *Engine) assemble(source string, v Verdict, detail models.AnalysisDetail, meta models.MediaMetadata) *models.DetectionResult {
	return &models.DetectionResult{
		ID:             uuid.NewString(),
		Source:         source,
		Confidence:     v.Confidence,
		IsManipulated:  v.Manipulated,
		Classification: Classify(v.Confidence),
		RiskLevel:      riskFor(e.rng, v.Manipulated),
		Analysis:       detail,
		Metadata:       meta,
		AnalyzedAt:     time.Now().UTC(),
	}
}

func (e *Engine) baseDetail(manipulated bool) models.AnalysisDetail {
	face, lighting, artifacts := subScores(e.rng, manipulated)
	return models.AnalysisDetail{
		FaceConsistency:     face,
		LightingConsistency: lighting,
		ArtifactsScore:      artifacts,
	}
}

func (e *Engine) analyzeFrames(ctx context.Context, source string, frameCount int) (*models.DetectionResult, error) {
	v, err := e.verdict(ctx, models.MediaTypeVideo, source)
	if err != nil {
		return nil, err
	}
	meta := e.videoMetadata(frameCount)
	detail := e.baseDetail(v.Manipulated)
	detail.FrameScores, detail.SuspiciousFrames = e.frameScores(v, frameCount, meta)
	return e.assemble(source, v, detail, meta), nil
}

// frameScores fabricates the per-frame confidences and, for manipulated
// video, flags a subset of frames. Both slices come back in ascending
// timestamp order.
func (e *Engine) frameScores(v Verdict, frameCount int, meta models.MediaMetadata) ([]models.FrameScore, []models.SuspiciousFrame) {
	if frameCount <= 0 {
		return nil, nil
	}
	step := meta.DurationMs / frameCount
	frames := make([]models.FrameScore, 0, frameCount)
	var suspicious []models.SuspiciousFrame
	for i := 0; i < frameCount; i++ {
		frame := models.FrameScore{
			Index:       i,
			TimestampMs: i * step,
			Confidence:  confidenceBands.forOutcome(v.Manipulated).draw(e.rng),
		}
		frames = append(frames, frame)
		if v.Manipulated && e.rng.Float64() < suspiciousFrameRate {
			suspicious = append(suspicious, e.suspiciousFrame(frame, meta))
		}
	}
	// A manipulated video always flags at least one frame.
	if v.Manipulated && len(suspicious) == 0 {
		suspicious = append(suspicious, e.suspiciousFrame(frames[e.rng.Intn(frameCount)], meta))
	}
	return frames, suspicious
}

func (e *Engine) suspiciousFrame(frame models.FrameScore, meta models.MediaMetadata) models.SuspiciousFrame {
	sf := models.SuspiciousFrame{
		Index:       frame.Index,
		TimestampMs: frame.TimestampMs,
		Confidence:  frame.Confidence,
	}
	if e.rng.Intn(2) == 0 {
		w := 60 + e.rng.Intn(meta.Width/4)
		h := 60 + e.rng.Intn(meta.Height/4)
		sf.BoundingBox = &models.BoundingBox{
			X:      e.rng.Intn(meta.Width - w),
			Y:      e.rng.Intn(meta.Height - h),
			Width:  w,
			Height: h,
		}
	}
	return sf
}

func (e *Engine) highlightedAreas(primary float64, width, height int) []models.HighlightedArea {
	count := 1 + e.rng.Intn(3)
	areas := make([]models.HighlightedArea, 0, count)
	for i := 0; i < count; i++ {
		w := 40 + e.rng.Intn(width/4)
		h := 40 + e.rng.Intn(height/4)
		areas = append(areas, models.HighlightedArea{
			X:          e.rng.Intn(width - w),
			Y:          e.rng.Intn(height - h),
			Width:      w,
			Height:     h,
			Confidence: jitterNear(e.rng, primary, 8),
		})
	}
	return areas
}

func (e *Engine) suspiciousSegments(primary float64, durationMs int) []models.SuspiciousSegment {
	count := 2 + e.rng.Intn(4)
	segments := make([]models.SuspiciousSegment, 0, count)
	for i := 0; i < count; i++ {
		d := 500 + e.rng.Intn(1501)
		start := durationMs - d
		if start < 1 {
			start = 1
		}
		segments = append(segments, models.SuspiciousSegment{
			TimestampMs: e.rng.Intn(start),
			DurationMs:  d,
			Confidence:  jitterNear(e.rng, primary, 8),
			AnomalyType: anomalyTypes[e.rng.Intn(len(anomalyTypes))],
		})
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].TimestampMs < segments[j].TimestampMs
	})
	return segments
}
