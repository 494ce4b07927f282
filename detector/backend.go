package detector

import (
	"context"

	"deepcheck/common/models"
)

// Verdict is the primary output of a scoring backend: the manipulated flag
// plus the headline confidence.
type Verdict struct {
	Manipulated bool
	Confidence  float64
}

// ScoreBackend produces the headline verdict for a piece of media. The
// default backend synthesizes verdicts locally and never fails; a real
// inference service can be substituted without changing the Engine API.
type ScoreBackend interface {
	Score(ctx context.Context, media models.MediaType, source string) (Verdict, error)
}

// FallbackPolicy decides what happens when the scoring backend fails.
type FallbackPolicy int

const (
	// FallbackSynthesize swallows backend errors and fabricates a complete
	// result instead, so analysis calls never fail. Callers rendering
	// results rely on this: there is no error state to display.
	FallbackSynthesize FallbackPolicy = iota

	// FallbackPropagate returns backend errors to the caller.
	FallbackPropagate
)

// syntheticBackend alternates verdicts via the toggle and draws the
// confidence from the matching band.
type syntheticBackend struct {
	toggle *Toggle
	rng    Rand
}

func (b *syntheticBackend) Score(_ context.Context, _ models.MediaType, _ string) (Verdict, error) {
	manipulated := b.toggle.Next()
	return Verdict{
		Manipulated: manipulated,
		Confidence:  primaryConfidence(b.rng, manipulated),
	}, nil
}
