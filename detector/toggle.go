package detector

import "sync"

// Toggle alternates the ground-truth verdict between consecutive analyses:
// no two consecutive verdicts share an outcome. It is flipped exactly once
// per top-level analysis call, never per frame or segment.
type Toggle struct {
	mu              sync.Mutex
	lastManipulated bool
}

// NewToggle seeds the initial state from r, so the first verdict of a
// process is not predictable across runs.
func NewToggle(r Rand) *Toggle {
	return &Toggle{lastManipulated: r.Intn(2) == 0}
}

// Next flips the state and returns the new verdict (true = manipulated).
func (t *Toggle) Next() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastManipulated = !t.lastManipulated
	return t.lastManipulated
}

// Seed overwrites the current state; the following Next call returns its
// negation. Intended for tests.
func (t *Toggle) Seed(lastManipulated bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastManipulated = lastManipulated
}

// Last reports the most recently returned verdict.
func (t *Toggle) Last() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastManipulated
}
