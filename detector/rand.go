package detector

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source behind every synthesized score. *rand.Rand
// satisfies it; tests substitute a seeded instance for reproducible draws.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand serializes draws so one engine can serve overlapping requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func newDefaultRand() Rand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// between returns a uniform draw from the half-open interval [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// jitterNear returns a confidence near base, offset by up to ±spread and
// clamped to [0, 100].
func jitterNear(r Rand, base, spread float64) float64 {
	v := base + (r.Float64()*2-1)*spread
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
