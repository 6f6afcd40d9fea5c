package animation

import (
	"math"
	"sync"
	"time"
)

// Tween describes progress animation. Progress starts at From and grows by
// one per Duration once Delay has passed, wrapping to 0 at the end of each
// cycle. Tween finishes when Iterations cycles, counted from 0, have been
// played; infinite iterations never finish.
type Tween struct {
	From       float64
	Duration   time.Duration
	Delay      time.Duration
	Iterations float64
}

func (t Tween) infinite() bool {
	return math.IsInf(t.Iterations, 1)
}

// Driver produces animation progress over time.
type Driver interface {
	// Run starts tween replacing the one in flight. done is called once when
	// tween finishes on its own, never from within Run and never after
	// Cancel or Reset.
	Run(t Tween, done func())
	// Progress returns progress of the current cycle in [0, 1].
	Progress() float64
	// Iteration returns number of completed cycles.
	Iteration() int
	// Cancel stops tween keeping progress.
	Cancel()
	// Reset stops tween and rewinds progress to 0.
	Reset()
}

// Timeline is Driver advanced explicitly by elapsed frame time, it plays
// the role of host frame loop. Safe for concurrent use, done callbacks are
// invoked without holding internal lock so they may call back into
// controller.
type Timeline struct {
	mu        sync.Mutex
	tween     Tween
	elapsed   time.Duration
	progress  float64
	iteration int
	running   bool
	done      func()
}

// NewTimeline returns idle timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) Run(t Tween, done func()) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.tween = t
	tl.elapsed = 0
	tl.progress = math.Max(0, math.Min(1, t.From))
	tl.iteration = 0
	tl.running = true
	tl.done = done
}

func (tl *Timeline) Progress() float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return tl.progress
}

func (tl *Timeline) Iteration() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return tl.iteration
}

func (tl *Timeline) Cancel() {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.running = false
	tl.done = nil
}

func (tl *Timeline) Reset() {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.running = false
	tl.done = nil
	tl.elapsed = 0
	tl.progress = 0
	tl.iteration = 0
}

// Running reports whether tween is in flight.
func (tl *Timeline) Running() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return tl.running
}

// Advance moves timeline forward by dt. It returns false when nothing is
// running anymore.
func (tl *Timeline) Advance(dt time.Duration) bool {
	done, running := tl.advance(dt)
	if done != nil {
		done()
	}
	return running
}

func (tl *Timeline) advance(dt time.Duration) (func(), bool) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if !tl.running {
		return nil, false
	}
	tl.elapsed += dt
	active := tl.elapsed - tl.tween.Delay
	if active < 0 {
		return nil, true
	}

	var pos float64
	switch {
	case tl.tween.Duration > 0:
		pos = tl.tween.From + active.Seconds()/tl.tween.Duration.Seconds()
	case tl.tween.infinite():
		// zero length cycles repeated forever, hold the end
		tl.progress = 1
		return nil, true
	default:
		pos = tl.tween.Iterations
	}

	if !tl.tween.infinite() && pos >= tl.tween.Iterations {
		end := tl.tween.Iterations - math.Floor(tl.tween.Iterations)
		if end == 0 && tl.tween.Iterations > 0 {
			end = 1
		}
		tl.progress = end
		tl.iteration = int(math.Ceil(tl.tween.Iterations))
		tl.running = false
		done := tl.done
		tl.done = nil
		return done, false
	}
	tl.iteration = int(pos)
	tl.progress = pos - math.Floor(pos)
	return nil, true
}
