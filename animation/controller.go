package animation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// resumeThreshold is the smallest remaining progress worth resuming, below
// it animation is restarted instead.
const resumeThreshold = 0.01

// ControllerOption configures Controller.
type ControllerOption func(*Controller)

// WithReducedMotion makes controller skip animation: start moves finite
// animation straight to completed state, fill mode still applies. Infinite
// animation is held at its first keyframe.
func WithReducedMotion(reduced bool) ControllerOption {
	return func(c *Controller) {
		c.reducedMotion = reduced
	}
}

// OnComplete sets callback invoked when animation finishes on its own. It
// is never called for infinite animations, after Stop or after Dispose.
// Callback is invoked without holding controller lock and may call any
// controller method, including Start. Completions raised while callback is
// still running are dropped.
func OnComplete(fn func()) ControllerOption {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// WithStopResolver makes controller resolve keyframe values for the render
// it animates. Without it values are used as declared.
func WithStopResolver(fn StopResolver) ControllerOption {
	return func(c *Controller) {
		c.resolveStops = fn
	}
}

// Controller runs a single keyframe animation: not-started, running and
// completed states with orthogonal paused flag. Once disposed every method
// is a no-op.
type Controller struct {
	id            string
	log           *zap.Logger
	registry      *Registry
	reducedMotion bool
	onComplete    func()
	resolveStops  StopResolver

	mu       sync.Mutex
	driver   Driver
	meta     Metadata
	def      Definition
	stops    []Stop
	hasDef   bool
	easing   Easing
	state    State
	paused   bool
	captured float64
	cycles   int
	gen      uint64
	disposed bool
	// notifying is set while completion callback runs
	notifying bool
}

// NewController creates controller for animation described by meta. It
// does not start animation.
func NewController(log *zap.Logger, registry *Registry, driver Driver, meta Metadata, opts ...ControllerOption) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		id:       uuid.NewString(),
		registry: registry,
		driver:   driver,
		meta:     meta,
		easing:   linear,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = log.Named("animation").With(zap.String("controller", c.id))
	// resolved early so backwards fill applies before start
	c.load(registry.Resolve(meta.Name))
	return c
}

// ID returns controller instance id.
func (c *Controller) ID() string {
	return c.id
}

// State returns current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Paused reports whether running animation is paused.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paused
}

// Metadata returns animation configuration controller currently uses.
func (c *Controller) Metadata() Metadata {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.meta
}

// Start (re)starts animation from the beginning. Animation with unknown
// keyframes does not start.
func (c *Controller) Start() {
	c.notify(c.withLock(c.start))
}

// Pause freezes running animation at its current progress.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pause()
}

// Resume continues paused animation. When almost nothing is left to play
// animation is started over.
func (c *Controller) Resume() {
	c.notify(c.withLock(c.resume))
}

// Stop cancels animation and returns controller to not-started state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stop()
}

// Dispose stops animation and makes controller inert.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.stop()
	c.disposed = true
	c.driver = nil
	c.log.Debug("Animation disposed")
}

// Sync applies new animation configuration. Changes in keyframes, timing or
// iteration setup restart running animation, play state change pauses or
// resumes it.
func (c *Controller) Sync(meta Metadata) {
	complete := c.withLock(func() func() {
		prev := c.meta
		c.meta = meta
		if prev.Name != meta.Name {
			c.load(c.registry.Resolve(meta.Name))
		}
		if c.state == StateNotStarted {
			return nil
		}
		if restartNeeded(prev, meta) {
			return c.start()
		}
		switch {
		case meta.PlayState == PlayStatePaused && !c.paused:
			c.pause()
		case meta.PlayState == PlayStateRunning && c.paused:
			return c.resume()
		}
		return nil
	})
	c.notify(complete)
}

func restartNeeded(prev, next Metadata) bool {
	return prev.Name != next.Name ||
		prev.Duration != next.Duration ||
		prev.Delay != next.Delay ||
		prev.Iterations != next.Iterations ||
		prev.Direction != next.Direction ||
		prev.Timing.Source != next.Timing.Source ||
		prev.NativeDriver != next.NativeDriver
}

// Style returns animated style for base style at current progress.
func (c *Controller) Style(base map[string]any) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasDef || c.disposed {
		return base
	}
	if out, ok := ApplyFillMode(c.stops, c.meta.Direction, c.meta.FillMode, c.state, base); ok {
		return out
	}
	if c.state == StateNotStarted {
		return base
	}
	progress := c.captured
	if !c.paused {
		progress = c.driver.Progress()
	}
	return Sample(c.stops, base, c.meta.Direction, c.ease(progress))
}

// ease applies timing function to driver progress. For alternate
// directions driver cycle holds two CSS iterations and each half is eased
// separately.
func (c *Controller) ease(p float64) float64 {
	if !alternate(c.meta.Direction) {
		return c.easing(p)
	}
	if p < 0.5 {
		return 0.5 * c.easing(2*p)
	}
	return 0.5 + 0.5*c.easing(2*p-1)
}

func alternate(dir Direction) bool {
	return dir == DirectionAlternate || dir == DirectionAlternateReverse
}

// load keeps keyframe definition and its stops resolved for current render.
func (c *Controller) load(def Definition, ok bool) {
	c.def, c.hasDef = def, ok
	c.stops = nil
	if ok {
		c.stops = ResolveStops(def.Stops, c.resolveStops)
	}
}

// notify invokes completion callback outside of controller lock.
// Completions raised while callback is running are dropped.
func (c *Controller) notify(complete func()) {
	if complete == nil {
		return
	}
	c.mu.Lock()
	if c.notifying {
		c.mu.Unlock()
		c.log.Debug("Nested animation completion dropped")
		return
	}
	c.notifying = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.notifying = false
		c.mu.Unlock()
	}()
	complete()
}

// withLock runs fn under controller lock and returns completion callback
// to be invoked after the lock is released.
func (c *Controller) withLock(fn func() func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	return fn()
}

// tween builds driver tween for current metadata. Alternate directions
// play two CSS iterations per cycle.
func (c *Controller) tween() Tween {
	t := Tween{
		Duration:   c.meta.Duration,
		Delay:      c.meta.Delay,
		Iterations: c.meta.Iterations,
	}
	if alternate(c.meta.Direction) {
		t.Duration *= 2
		t.Iterations /= 2
	}
	return t
}

func (c *Controller) start() func() {
	c.gen++
	c.driver.Reset()
	c.paused = false
	c.captured = 0
	c.cycles = 0

	c.load(c.registry.Resolve(c.meta.Name))
	if !c.hasDef {
		c.state = StateNotStarted
		c.log.Warn("Animation keyframes not found, animation will not start",
			zap.String("keyframes", c.meta.Name), zap.Error(ErrUnknownKeyframes))
		return nil
	}
	c.easing = NewEasing(c.log, c.meta.Timing, c.meta.Duration)

	if c.reducedMotion {
		if c.meta.Infinite() {
			c.state = StateRunning
			c.log.Debug("Animation held, reduced motion requested")
			return nil
		}
		c.state = StateCompleted
		c.log.Debug("Animation skipped, reduced motion requested")
		return c.onComplete
	}

	c.driver.Run(c.tween(), c.finisher(c.gen))
	c.state = StateRunning
	c.log.Debug("Animation started",
		zap.String("keyframes", c.meta.Name),
		zap.Duration("duration", c.meta.Duration),
		zap.Duration("delay", c.meta.Delay),
		zap.Float64("iterations", c.meta.Iterations),
		zap.Stringer("direction", c.meta.Direction),
		zap.Bool("native", c.meta.NativeDriver))

	if c.meta.PlayState == PlayStatePaused {
		c.pause()
	}
	return nil
}

func (c *Controller) pause() {
	if c.paused || c.state != StateRunning {
		return
	}
	c.captured = c.driver.Progress()
	// driver counts cycles of the current run only
	c.cycles += c.driver.Iteration()
	c.driver.Cancel()
	c.paused = true
	c.log.Debug("Animation paused", zap.Float64("progress", c.captured))
}

func (c *Controller) resume() func() {
	if !c.paused {
		return nil
	}
	if c.reducedMotion {
		c.paused = false
		return nil
	}
	if 1-c.captured < resumeThreshold {
		c.log.Debug("Animation almost finished, restarting", zap.Float64("progress", c.captured))
		return c.start()
	}
	t := c.tween()
	t.From = c.captured
	t.Delay = 0
	t.Iterations -= float64(c.cycles)
	c.gen++
	c.driver.Run(t, c.finisher(c.gen))
	c.paused = false
	c.state = StateRunning
	c.log.Debug("Animation resumed",
		zap.Float64("progress", c.captured),
		zap.Duration("remaining", time.Duration(float64(t.Duration)*(1-c.captured))))
	return nil
}

func (c *Controller) stop() {
	c.gen++
	if c.driver != nil {
		c.driver.Cancel()
	}
	c.paused = false
	c.state = StateNotStarted
}

// finisher returns driver completion callback bound to run generation,
// callbacks of replaced or cancelled runs are ignored.
func (c *Controller) finisher(gen uint64) func() {
	return func() {
		complete := c.withLock(func() func() {
			if gen != c.gen || c.meta.Infinite() {
				return nil
			}
			c.state = StateCompleted
			c.log.Debug("Animation completed")
			return c.onComplete
		})
		c.notify(complete)
	}
}
