package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"stylebridge/css"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(float64) float64

// DefaultFrameRate is simulation rate used for spring timing functions.
const DefaultFrameRate = 60

var (
	defaultBezier = [4]float64{0.25, 0.1, 0.25, 1}
	defaultSpring = css.SpringParams{Mass: 1, Stiffness: 100, Damping: 10}
)

// NewEasing builds easing for timing function. Springs are simulated over
// duration at DefaultFrameRate. Invalid parameters are replaced with
// defaults and reported, easing is always usable.
func NewEasing(log *zap.Logger, tf css.TimingFunction, duration time.Duration) Easing {
	if log == nil {
		log = zap.NewNop()
	}
	switch tf.Kind {
	case css.TimingCubicBezier:
		pts := tf.Bezier
		if !validBezier(pts) {
			log.Error("Invalid easing parameters, using defaults",
				zap.String("timing", tf.Source), zap.Float64s("default", defaultBezier[:]))
			pts = defaultBezier
		}
		return newBezier(pts).ease
	case css.TimingSpring:
		sp := tf.Spring
		if !validSpring(sp) {
			log.Error("Invalid easing parameters, using defaults",
				zap.String("timing", tf.Source),
				zap.Float64("mass", defaultSpring.Mass),
				zap.Float64("stiffness", defaultSpring.Stiffness),
				zap.Float64("damping", defaultSpring.Damping))
			sp = defaultSpring
		}
		return newSpringEasing(sp, duration, DefaultFrameRate)
	default:
		return linear
	}
}

func linear(p float64) float64 {
	return p
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validBezier(p [4]float64) bool {
	return finite(p[:]...) && p[0] >= 0 && p[0] <= 1 && p[2] >= 0 && p[2] <= 1
}

func validSpring(sp css.SpringParams) bool {
	return finite(sp.Mass, sp.Stiffness, sp.Damping, sp.Velocity) &&
		sp.Mass > 0 && sp.Stiffness > 0 && sp.Damping >= 0
}

// bezier is cubic bezier curve from (0, 0) to (1, 1) in polynomial form.
type bezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

func newBezier(p [4]float64) bezier {
	var b bezier
	b.cx = 3 * p[0]
	b.bx = 3*(p[2]-p[0]) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * p[1]
	b.by = 3*(p[3]-p[1]) - b.cy
	b.ay = 1 - b.cy - b.by
	return b
}

func (b bezier) sampleX(t float64) float64 {
	return ((b.ax*t+b.bx)*t + b.cx) * t
}

func (b bezier) sampleY(t float64) float64 {
	return ((b.ay*t+b.by)*t + b.cy) * t
}

func (b bezier) slopeX(t float64) float64 {
	return (3*b.ax*t+2*b.bx)*t + b.cx
}

const bezierEpsilon = 1e-7

// solveX finds curve parameter for x: a few Newton steps, bisection when
// slope is too flat.
func (b bezier) solveX(x float64) float64 {
	t := x
	for range 8 {
		d := b.sampleX(t) - x
		if math.Abs(d) < bezierEpsilon {
			return t
		}
		slope := b.slopeX(t)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= d / slope
	}

	lo, hi := 0.0, 1.0
	t = x
	for range 64 {
		v := b.sampleX(t)
		if math.Abs(v-x) < bezierEpsilon {
			break
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = lo + (hi-lo)/2
	}
	return t
}

func (b bezier) ease(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return b.sampleY(b.solveX(p))
}

// newSpringEasing simulates damped spring moving from 0 to 1 and samples
// its position once per frame. Last frame is forced to 1 so animation ends
// exactly on the final keyframe.
func newSpringEasing(sp css.SpringParams, duration time.Duration, fps int) Easing {
	frames := max(1, int(math.Ceil(duration.Seconds()*float64(fps))))
	omega := math.Sqrt(sp.Stiffness / sp.Mass)
	zeta := sp.Damping / (2 * math.Sqrt(sp.Stiffness*sp.Mass))
	spring := harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)

	samples := make([]float64, frames+1)
	pos, vel := 0.0, sp.Velocity
	for i := 1; i <= frames; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	samples[frames] = 1

	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		x := p * float64(frames)
		i := int(x)
		return lerp(samples[i], samples[i+1], x-float64(i))
	}
}
