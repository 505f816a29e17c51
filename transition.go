package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timing is a transition preset: how long a transform/opacity change takes
// to settle, how long it waits before starting, and the easing curve.
// The zero value means "apply instantly".
type Timing struct {
	Duration float32 // seconds
	Delay    float32 // seconds
	Ease     ease.TweenFunc
}

// Instant reports whether changes under this timing apply immediately.
func (t Timing) Instant() bool {
	return t.Duration <= 0 && t.Delay <= 0
}

// WithDelay returns a copy of t that waits delay seconds before starting.
func (t Timing) WithDelay(delay float32) Timing {
	t.Delay = delay
	return t
}

var (
	// TimingFast makes pointer tracking feel immediate.
	TimingFast = Timing{Duration: 0.1, Ease: ease.OutQuad}
	// TimingSlow animates the return to rest.
	TimingSlow = Timing{Duration: 0.3, Ease: ease.OutCubic}
	// TimingReveal fades and slides content into place.
	TimingReveal = Timing{Duration: 0.8, Ease: ease.OutCubic}
	// TimingEntrance eases entrance elements in with a long tail.
	TimingEntrance = Timing{Duration: 0.8, Ease: ease.OutQuint}
	// TimingNav slides the navigation bar in and out.
	TimingNav = Timing{Duration: 0.3, Ease: ease.InOutQuad}
)

// transition animates an element's X, Y and Opacity toward their targets.
// It is rebuilt whenever a target changes and stops once every tween has
// finished. If the element is removed from its page, the page drops it.
type transition struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	delay  float32
	Done   bool
}

func newTransition(el *Element, t Timing) *transition {
	fn := t.Ease
	if fn == nil {
		fn = ease.Linear
	}
	d := t.Duration
	if d <= 0 {
		// A pure delay: jump to the target once the delay elapses.
		d = 1e-6
		fn = ease.Linear
	}
	g := &transition{delay: t.Delay}
	g.tweens[0] = gween.New(float32(el.X), float32(el.targetX), d, fn)
	g.tweens[1] = gween.New(float32(el.Y), float32(el.targetY), d, fn)
	g.tweens[2] = gween.New(float32(el.Opacity), float32(el.targetOpacity), d, fn)
	g.fields[0] = &el.X
	g.fields[1] = &el.Y
	g.fields[2] = &el.Opacity
	return g
}

// update advances the tweens by dt seconds and writes the values to the
// element. Time spent in the delay is consumed first.
func (g *transition) update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		if dt <= g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}

	allDone := true
	for i := range g.tweens {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// snap writes the exact targets, discarding float32 tween rounding.
func (g *transition) snap(el *Element) {
	el.X, el.Y, el.Opacity = el.targetX, el.targetY, el.targetOpacity
	g.Done = true
}
