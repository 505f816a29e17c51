package lumen

import "time"

// RevealTarget is one element that fades and slides into place the first
// time it enters the viewport. Revealed never goes back to false.
type RevealTarget struct {
	Element  *Element
	DelayMs  float64
	Revealed bool
	watch    *Watch
}

// RevealController owns the reveal targets of a page.
type RevealController struct {
	doc      Document
	observer *ViewportObserver
	sched    *FrameScheduler
	opts     ObserveOptions
	offsetY  float64
	timing   Timing
	targets  []*RevealTarget
	events   *eventSink
}

// NewRevealController creates a controller. Targets start offsetY pixels
// below their rest position and fully transparent.
func NewRevealController(doc Document, observer *ViewportObserver, sched *FrameScheduler, threshold, marginPx, offsetY float64) *RevealController {
	return &RevealController{
		doc:      doc,
		observer: observer,
		sched:    sched,
		opts:     ObserveOptions{Threshold: threshold, MarginPx: marginPx, Once: true},
		offsetY:  offsetY,
		timing:   TimingReveal,
	}
}

// Add hides el and watches it. delayMs postpones the transition after the
// element enters the viewport.
func (r *RevealController) Add(el *Element, delayMs float64) *RevealTarget {
	t := &RevealTarget{Element: el, DelayMs: delayMs}
	r.doc.SetTiming(el, Timing{})
	r.doc.SetOpacity(el, 0)
	r.doc.SetTransform(el, 0, r.offsetY)
	t.watch = r.observer.Observe(el, func(*Element) { r.reveal(t) }, r.opts)
	r.targets = append(r.targets, t)
	return t
}

// Targets returns every registered target.
func (r *RevealController) Targets() []*RevealTarget {
	return r.targets
}

// Pending returns the number of targets not yet revealed.
func (r *RevealController) Pending() int {
	n := 0
	for _, t := range r.targets {
		if !t.Revealed {
			n++
		}
	}
	return n
}

// Reveal plays t's reveal now, whether or not it is on screen, and stops
// watching it. Revealing twice does nothing.
func (r *RevealController) Reveal(t *RevealTarget) {
	if t.Revealed {
		return
	}
	if t.watch != nil && t.watch.State() != WatchDetached {
		r.observer.Unobserve(t.Element)
	}
	r.reveal(t)
}

// RevealAfter reveals targets together once delay has passed on the
// scheduler clock.
func (r *RevealController) RevealAfter(delay time.Duration, targets []*RevealTarget) {
	if len(targets) == 0 {
		return
	}
	if r.sched == nil {
		for _, t := range targets {
			r.Reveal(t)
		}
		return
	}
	r.sched.After("reveal-immediate", delay, func(time.Duration) {
		for _, t := range targets {
			r.Reveal(t)
		}
	})
}

func (r *RevealController) reveal(t *RevealTarget) {
	if t.Revealed {
		return
	}
	t.Revealed = true
	r.doc.SetTiming(t.Element, r.timing.WithDelay(float32(t.DelayMs/1000)))
	r.doc.SetOpacity(t.Element, 1)
	r.doc.SetTransform(t.Element, 0, 0)

	var now time.Duration
	if r.sched != nil {
		now = r.sched.Now()
	}
	r.events.emit(elementEvent(EffectRevealed, t.Element, now))
}
