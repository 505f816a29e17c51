package lumen

import "time"

// ScrollState is the shared scroll bookkeeping. Only ScrollTracker writes
// it; ParallaxEngine and the navbar policy read it.
type ScrollState struct {
	OffsetY     float64
	LastOffsetY float64
	NavHidden   bool
	Scrolled    bool // OffsetY is past NavPolicy.ScrolledAfter
	// PendingFrame is true while exactly one recompute is queued.
	PendingFrame bool
}

// NavPolicy holds the navbar thresholds in pixels.
type NavPolicy struct {
	HideAfter     float64 // scrolling down past this hides the bar
	ScrolledAfter float64 // past this the bar switches to its solid style
}

// DefaultNavPolicy matches the landing page: hide past 200px, solid past 50px.
var DefaultNavPolicy = NavPolicy{HideAfter: 200, ScrolledAfter: 50}

// NavAppearance is the navbar background style.
type NavAppearance struct {
	Background Color
	Shadow     float64
}

var (
	navLightTop      = NavAppearance{Background: Color{1, 1, 1, 0.8}}
	navLightScrolled = NavAppearance{Background: Color{1, 1, 1, 0.98}, Shadow: 0.1}
	navDarkTop       = NavAppearance{Background: Color{0.06, 0.07, 0.1, 0.8}}
	navDarkScrolled  = NavAppearance{Background: Color{0.06, 0.07, 0.1, 0.98}, Shadow: 0.3}
)

// NavBackground returns one of two fixed styles per theme. There is no
// interpolation between them.
func NavBackground(scrolled, dark bool) NavAppearance {
	switch {
	case dark && scrolled:
		return navDarkScrolled
	case dark:
		return navDarkTop
	case scrolled:
		return navLightScrolled
	default:
		return navLightTop
	}
}

// NextNavHidden applies the direction rules. Scrolling down past hideAfter
// hides the bar; any upward scroll shows it again, with no floor check.
func NextNavHidden(offset, last float64, hidden bool, hideAfter float64) bool {
	if offset > last && offset > hideAfter && !hidden {
		return true
	}
	if offset < last && hidden {
		return false
	}
	return hidden
}

// ScrollTracker turns raw scroll notifications into at most one state
// recompute per frame and drives the navbar from the result.
type ScrollTracker struct {
	state    *ScrollState
	sched    *FrameScheduler
	scroller interface{ ScrollY() float64 }
	doc      Document
	nav      *Element
	theme    *ThemeFlag
	policy   NavPolicy
	events   *eventSink

	recomputes uint64
	onUpdate   []func(*ScrollState)
}

// NewScrollTracker creates a tracker. nav may be nil, in which case only
// ScrollState is maintained.
func NewScrollTracker(state *ScrollState, sched *FrameScheduler, doc Document, scroller interface{ ScrollY() float64 }, nav *Element, theme *ThemeFlag, policy NavPolicy) *ScrollTracker {
	return &ScrollTracker{
		state:    state,
		sched:    sched,
		scroller: scroller,
		doc:      doc,
		nav:      nav,
		theme:    theme,
		policy:   policy,
	}
}

// State returns the tracked scroll state.
func (t *ScrollTracker) State() *ScrollState {
	return t.state
}

// Recomputes returns how many frame-aligned recomputes have run.
func (t *ScrollTracker) Recomputes() uint64 {
	return t.recomputes
}

// OnUpdate registers a listener run after every recompute.
func (t *ScrollTracker) OnUpdate(fn func(*ScrollState)) {
	t.onUpdate = append(t.onUpdate, fn)
}

// OnScroll is the scroll event handler. It may be called any number of
// times per frame; only the first call before a tick queues work.
func (t *ScrollTracker) OnScroll() {
	if t.state.PendingFrame {
		return
	}
	t.state.PendingFrame = true
	t.sched.RequestFrame("scroll", t.recompute)
}

func (t *ScrollTracker) recompute(now time.Duration) {
	s := t.state
	s.PendingFrame = false
	t.recomputes++

	offset := t.scroller.ScrollY()
	s.LastOffsetY = s.OffsetY
	s.OffsetY = offset
	s.Scrolled = offset > t.policy.ScrolledAfter

	hidden := NextNavHidden(offset, s.LastOffsetY, s.NavHidden, t.policy.HideAfter)
	if hidden != s.NavHidden {
		s.NavHidden = hidden
		t.applyNavPosition()
		kind := EffectNavShown
		if hidden {
			kind = EffectNavHidden
		}
		e := elementEvent(kind, t.nav, now)
		e.Offset = offset
		t.events.emit(e)
	}
	t.ApplyAppearance()

	for _, fn := range t.onUpdate {
		fn(s)
	}
}

// applyNavPosition slides the bar out by its own height, or back to rest.
func (t *ScrollTracker) applyNavPosition() {
	if t.nav == nil {
		return
	}
	t.doc.SetTiming(t.nav, TimingNav)
	if t.state.NavHidden {
		t.doc.SetTransform(t.nav, 0, -t.nav.Bounds.Height)
	} else {
		t.doc.SetTransform(t.nav, 0, 0)
	}
}

// ApplyAppearance writes the background style for the current scroll
// state and theme. Call it when the theme changes.
func (t *ScrollTracker) ApplyAppearance() {
	if t.nav == nil {
		return
	}
	a := NavBackground(t.state.Scrolled, t.theme.Dark())
	t.doc.SetColor(t.nav, a.Background)
	t.doc.SetShadow(t.nav, a.Shadow)
}
