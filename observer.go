package lumen

import "time"

// ObserveOptions configures one watched element.
type ObserveOptions struct {
	// Threshold is the visible fraction (0..1) the element must reach.
	// Zero fires on any overlap.
	Threshold float64
	// MarginPx grows the viewport on every side before testing; negative
	// values shrink it so elements must be further in to count.
	MarginPx float64
	// Once stops watching after the first fire.
	Once bool
}

// WatchState is the per-target lifecycle.
type WatchState uint8

const (
	WatchPending  WatchState = iota // waiting to enter
	WatchFired                      // inside; re-arms on exit unless Once
	WatchDetached                   // no longer observed; never fires again
)

// String returns the state name.
func (s WatchState) String() string {
	switch s {
	case WatchPending:
		return "pending"
	case WatchFired:
		return "fired"
	case WatchDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Watch is the handle for one observed element.
type Watch struct {
	Element *Element
	opts    ObserveOptions
	onEnter func(*Element)
	state   WatchState
	fires   int
}

// State returns the watch's lifecycle state.
func (w *Watch) State() WatchState {
	return w.state
}

// Fires returns how many times the watch has fired.
func (w *Watch) Fires() int {
	return w.fires
}

// ViewportObserver tests many elements against the viewport in one pass
// per frame. One observer serves every effect; there is no watcher per
// element.
type ViewportObserver struct {
	doc      Document
	watches  []*Watch
	checks   uint64
	checking bool
}

// NewViewportObserver creates an observer over doc.
func NewViewportObserver(doc Document) *ViewportObserver {
	return &ViewportObserver{doc: doc}
}

// Observe starts watching el. onEnter runs from Check, never from Observe
// itself, even when el is already visible.
func (o *ViewportObserver) Observe(el *Element, onEnter func(*Element), opts ObserveOptions) *Watch {
	w := &Watch{Element: el, opts: opts, onEnter: onEnter}
	o.watches = append(o.watches, w)
	return w
}

// Unobserve detaches every watch on el.
func (o *ViewportObserver) Unobserve(el *Element) {
	for _, w := range o.watches {
		if w.Element == el {
			w.state = WatchDetached
		}
	}
	if !o.checking {
		o.compact()
	}
}

// Checks returns how many passes have run.
func (o *ViewportObserver) Checks() uint64 {
	return o.checks
}

// Len returns the number of live watches.
func (o *ViewportObserver) Len() int {
	return len(o.watches)
}

// Check is the frame callback: it evaluates every live watch and fires
// the ones that crossed into view since the last check.
func (o *ViewportObserver) Check(time.Duration) {
	o.checks++
	o.checking = true
	vp := o.doc.Viewport().Rect()
	// Index loop: onEnter may call Observe and grow the slice.
	for i := 0; i < len(o.watches); i++ {
		w := o.watches[i]
		if w.state == WatchDetached {
			continue
		}
		in := o.intersecting(w, vp)
		switch {
		case in && w.state == WatchPending:
			w.state = WatchFired
			w.fires++
			if w.opts.Once {
				w.state = WatchDetached
			}
			if w.onEnter != nil {
				w.onEnter(w.Element)
			}
		case !in && w.state == WatchFired:
			w.state = WatchPending
		}
	}
	o.checking = false
	if o.hasDetached() {
		o.compact()
	}
}

func (o *ViewportObserver) hasDetached() bool {
	for _, w := range o.watches {
		if w.state == WatchDetached {
			return true
		}
	}
	return false
}

// VisibleFraction returns how much of el's box lies inside the viewport
// grown by marginPx.
func (o *ViewportObserver) VisibleFraction(el *Element, marginPx float64) float64 {
	return visibleFraction(o.doc.BoundingBox(el), o.doc.Viewport().Rect().Expand(marginPx))
}

func (o *ViewportObserver) intersecting(w *Watch, vp Rect) bool {
	box := o.doc.BoundingBox(w.Element)
	root := vp.Expand(w.opts.MarginPx)
	if box.Intersection(root).Area() <= 0 {
		return false
	}
	return visibleFraction(box, root) >= w.opts.Threshold
}

func visibleFraction(box, root Rect) float64 {
	area := box.Area()
	if area <= 0 {
		return 0
	}
	return box.Intersection(root).Area() / area
}

// compact drops detached watches.
func (o *ViewportObserver) compact() {
	live := o.watches[:0]
	for _, w := range o.watches {
		if w.state != WatchDetached {
			live = append(live, w)
		}
	}
	for i := len(live); i < len(o.watches); i++ {
		o.watches[i] = nil
	}
	o.watches = live
}
