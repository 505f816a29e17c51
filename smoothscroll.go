package lumen

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SmoothScroller animates the page scroll offset to a destination, the way
// in-page anchor links glide instead of jumping. Wheel input glides too,
// on its own duration and curve.
type SmoothScroller struct {
	doc      Document
	scroller Scroller
	duration float32
	wheel    float32
	offset   float64 // space kept above the destination (fixed navbar)

	tween  *gween.Tween
	dest   float64
	last   time.Duration
	primed bool
}

// NewSmoothScroller creates a scroller. duration is in seconds; offset is
// subtracted from element destinations.
func NewSmoothScroller(doc Document, scroller Scroller, duration float32, offset float64) *SmoothScroller {
	return &SmoothScroller{doc: doc, scroller: scroller, duration: duration, offset: offset}
}

// SetWheelDuration sets the wheel glide length in seconds. Zero makes
// ScrollBy jump.
func (s *SmoothScroller) SetWheelDuration(d float32) {
	s.wheel = d
}

// ScrollTo starts gliding to y (clamped to the document). A glide already
// in progress is replaced, starting from the current offset.
func (s *SmoothScroller) ScrollTo(y float64) {
	s.glide(y, s.duration, ease.InOutCubic)
}

// ScrollBy glides dy pixels past the current destination, so wheel notches
// arriving mid-glide add up instead of restarting from where the page is.
func (s *SmoothScroller) ScrollBy(dy float64) {
	from := s.scroller.ScrollY()
	if s.tween != nil {
		from = s.dest
	}
	s.glide(from+dy, s.wheel, WheelEase)
}

func (s *SmoothScroller) glide(y float64, d float32, fn ease.TweenFunc) {
	y = clamp(y, 0, s.scroller.MaxScrollY())
	s.dest = y
	if d <= 0 {
		s.tween = nil
		s.scroller.SetScrollY(y)
		return
	}
	if s.tween == nil {
		s.primed = false
	}
	s.tween = gween.New(float32(s.scroller.ScrollY()), float32(y), d, fn)
}

// WheelEase is the wheel glide curve: 1.001 - 2^(-10t), capped at 1.
func WheelEase(t, b, c, d float32) float32 {
	p := 1.001 - math.Pow(2, -10*float64(t/d))
	return b + c*float32(min(p, 1))
}

// ScrollToElement glides so el's top sits offset pixels below the viewport
// top.
func (s *SmoothScroller) ScrollToElement(el *Element) {
	box := s.doc.BoundingBox(el)
	s.ScrollTo(s.scroller.ScrollY() + box.Y - el.Y - s.offset)
}

// Active reports whether a glide is in progress.
func (s *SmoothScroller) Active() bool {
	return s.tween != nil
}

// Update is the frame callback. The first frame after ScrollTo only records
// the timestamp.
func (s *SmoothScroller) Update(now time.Duration) {
	if s.tween == nil {
		return
	}
	if !s.primed {
		s.primed = true
		s.last = now
		return
	}
	dt := float32((now - s.last).Seconds())
	s.last = now
	val, done := s.tween.Update(dt)
	if done {
		s.tween = nil
		s.scroller.SetScrollY(s.dest)
		return
	}
	s.scroller.SetScrollY(float64(val))
}
