package lumen

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNoNumber is returned when a counter's text has no parseable number.
var ErrNoNumber = errors.New("lumen: counter text has no number")

// CounterDuration is the length of the counting ramp.
const CounterDuration = 2000 * time.Millisecond

// CounterPhase is the counter state machine.
type CounterPhase uint8

const (
	CounterIdle CounterPhase = iota
	CounterRunning
	CounterDone
)

// String returns the phase name.
func (p CounterPhase) String() string {
	switch p {
	case CounterIdle:
		return "idle"
	case CounterRunning:
		return "running"
	case CounterDone:
		return "done"
	default:
		return "unknown"
	}
}

// CounterTarget describes what a counter counts up to, parsed from the
// element's original text.
type CounterTarget struct {
	Element  *Element
	Value    float64
	Decimals int    // 0 or 1
	Suffix   string // "", "%", "+" or "%+"
}

// ParseCounterText extracts the target from text like "120+", "98.6%" or
// "50%+". Every digit and dot is kept, everything else dropped, then the
// result is parsed as a float.
func ParseCounterText(text string) (CounterTarget, error) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	// Leading numeric prefix, as a lenient float parse would take.
	end := 0
	dot := false
	for end < len(s) {
		if s[end] == '.' {
			if dot {
				break
			}
			dot = true
		}
		end++
	}
	s = strings.TrimSuffix(s[:end], ".")
	if s == "" || s == "." {
		return CounterTarget{}, ErrNoNumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return CounterTarget{}, ErrNoNumber
	}

	t := CounterTarget{Value: v}
	if strings.Contains(text, ".") {
		t.Decimals = 1
	}
	if strings.Contains(text, "%") {
		t.Suffix += "%"
	}
	if strings.Contains(text, "+") {
		t.Suffix += "+"
	}
	return t, nil
}

// EaseOutExpo is the counter curve: 1 - 2^(-10t), exactly 1 at t = 1.
// ease.OutExpo overshoots by 0.1%, so the curve is computed here.
func EaseOutExpo(t float64) float64 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// FormatCounter renders v with the target's precision and suffix.
// Integers are floored so the display never runs ahead of the ramp.
func FormatCounter(v float64, decimals int, suffix string) string {
	if decimals > 0 {
		return strconv.FormatFloat(v, 'f', decimals, 64) + suffix
	}
	return strconv.FormatFloat(math.Floor(v), 'f', 0, 64) + suffix
}

// CounterAnimator ramps one element's text from zero to its target.
// It requests its own frames while running and stops requesting once done.
type CounterAnimator struct {
	target    CounterTarget
	doc       Document
	sched     *FrameScheduler
	duration  time.Duration
	phase     CounterPhase
	startedAt time.Duration
	frames    int
	events    *eventSink
}

// NewCounter parses el's text. It returns ErrNoNumber, and leaves the text
// alone, when there is nothing to count.
func NewCounter(doc Document, sched *FrameScheduler, el *Element) (*CounterAnimator, error) {
	target, err := ParseCounterText(el.Text)
	if err != nil {
		return nil, err
	}
	target.Element = el
	return &CounterAnimator{
		target:   target,
		doc:      doc,
		sched:    sched,
		duration: CounterDuration,
	}, nil
}

// Target returns the parsed target.
func (c *CounterAnimator) Target() CounterTarget {
	return c.target
}

// Phase returns the current state.
func (c *CounterAnimator) Phase() CounterPhase {
	return c.phase
}

// StartedAt returns the start timestamp and whether the counter has started.
func (c *CounterAnimator) StartedAt() (time.Duration, bool) {
	return c.startedAt, c.phase != CounterIdle
}

// Frames returns the number of frames rendered while running.
func (c *CounterAnimator) Frames() int {
	return c.frames
}

// Start moves idle → running, shows the zero state and requests the first
// frame. Later calls do nothing.
func (c *CounterAnimator) Start() {
	if c.phase != CounterIdle {
		return
	}
	c.phase = CounterRunning
	c.startedAt = c.sched.Now()
	c.doc.SetText(c.target.Element, c.display(0))
	c.sched.RequestFrame("counter", c.frame)

	e := elementEvent(EffectCounterStarted, c.target.Element, c.startedAt)
	e.Value = c.target.Value
	c.events.emit(e)
}

func (c *CounterAnimator) frame(now time.Duration) {
	if c.phase != CounterRunning {
		return
	}
	c.frames++
	t := clamp01(float64(now-c.startedAt) / float64(c.duration))
	c.doc.SetText(c.target.Element, c.display(EaseOutExpo(t)))
	if t >= 1 {
		c.phase = CounterDone
		e := elementEvent(EffectCounterDone, c.target.Element, now)
		e.Value = c.target.Value
		c.events.emit(e)
		return
	}
	c.sched.RequestFrame("counter", c.frame)
}

func (c *CounterAnimator) display(eased float64) string {
	return FormatCounter(c.target.Value*eased, c.target.Decimals, c.target.Suffix)
}
