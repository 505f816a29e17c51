package lumen

import "time"

// EntranceTarget is one element that slides in once after the page starts,
// without waiting to be scrolled into view.
type EntranceTarget struct {
	Element *Element
	DelayMs float64
	Entered bool
}

// EntranceController plays timed entrance animations, typically the hero
// decorations that appear one after another on load.
type EntranceController struct {
	doc     Document
	sched   *FrameScheduler
	offsetX float64
	timing  Timing
	targets []*EntranceTarget
	events  *eventSink
	started bool
}

// NewEntranceController creates a controller. Targets start offsetX pixels
// beside their rest position and fully transparent.
func NewEntranceController(doc Document, sched *FrameScheduler, offsetX float64) *EntranceController {
	return &EntranceController{doc: doc, sched: sched, offsetX: offsetX, timing: TimingEntrance}
}

// Add hides el. It enters delayMs after Start.
func (e *EntranceController) Add(el *Element, delayMs float64) *EntranceTarget {
	t := &EntranceTarget{Element: el, DelayMs: delayMs}
	e.doc.SetTiming(el, Timing{})
	e.doc.SetOpacity(el, 0)
	_, y, _ := el.Target()
	e.doc.SetTransform(el, e.offsetX, y)
	e.targets = append(e.targets, t)
	return t
}

// Targets returns every registered target.
func (e *EntranceController) Targets() []*EntranceTarget {
	return e.targets
}

// Start schedules every entrance. Calling Start twice does nothing.
func (e *EntranceController) Start() {
	if e.started {
		return
	}
	e.started = true
	for _, t := range e.targets {
		e.sched.After("entrance", time.Duration(t.DelayMs*float64(time.Millisecond)), func(now time.Duration) {
			e.enter(t, now)
		})
	}
}

func (e *EntranceController) enter(t *EntranceTarget, now time.Duration) {
	if t.Entered {
		return
	}
	t.Entered = true
	e.doc.SetTiming(t.Element, e.timing)
	e.doc.SetOpacity(t.Element, 1)
	_, y, _ := t.Element.Target()
	e.doc.SetTransform(t.Element, 0, y)
	e.events.emit(elementEvent(EffectEntered, t.Element, now))
}
