package lumen

import (
	"testing"
	"time"
)

func TestEntranceStaggersAfterStart(t *testing.T) {
	page := NewPage(800, 600)
	sched := NewFrameScheduler()
	e := NewEntranceController(page, sched, -30)
	store := &recordingStore{}
	e.events = &eventSink{store: store}

	var notes []*Element
	for i := 0; i < 3; i++ {
		el := page.Add(NewElement("div.visual-notification", Rect{X: 500, Y: 100 + float64(i)*80, Width: 200, Height: 60}))
		e.Add(el, 800+float64(i)*200)
		notes = append(notes, el)
	}
	for i, el := range notes {
		if el.Opacity != 0 || el.X != -30 || el.Animating() {
			t.Fatalf("note %d hidden state = opacity %v x %v", i, el.Opacity, el.X)
		}
	}

	e.Start()
	e.Start()
	entered := func() int {
		n := 0
		for _, tg := range e.Targets() {
			if tg.Entered {
				n++
			}
		}
		return n
	}

	now := time.Duration(0)
	tickUntil := func(end time.Duration) {
		for ; now <= end; now += frame {
			sched.Tick(now)
			page.Update(float32(frame.Seconds()))
		}
	}
	tickUntil(790 * time.Millisecond)
	if entered() != 0 {
		t.Fatalf("entered before 800ms: %d", entered())
	}
	tickUntil(900 * time.Millisecond)
	if entered() != 1 {
		t.Fatalf("entered by 900ms = %d, want 1", entered())
	}
	if notes[0].Timing.Duration != TimingEntrance.Duration {
		t.Errorf("timing = %+v, want entrance", notes[0].Timing)
	}
	tickUntil(1300 * time.Millisecond)
	if entered() != 3 {
		t.Fatalf("entered by 1300ms = %d, want 3", entered())
	}
	tickUntil(2500 * time.Millisecond)
	for i, el := range notes {
		if el.Opacity != 1 || el.X != 0 {
			t.Errorf("note %d = opacity %v x %v, want settled", i, el.Opacity, el.X)
		}
	}
	if len(store.events) != 3 || store.events[0].Kind != EffectEntered {
		t.Errorf("events = %+v, want 3 entered", store.events)
	}
}
