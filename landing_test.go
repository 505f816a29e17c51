package lumen

import (
	"testing"
	"time"
)

type landingPage struct {
	*Page
	nav, hero, orb, orb2, blob, button, glow *Element
	header                                   *Element
	cards                                    []*Element
	stats                                    []*Element
}

// newLandingPage lays out a small landing page in an 800x600 viewport.
func newLandingPage(touch bool) *landingPage {
	p := &landingPage{Page: NewPage(800, 600)}
	p.SetHeight(3000)
	p.SetTouchPrimary(touch)

	p.nav = NewElement("nav#navbar", Rect{Width: 800, Height: 64})
	p.nav.Fixed = true
	p.hero = p.Add(NewElement("div.hero-content", Rect{Y: 100, Width: 800, Height: 400}))
	p.orb = p.Add(NewElement("div.ambient-orb", Rect{X: 600, Y: 50, Width: 150, Height: 150}))
	p.orb2 = p.Add(NewElement("div.ambient-orb", Rect{X: 40, Y: 300, Width: 120, Height: 120}))
	p.button = p.Add(NewElement("a.btn-primary", Rect{X: 100, Y: 400, Width: 200, Height: 50}))

	p.Add(NewElement("section#features", Rect{Y: 900, Width: 800, Height: 600}))
	p.header = p.Add(NewElement("h2.section-header", Rect{Y: 920, Width: 800, Height: 60}))
	for i := 0; i < 3; i++ {
		p.cards = append(p.cards, p.Add(NewElement("div.feature-card", Rect{X: float64(i) * 260, Y: 1000, Width: 240, Height: 200})))
	}
	p.blob = p.Add(NewElement("div.blob", Rect{X: 700, Y: 1200, Width: 80, Height: 80}))
	p.blob.SetAttr("data-speed", "0.1")

	p.Add(NewElement("section#stats", Rect{Y: 1600, Width: 800, Height: 400}))
	for i, text := range []string{"120+", "98.6%", "Fast"} {
		el := p.Add(NewElement("span.stat-number", Rect{X: float64(i) * 260, Y: 1700, Width: 200, Height: 40}))
		el.Text = text
		p.stats = append(p.stats, el)
	}

	// Fixed overlays paint last.
	p.Add(p.nav)
	p.glow = NewElement("div#cursor-glow", Rect{Width: 400, Height: 400})
	p.glow.Fixed = true
	p.Add(p.glow)
	return p
}

// run ticks the landing and settles transitions, one frame at a time.
func run(l *Landing, p *landingPage, from time.Duration, frames int) time.Duration {
	now := from
	for i := 0; i < frames; i++ {
		l.Tick(now)
		p.Update(float32(frame.Seconds()))
		now += frame
	}
	return now
}

func TestLandingBuildsEffects(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)

	regs := l.Parallax.Registrations()
	if len(regs) != 4 {
		t.Fatalf("parallax registrations = %d, want 4", len(regs))
	}
	speeds := map[*Element]float64{}
	for _, r := range regs {
		speeds[r.Element] = r.Speed
	}
	if speeds[p.hero] != 0.08 || speeds[p.orb] != 0.05 || !approxEqual(speeds[p.orb2], 0.07, 1e-12) || speeds[p.blob] != 0.1 {
		t.Errorf("speeds = hero %v orbs %v %v blob %v", speeds[p.hero], speeds[p.orb], speeds[p.orb2], speeds[p.blob])
	}
	if n := len(l.Reveals.Targets()); n != 4 {
		t.Errorf("reveal targets = %d, want 4", n)
	}
	if n := len(l.Counters); n != 2 {
		t.Errorf("counters = %d, want 2 (non-numeric text skipped)", n)
	}
	if l.Magnetic.Len() != 1 {
		t.Errorf("magnetic = %d, want 1", l.Magnetic.Len())
	}
	if l.Glow.Inert() {
		t.Error("glow should be live with a mouse")
	}
	if p.stats[2].Text != "Fast" {
		t.Errorf("skipped counter text = %q", p.stats[2].Text)
	}
	for i, card := range p.cards {
		want := float64(i) * 100
		if got := l.Reveals.Targets()[1+i].DelayMs; got != want {
			t.Errorf("card %d delay = %v, want %v", i, got, want)
		}
		if card.Opacity != 0 {
			t.Errorf("card %d should start hidden", i)
		}
	}
}

func TestLandingStartOrderAndIdempotence(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	l.Start()

	if l.Scheduler.Len() != 4 {
		t.Errorf("frame callbacks = %d, want 4", l.Scheduler.Len())
	}
	names := make([]string, 0, 4)
	for _, cb := range l.Scheduler.callbacks {
		names = append(names, cb.name)
	}
	want := []string{"smooth-scroll", "parallax", "cursor-glow", "viewport"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("callback order = %v, want %v", names, want)
		}
	}
}

func TestLandingTouchSkipsGlow(t *testing.T) {
	p := newLandingPage(true)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()

	if !l.Glow.Inert() || l.Scheduler.Len() != 3 {
		t.Errorf("inert=%v callbacks=%d, want true 3", l.Glow.Inert(), l.Scheduler.Len())
	}
	p.PointerMove(300, 300)
	run(l, p, 0, 10)
	if p.glow.X != 0 || p.glow.Y != 0 {
		t.Errorf("glow moved on touch: (%v, %v)", p.glow.X, p.glow.Y)
	}
}

func TestLandingScrollDrivesParallaxSameFrame(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	now := run(l, p, 0, 1)

	p.SetScrollY(300)
	p.SetScrollY(320)
	l.Tick(now)

	if l.Scroll.Recomputes() != 2 {
		t.Errorf("recomputes = %d, want 2 (start + one coalesced)", l.Scroll.Recomputes())
	}
	if !approxEqual(p.orb.Y, 16, 1e-9) || !approxEqual(p.orb2.Y, 22.4, 1e-9) {
		t.Errorf("orb offsets = %v %v, want 16 22.4 in the same frame", p.orb.Y, p.orb2.Y)
	}
	if !approxEqual(p.hero.Y, 25.6, 1e-9) {
		t.Errorf("hero content offset = %v, want 25.6", p.hero.Y)
	}
	if !approxEqual(p.hero.Opacity, HeroOpacity(320, DefaultHeroFade), 1e-9) {
		t.Errorf("hero opacity = %v", p.hero.Opacity)
	}
	if !l.State.NavHidden {
		t.Error("nav should hide past 200px scrolling down")
	}
}

func TestLandingStartsScrolled(t *testing.T) {
	p := newLandingPage(false)
	p.SetScrollY(500)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	run(l, p, 0, 1)

	if l.State.OffsetY != 500 || !l.State.NavHidden || !l.State.Scrolled {
		t.Errorf("state = %+v", *l.State)
	}
}

func TestLandingRevealsAndCounters(t *testing.T) {
	p := newLandingPage(false)
	store := &recordingStore{}
	l := NewLanding(p, DefaultConfig(), nil)
	l.SetEventStore(store)
	l.Start()
	now := run(l, p, 0, 2)

	if l.Reveals.Pending() != 4 {
		t.Fatalf("pending reveals at top = %d, want 4", l.Reveals.Pending())
	}

	p.SetScrollY(700)
	now = run(l, p, now, 70)
	if l.Reveals.Pending() != 0 {
		t.Fatalf("pending reveals = %d, want 0", l.Reveals.Pending())
	}
	for i, card := range p.cards {
		if card.Opacity != 1 || card.Y != 0 {
			t.Errorf("card %d = opacity %v y %v, want settled", i, card.Opacity, card.Y)
		}
	}
	for _, c := range l.Counters {
		if c.Phase() != CounterIdle {
			t.Fatalf("counter started off screen")
		}
	}

	p.SetScrollY(1300)
	run(l, p, now, 140)
	if p.stats[0].Text != "120+" || p.stats[1].Text != "98.6%" {
		t.Errorf("counter texts = %q %q", p.stats[0].Text, p.stats[1].Text)
	}

	counts := map[EffectKind]int{}
	for _, e := range store.events {
		counts[e.Kind]++
	}
	if counts[EffectRevealed] != 4 || counts[EffectCounterStarted] != 2 || counts[EffectCounterDone] != 2 {
		t.Errorf("event counts = %v", counts)
	}
	if counts[EffectNavHidden] != 1 {
		t.Errorf("nav hidden events = %d, want 1", counts[EffectNavHidden])
	}
}

func TestLandingGlowFollowsPointer(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()

	p.PointerMove(400, 300)
	run(l, p, 0, 60)
	c := p.BoundingBox(p.glow).Center()
	if !approxEqual(c.X, 400, 4) || !approxEqual(c.Y, 300, 3) {
		t.Errorf("glow centre = %v, want near (400, 300)", c)
	}
}

func TestLandingThemeToggle(t *testing.T) {
	p := newLandingPage(false)
	store := &recordingStore{}
	l := NewLanding(p, DefaultConfig(), NewThemeFlag(&memThemeStore{}))
	l.SetEventStore(store)
	l.Start()
	run(l, p, 0, 1)

	l.Theme.Toggle()
	if p.nav.Color != NavBackground(false, true).Background {
		t.Errorf("nav color = %v, want dark top", p.nav.Color)
	}
	last := store.events[len(store.events)-1]
	if last.Kind != EffectThemeChanged || last.Value != 1 {
		t.Errorf("last event = %+v", last)
	}
}

func TestLandingSurvivesPanickingCallback(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	l.Scheduler.Add("broken", func(time.Duration) { panic("broken effect") })

	p.SetScrollY(700)
	run(l, p, 0, 5)
	if l.Scheduler.Faults() != 5 {
		t.Errorf("faults = %d, want 5", l.Scheduler.Faults())
	}
	if l.Reveals.Pending() != 0 {
		t.Error("reveals stopped after a callback panicked")
	}
}

func TestLandingDispose(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	run(l, p, 0, 1)
	l.Dispose()

	p.SetScrollY(400)
	if l.State.PendingFrame {
		t.Error("scroll after dispose queued a recompute")
	}
	if l.Magnetic.Len() != 0 || l.Observer.Len() != 0 {
		t.Errorf("magnetic=%d watches=%d after dispose", l.Magnetic.Len(), l.Observer.Len())
	}
	p.PointerMove(200, 100)
	if l.Glow.State().PointerX != 0 {
		t.Error("glow received pointer input after dispose")
	}
}

func TestLandingSmoothScrollToSection(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()

	l.Smooth.ScrollToElement(p.Query("#stats"))
	run(l, p, 0, 80)
	if p.ScrollY() != 1520 {
		t.Errorf("ScrollY = %v, want 1520", p.ScrollY())
	}
	if !l.State.NavHidden {
		t.Error("gliding down should hide the nav")
	}
}

func TestLandingGlowHidesAfterSwitchToTouch(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()

	p.PointerMove(400, 300)
	now := run(l, p, 0, 5)
	x, y := p.glow.X, p.glow.Y

	p.SetTouchPrimary(true)
	p.PointerMove(100, 100)
	run(l, p, now, 30)
	if !l.Glow.Inert() {
		t.Fatal("glow should be inert after the platform switched to touch")
	}
	if p.glow.X != x || p.glow.Y != y || p.glow.Opacity != 0 {
		t.Errorf("glow = (%v, %v) opacity %v, want frozen at (%v, %v) and hidden",
			p.glow.X, p.glow.Y, p.glow.Opacity, x, y)
	}
}

func TestLandingHeroEntrances(t *testing.T) {
	p := newLandingPage(false)
	// Below the fold, so only the timed reveal can show it.
	title := NewElement("h1.hero-title", Rect{Y: 640, Width: 600, Height: 80})
	p.Add(title)
	var notes []*Element
	for i := 0; i < 2; i++ {
		notes = append(notes, p.Add(NewElement("div.visual-notification", Rect{X: 500, Y: 200 + float64(i)*80, Width: 200, Height: 60})))
	}
	store := &recordingStore{}
	l := NewLanding(p, DefaultConfig(), nil)
	l.SetEventStore(store)
	l.Start()

	if title.Opacity != 0 || notes[0].Opacity != 0 || notes[0].X != -30 {
		t.Fatalf("hero elements should start hidden")
	}
	now := run(l, p, 0, 5)
	if l.Reveals.Pending() != 5 {
		t.Fatalf("pending reveals at 80ms = %d, want 5", l.Reveals.Pending())
	}
	now = run(l, p, now, 3)
	if l.Reveals.Pending() != 4 {
		t.Fatalf("pending reveals after 100ms = %d, want 4 (hero title revealed)", l.Reveals.Pending())
	}

	run(l, p, now, 120)
	if title.Opacity != 1 || title.Y != 0 {
		t.Errorf("title = opacity %v y %v, want settled", title.Opacity, title.Y)
	}
	for i, el := range notes {
		if el.Opacity != 1 || el.X != 0 {
			t.Errorf("notification %d = opacity %v x %v, want settled", i, el.Opacity, el.X)
		}
	}
	var entered []time.Duration
	for _, e := range store.events {
		if e.Kind == EffectEntered {
			entered = append(entered, e.At)
		}
	}
	if len(entered) != 2 || entered[0] < 800*time.Millisecond || entered[1]-entered[0] < 190*time.Millisecond {
		t.Errorf("entrances at %v, want two, from 800ms, 200ms apart", entered)
	}
}

func TestLandingWheelGlides(t *testing.T) {
	p := newLandingPage(false)
	l := NewLanding(p, DefaultConfig(), nil)
	l.Start()
	now := run(l, p, 0, 1)

	l.Smooth.ScrollBy(300)
	now = run(l, p, now, 3)
	if y := p.ScrollY(); y <= 0 || y >= 300 {
		t.Fatalf("scroll after 3 frames = %v, want partway", y)
	}
	run(l, p, now, 90)
	if p.ScrollY() != 300 || l.State.OffsetY != 300 {
		t.Errorf("scroll = %v state = %v, want 300", p.ScrollY(), l.State.OffsetY)
	}
}
