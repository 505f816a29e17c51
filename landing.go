package lumen

import (
	"time"

	"go.uber.org/zap"
)

// Landing builds every effect of a page from a Config and wires them to
// one FrameScheduler. It is the composition root: hosts create a Landing,
// call Start once, then Tick every frame.
type Landing struct {
	platform Platform
	cfg      Config
	sink     *eventSink

	Scheduler *FrameScheduler
	State     *ScrollState
	Scroll    *ScrollTracker
	Observer  *ViewportObserver
	Parallax  *ParallaxEngine
	Reveals   *RevealController
	Entrance  *EntranceController
	Counters  []*CounterAnimator
	Glow      *CursorGlowFollower
	Magnetic  *MagneticButtonEffect
	Smooth    *SmoothScroller
	Theme     *ThemeFlag

	immediate []*RevealTarget
	handles   []CallbackHandle
	started   bool
}

// NewLanding queries the platform for every configured selector and builds
// the effects. A nil theme is treated as a light, unpersisted flag.
func NewLanding(p Platform, cfg Config, theme *ThemeFlag) *Landing {
	if theme == nil {
		theme = NewThemeFlag(nil)
	}
	l := &Landing{
		platform:  p,
		cfg:       cfg,
		sink:      &eventSink{},
		Scheduler: NewFrameScheduler(),
		State:     &ScrollState{},
		Theme:     theme,
	}

	nav := l.first("nav", cfg.Nav.Selector)
	policy := NavPolicy{HideAfter: cfg.Nav.HideAfter, ScrolledAfter: cfg.Nav.ScrolledAfter}
	l.Scroll = NewScrollTracker(l.State, l.Scheduler, p, p, nav, theme, policy)
	l.Scroll.events = l.sink

	l.Observer = NewViewportObserver(p)

	l.Parallax = NewParallaxEngine(p)
	for _, pc := range cfg.Parallax {
		els := p.QueryAll(pc.Selector)
		debugCheckSelector("parallax", pc.Selector, len(els))
		for i, el := range els {
			l.Parallax.Register(el, pc.Speed+float64(i)*pc.SpeedStep, ParseParallaxKind(pc.Kind))
		}
	}
	if hero := l.first("hero", cfg.Hero.Selector); hero != nil {
		l.Parallax.SetHero(hero, cfg.Hero.FadeDistance)
	}

	l.Reveals = NewRevealController(p, l.Observer, l.Scheduler, cfg.Reveal.Threshold, cfg.Reveal.MarginPx, cfg.Reveal.OffsetY)
	l.Reveals.events = l.sink
	for _, rc := range cfg.Reveal.Targets {
		els := p.QueryAll(rc.Selector)
		debugCheckSelector("reveal", rc.Selector, len(els))
		for i, el := range els {
			t := l.Reveals.Add(el, rc.DelayMs+float64(i)*rc.StaggerMs)
			if rc.Immediate {
				l.immediate = append(l.immediate, t)
			}
		}
	}

	l.Entrance = NewEntranceController(p, l.Scheduler, cfg.Entrance.OffsetX)
	l.Entrance.events = l.sink
	if cfg.Entrance.Selector != "" {
		els := p.QueryAll(cfg.Entrance.Selector)
		debugCheckSelector("entrance", cfg.Entrance.Selector, len(els))
		for i, el := range els {
			l.Entrance.Add(el, cfg.Entrance.DelayMs+float64(i)*cfg.Entrance.StaggerMs)
		}
	}

	counterOpts := ObserveOptions{Threshold: cfg.Counters.Threshold, Once: true}
	for _, el := range p.QueryAll(cfg.Counters.Selector) {
		c, err := NewCounter(p, l.Scheduler, el)
		if err != nil {
			logger.Debug("counter skipped", zap.String("text", el.Text), zap.Error(err))
			continue
		}
		c.events = l.sink
		l.Counters = append(l.Counters, c)
		l.Observer.Observe(el, func(*Element) { c.Start() }, counterOpts)
	}

	l.Magnetic = NewMagneticButtons(p, p)
	buttons := p.QueryAll(cfg.Magnetic.Selector)
	debugCheckSelector("magnetic", cfg.Magnetic.Selector, len(buttons))
	for _, el := range buttons {
		l.Magnetic.Bind(el)
	}

	l.Glow = NewCursorGlow(p, l.first("glow", cfg.Glow.Selector), p.TouchPrimary())
	l.Glow.WatchTouch(p.TouchPrimary)
	l.Smooth = NewSmoothScroller(p, p, float32(cfg.SmoothScroll.DurationMs/1000), cfg.SmoothScroll.Offset)
	l.Smooth.SetWheelDuration(float32(cfg.SmoothScroll.WheelDurationMs / 1000))
	return l
}

func (l *Landing) first(what, selector string) *Element {
	if selector == "" {
		return nil
	}
	els := l.platform.QueryAll(selector)
	debugCheckSelector(what, selector, len(els))
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// Start registers the frame callbacks and input listeners. Frame order is
// smooth scroll, parallax, glow, then the viewport check. Calling Start
// twice does nothing.
func (l *Landing) Start() {
	if l.started {
		return
	}
	l.started = true

	l.Scheduler.Add("smooth-scroll", l.Smooth.Update)
	l.Scheduler.Add("parallax", l.Parallax.Frame(l.State))
	if !l.Glow.Inert() {
		l.Scheduler.Add("cursor-glow", l.Glow.Update)
	}
	l.Scheduler.Add("viewport", l.Observer.Check)
	l.Scheduler.Start()

	l.handles = append(l.handles,
		l.platform.OnScroll(l.Scroll.OnScroll),
		l.Theme.OnChange(func(dark bool) {
			l.Scroll.ApplyAppearance()
			l.sink.emit(EffectEvent{Kind: EffectThemeChanged, Value: boolValue(dark), At: l.Scheduler.Now()})
		}),
	)
	if !l.Glow.Inert() {
		l.handles = append(l.handles, l.platform.OnPointerMove(l.Glow.OnPointerMove))
	}

	// Pick up a page that loads already scrolled.
	l.Scroll.OnScroll()
	l.Reveals.RevealAfter(time.Duration(l.cfg.Reveal.ImmediateMs*float64(time.Millisecond)), l.immediate)
	l.Entrance.Start()
	logger.Info("landing started",
		zap.Int("parallax", len(l.Parallax.Registrations())),
		zap.Int("reveals", len(l.Reveals.Targets())),
		zap.Int("entrances", len(l.Entrance.Targets())),
		zap.Int("counters", len(l.Counters)),
		zap.Int("magnetic", l.Magnetic.Len()),
		zap.Bool("glow", !l.Glow.Inert()),
	)
}

// Tick runs one frame.
func (l *Landing) Tick(now time.Duration) {
	l.Scheduler.Tick(now)
}

// SetEventStore sets the optional event bridge.
func (l *Landing) SetEventStore(store EventStore) {
	l.sink.store = store
}

// SetDebugMode enables per-frame timing logs.
func (l *Landing) SetDebugMode(enabled bool) {
	l.Scheduler.SetDebugMode(enabled)
}

// Config returns the configuration the landing was built from.
func (l *Landing) Config() Config {
	return l.cfg
}

// Dispose removes every listener the landing registered. Frame callbacks
// stop with the scheduler, which is dropped with the landing.
func (l *Landing) Dispose() {
	for _, h := range l.handles {
		h.Remove()
	}
	l.handles = nil
	for _, c := range l.Counters {
		l.Observer.Unobserve(c.Target().Element)
	}
	for _, t := range l.Reveals.Targets() {
		l.Observer.Unobserve(t.Element)
	}
	for el := range l.Magnetic.bound {
		l.Magnetic.Unbind(el)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
