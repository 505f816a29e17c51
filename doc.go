// Package lumen is the motion layer of a marketing landing page: parallax,
// scroll-triggered reveals, counters, magnetic buttons, a cursor glow and a
// scroll-aware navigation bar, all driven by one frame loop.
//
// # Quick start
//
// Build a [Page] (or any [Platform]), describe the effects with a
// [Config], and hand both to [NewLanding]. The simplest way to see it is
// [Run], which opens an [Ebitengine] window and drives the loop for you:
//
//	page := lumen.NewPage(1280, 720)
//	page.Add(lumen.NewElement("nav#navbar", lumen.Rect{Width: 1280, Height: 64}))
//	// ... add sections ...
//	landing := lumen.NewLanding(page, lumen.DefaultConfig(), nil)
//	lumen.Run(landing, page, lumen.RunConfig{Title: "Landing", Width: 1280, Height: 720})
//
// For full control, call [Landing.Start] once and [Landing.Tick] every
// frame with a non-decreasing timestamp:
//
//	landing.Start()
//	for now := time.Duration(0); ; now += 16 * time.Millisecond {
//		landing.Tick(now)
//		page.Update(1.0 / 60)
//	}
//
// # Frame loop
//
// A [FrameScheduler] is the only producer of frame ticks. Each tick runs
// the one-shot requests queued before it (scroll recomputes, counter
// frames), then the persistent callbacks in registration order (smooth
// scroll, parallax, cursor glow, viewport check). [FrameScheduler.After]
// delays work on the same clock; the hero reveals and entrances use it. A
// panicking callback is recovered and logged; the rest of the frame still
// runs.
//
// # Triggers
//
// [ScrollTracker] coalesces any number of scroll events into one recompute
// per frame and hides or shows the navbar. [ViewportObserver] tests every
// watched element against the viewport in one pass and fires each enter
// callback once, or again after the element leaves when Once is false.
//
// Everything runs on one goroutine; nothing in lumen locks.
//
// [Ebitengine]: https://ebitengine.org
package lumen
