package lumen

import "time"

// GlowSmoothing is the fraction of the remaining distance the glow covers
// each frame.
const GlowSmoothing = 0.1

// GlowState is the latest pointer input and the smoothed render position.
type GlowState struct {
	PointerX, PointerY float64
	RenderX, RenderY   float64
}

// Step moves the render position toward the pointer by factor.
func (g *GlowState) Step(factor float64) {
	g.RenderX += (g.PointerX - g.RenderX) * factor
	g.RenderY += (g.PointerY - g.RenderY) * factor
}

// CursorGlowFollower lags a glow element behind the pointer. It updates
// every frame whether or not the pointer moved, so the glow settles on the
// last position.
type CursorGlowFollower struct {
	doc    Document
	el     *Element
	state  GlowState
	factor float64
	inert  bool
	touch  func() bool
}

// NewCursorGlow creates a follower for el. On touch-primary platforms the
// follower is inert: Update and OnPointerMove do nothing and el is never
// written.
func NewCursorGlow(doc Document, el *Element, touchPrimary bool) *CursorGlowFollower {
	return &CursorGlowFollower{
		doc:    doc,
		el:     el,
		factor: GlowSmoothing,
		inert:  touchPrimary || el == nil,
	}
}

// WatchTouch makes the follower poll touchPrimary every frame. The first
// time it reports true the glow element is hidden and the follower goes
// inert for good.
func (g *CursorGlowFollower) WatchTouch(touchPrimary func() bool) {
	g.touch = touchPrimary
}

// Suppress hides the glow element and stops following the pointer.
func (g *CursorGlowFollower) Suppress() {
	if g.inert {
		return
	}
	g.inert = true
	g.doc.SetTiming(g.el, Timing{})
	g.doc.SetOpacity(g.el, 0)
}

// Inert reports whether the follower is suppressed.
func (g *CursorGlowFollower) Inert() bool {
	return g.inert
}

// State returns a copy of the glow state.
func (g *CursorGlowFollower) State() GlowState {
	return g.state
}

// OnPointerMove records the latest pointer position.
func (g *CursorGlowFollower) OnPointerMove(ctx PointerContext) {
	if g.checkTouch() {
		return
	}
	g.state.PointerX, g.state.PointerY = ctx.X, ctx.Y
}

// Update is the frame callback.
func (g *CursorGlowFollower) Update(time.Duration) {
	if g.checkTouch() {
		return
	}
	g.state.Step(g.factor)
	// Centre the glow on the render position.
	g.doc.SetTransform(g.el,
		g.state.RenderX-g.el.Bounds.X-g.el.Bounds.Width/2,
		g.state.RenderY-g.el.Bounds.Y-g.el.Bounds.Height/2,
	)
}

// checkTouch reports whether the follower is inert, suppressing it first
// if the platform has switched to touch input.
func (g *CursorGlowFollower) checkTouch() bool {
	if !g.inert && g.touch != nil && g.touch() {
		g.Suppress()
	}
	return g.inert
}
