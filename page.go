package lumen

import (
	"strings"
)

// Page is the top-level object that owns the elements, viewport, scroll
// offset and input state. It implements Platform.
type Page struct {
	elements []*Element
	viewport Viewport
	scrollY  float64
	height   float64 // document height; 0 means "derive from elements"
	touch    bool

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	injectQueue []syntheticEvent
	testRunner  *ScriptRunner

	// Screenshots queued for the next Draw
	shots   []string
	shotDir string
}

// NewPage creates an empty page with the given viewport size.
func NewPage(width, height float64) *Page {
	return &Page{viewport: Viewport{Width: width, Height: height}}
}

// Add appends elements to the page in document order and returns the first,
// for chaining in builders.
func (p *Page) Add(els ...*Element) *Element {
	for _, el := range els {
		if el == nil {
			panic("lumen: cannot add nil element")
		}
		p.elements = append(p.elements, el)
	}
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// Remove detaches an element from the page. In-flight transitions are dropped.
func (p *Page) Remove(el *Element) {
	for i, e := range p.elements {
		if e == el {
			copy(p.elements[i:], p.elements[i+1:])
			p.elements[len(p.elements)-1] = nil
			p.elements = p.elements[:len(p.elements)-1]
			el.trans = nil
			if p.pointer.hover == el {
				p.pointer.hover = nil
			}
			return
		}
	}
}

// Elements returns the element list. The returned slice MUST NOT be mutated.
func (p *Page) Elements() []*Element {
	return p.elements
}

// QueryAll returns elements matching any selector in a comma-separated list.
func (p *Page) QueryAll(selector string) []*Element {
	var out []*Element
	parts := strings.Split(selector, ",")
	for _, el := range p.elements {
		for _, sel := range parts {
			if el.matches(strings.TrimSpace(sel)) {
				out = append(out, el)
				break
			}
		}
	}
	return out
}

// Query returns the first element matching selector, or nil.
func (p *Page) Query(selector string) *Element {
	if els := p.QueryAll(selector); len(els) > 0 {
		return els[0]
	}
	return nil
}

// BoundingBox returns the element's viewport-space box including its
// current transform offset.
func (p *Page) BoundingBox(el *Element) Rect {
	r := el.Bounds
	r.X += el.X
	r.Y += el.Y
	if !el.Fixed {
		r.Y -= p.scrollY
	}
	return r
}

// SetTransform sets the element's translation, transitioning per its Timing.
func (p *Page) SetTransform(el *Element, x, y float64) {
	el.targetX, el.targetY = x, y
	p.retarget(el)
}

// SetOpacity sets the element's opacity, transitioning per its Timing.
func (p *Page) SetOpacity(el *Element, v float64) {
	el.targetOpacity = clamp01(v)
	p.retarget(el)
}

// SetText replaces the element's text content.
func (p *Page) SetText(el *Element, text string) {
	el.Text = text
}

// SetTiming selects the transition preset for subsequent changes. An
// in-flight transition keeps its old timing until the next change.
func (p *Page) SetTiming(el *Element, t Timing) {
	el.Timing = t
}

// SetColor sets the element's fill color.
func (p *Page) SetColor(el *Element, c Color) {
	el.Color = c
}

// SetShadow sets the element's shadow level (0 = none).
func (p *Page) SetShadow(el *Element, level float64) {
	el.Shadow = level
}

// retarget applies a target change instantly or (re)starts a transition
// from the current rendered values.
func (p *Page) retarget(el *Element) {
	if el.Timing.Instant() {
		el.X, el.Y, el.Opacity = el.targetX, el.targetY, el.targetOpacity
		el.trans = nil
		return
	}
	if el.X == el.targetX && el.Y == el.targetY && el.Opacity == el.targetOpacity && el.Timing.Delay <= 0 {
		el.trans = nil
		return
	}
	el.trans = newTransition(el, el.Timing)
}

// Update advances in-flight transitions by dt seconds.
func (p *Page) Update(dt float32) {
	for _, el := range p.elements {
		if el.trans == nil {
			continue
		}
		el.trans.update(dt)
		if el.trans.Done {
			el.trans.snap(el)
			el.trans = nil
		}
	}
}

// Viewport returns the visible window size.
func (p *Page) Viewport() Viewport {
	return p.viewport
}

// SetViewport resizes the visible window. The scroll offset is re-clamped.
func (p *Page) SetViewport(v Viewport) {
	p.viewport = v
	p.SetScrollY(p.scrollY)
}

// SetHeight fixes the document height. Zero derives it from the lowest
// element.
func (p *Page) SetHeight(h float64) {
	p.height = h
}

// Height returns the document height.
func (p *Page) Height() float64 {
	if p.height > 0 {
		return p.height
	}
	var h float64
	for _, el := range p.elements {
		if el.Fixed {
			continue
		}
		h = max(h, el.Bounds.Y+el.Bounds.Height)
	}
	return h
}

// ScrollY returns the current vertical scroll offset.
func (p *Page) ScrollY() float64 {
	return p.scrollY
}

// MaxScrollY returns the largest reachable scroll offset.
func (p *Page) MaxScrollY() float64 {
	return max(0, p.Height()-p.viewport.Height)
}

// SetScrollY moves the scroll offset (clamped to the document) and notifies
// scroll listeners when it changed.
func (p *Page) SetScrollY(y float64) {
	y = clamp(y, 0, p.MaxScrollY())
	if y == p.scrollY {
		return
	}
	p.scrollY = y
	p.fireScroll()
}

// ScrollBy moves the scroll offset by dy.
func (p *Page) ScrollBy(dy float64) {
	p.SetScrollY(p.scrollY + dy)
}

// TouchPrimary reports whether the page is driven by touch input.
func (p *Page) TouchPrimary() bool {
	return p.touch
}

// SetTouchPrimary marks the page as touch-driven.
func (p *Page) SetTouchPrimary(touch bool) {
	p.touch = touch
}
