package lumen

import "time"

// ParallaxKind selects how an element's offset is derived.
type ParallaxKind uint8

const (
	// ParallaxFixed moves the element by scroll offset × speed, always.
	ParallaxFixed ParallaxKind = iota
	// ParallaxViewport moves the element relative to its position in the
	// viewport, only while it is on screen.
	ParallaxViewport
	// ParallaxHero moves the element by scroll offset × speed until its
	// bottom edge leaves through the top of the viewport.
	ParallaxHero
)

// ParseParallaxKind maps "fixed", "viewport" and "hero" to a kind.
// Anything else is fixed.
func ParseParallaxKind(s string) ParallaxKind {
	switch s {
	case "viewport":
		return ParallaxViewport
	case "hero":
		return ParallaxHero
	default:
		return ParallaxFixed
	}
}

// ParallaxRegistration is immutable after Register.
type ParallaxRegistration struct {
	Element *Element
	Speed   float64
	Kind    ParallaxKind
}

// ParallaxEngine recomputes transform offsets every frame from the scroll
// state. Offsets are not clamped: a long page produces a long translation.
type ParallaxEngine struct {
	doc      Document
	regs     []ParallaxRegistration
	hero     *Element
	heroFade float64
}

// DefaultHeroFade is the scroll distance over which the hero content fades
// out completely.
const DefaultHeroFade = 600

// NewParallaxEngine creates an engine with no registrations.
func NewParallaxEngine(doc Document) *ParallaxEngine {
	return &ParallaxEngine{doc: doc, heroFade: DefaultHeroFade}
}

// Register adds an element. A "data-speed" attribute on the element
// overrides speed.
func (p *ParallaxEngine) Register(el *Element, speed float64, kind ParallaxKind) ParallaxRegistration {
	if v, ok := el.FloatAttr("data-speed"); ok {
		speed = v
	}
	reg := ParallaxRegistration{Element: el, Speed: speed, Kind: kind}
	p.regs = append(p.regs, reg)
	return reg
}

// SetHero designates the element whose opacity fades with scroll. fade is
// the distance to full transparency; zero keeps the default.
func (p *ParallaxEngine) SetHero(el *Element, fade float64) {
	p.hero = el
	if fade > 0 {
		p.heroFade = fade
	}
}

// Registrations returns the registered elements. The returned slice MUST
// NOT be mutated.
func (p *ParallaxEngine) Registrations() []ParallaxRegistration {
	return p.regs
}

// Update recomputes every offset for the given scroll state.
func (p *ParallaxEngine) Update(state *ScrollState) {
	offset := state.OffsetY
	vh := p.doc.Viewport().Height
	for _, reg := range p.regs {
		switch reg.Kind {
		case ParallaxFixed:
			p.doc.SetTransform(reg.Element, reg.Element.X, FixedOffset(offset, reg.Speed))
		case ParallaxViewport:
			// Measure the layout box so the element's own offset doesn't
			// feed back into the next frame.
			box := p.doc.BoundingBox(reg.Element)
			top := box.Y - reg.Element.Y
			if top+box.Height <= 0 || top >= vh {
				// Off screen: keep the last offset so re-entry doesn't snap.
				continue
			}
			p.doc.SetTransform(reg.Element, reg.Element.X, ViewportOffset(top, vh, reg.Speed))
		case ParallaxHero:
			if box := p.doc.BoundingBox(reg.Element); box.Y+box.Height <= 0 {
				continue
			}
			p.doc.SetTransform(reg.Element, reg.Element.X, FixedOffset(offset, reg.Speed))
		}
	}
	if p.hero != nil {
		p.doc.SetOpacity(p.hero, HeroOpacity(offset, p.heroFade))
	}
}

// Frame adapts Update to a FrameFunc reading state.
func (p *ParallaxEngine) Frame(state *ScrollState) FrameFunc {
	return func(time.Duration) { p.Update(state) }
}

// FixedOffset is the fixed-speed translation for a scroll offset.
func FixedOffset(scrollY, speed float64) float64 {
	return scrollY * speed
}

// ViewportOffset is the viewport-relative translation for an element whose
// top edge sits at top in a viewport of height vh.
func ViewportOffset(top, vh, speed float64) float64 {
	return (top - vh) * speed
}

// HeroOpacity fades from 1 at the top to 0 at fade pixels.
func HeroOpacity(scrollY, fade float64) float64 {
	if fade <= 0 {
		return 1
	}
	return clamp01(1 - scrollY/fade)
}
