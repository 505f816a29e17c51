package lumen

// MagneticStrength scales the pointer's distance from the button centre
// into the button's offset.
const MagneticStrength = 0.15

// MagneticButtonEffect pulls bound elements toward the pointer while it is
// over them. It has no per-frame work: every change happens in a pointer
// handler, and the transition presets do the easing.
type MagneticButtonEffect struct {
	doc      Document
	input    Input
	strength float64
	bound    map[*Element][]CallbackHandle
}

// NewMagneticButtons creates the effect.
func NewMagneticButtons(doc Document, input Input) *MagneticButtonEffect {
	return &MagneticButtonEffect{
		doc:      doc,
		input:    input,
		strength: MagneticStrength,
		bound:    make(map[*Element][]CallbackHandle),
	}
}

// Bind attaches the enter/move/leave handlers to el. Binding twice is a no-op.
func (m *MagneticButtonEffect) Bind(el *Element) {
	if _, ok := m.bound[el]; ok {
		return
	}
	m.bound[el] = []CallbackHandle{
		m.input.OnElementPointer(el, EventPointerEnter, m.onEnter),
		m.input.OnElementPointer(el, EventPointerMove, m.onMove),
		m.input.OnElementPointer(el, EventPointerLeave, m.onLeave),
	}
}

// Unbind removes el's handlers and leaves it at rest.
func (m *MagneticButtonEffect) Unbind(el *Element) {
	handles, ok := m.bound[el]
	if !ok {
		return
	}
	for _, h := range handles {
		h.Remove()
	}
	delete(m.bound, el)
	m.doc.SetTiming(el, Timing{})
	m.doc.SetTransform(el, 0, 0)
}

// Len returns the number of bound elements.
func (m *MagneticButtonEffect) Len() int {
	return len(m.bound)
}

// MagneticOffset returns the pull for a pointer at (px, py) over a box.
func MagneticOffset(box Rect, px, py, strength float64) Vec2 {
	c := box.Center()
	return Vec2{X: (px - c.X) * strength, Y: (py - c.Y) * strength}
}

func (m *MagneticButtonEffect) onEnter(ctx PointerContext) {
	m.doc.SetTiming(ctx.Element, TimingFast)
}

func (m *MagneticButtonEffect) onMove(ctx PointerContext) {
	el := ctx.Element
	// Centre of the layout box; the current pull is excluded.
	box := m.doc.BoundingBox(el)
	box.X -= el.X
	box.Y -= el.Y
	off := MagneticOffset(box, ctx.X, ctx.Y, m.strength)
	m.doc.SetTransform(el, off.X, off.Y)
}

func (m *MagneticButtonEffect) onLeave(ctx PointerContext) {
	m.doc.SetTiming(ctx.Element, TimingSlow)
	m.doc.SetTransform(ctx.Element, 0, 0)
}
