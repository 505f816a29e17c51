package lumen

// --- Per-pointer state ---

type pointerState struct {
	x, y   float64
	inside bool     // pointer is over the page
	hover  *Element // last element the pointer was over (for enter/leave)
}

// --- Handler registry ---

type scrollHandler struct {
	id uint32
	fn func()
}

type pointerHandler struct {
	id uint32
	el *Element // nil for page-level handlers
	fn func(PointerContext)
}

type handlerRegistry struct {
	scroll       []scrollHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	event  EventType
	remove func()
}

// Remove unregisters this callback so it no longer fires. Removing twice,
// or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
		return
	}
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeScrollHandler(h.reg.scroll, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	}
}

func removeScrollHandler(s []scrollHandler, id uint32) []scrollHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = scrollHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Registration ---

// OnScroll registers a callback fired whenever the scroll offset changes.
func (p *Page) OnScroll(fn func()) CallbackHandle {
	p.handlers.nextID++
	id := p.handlers.nextID
	p.handlers.scroll = append(p.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &p.handlers, event: EventScroll}
}

// OnPointerMove registers a page-level callback for pointer movement.
func (p *Page) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return p.OnElementPointer(nil, EventPointerMove, fn)
}

// OnElementPointer registers a pointer callback scoped to el. A nil el
// registers a page-level handler. Only move, enter and leave are accepted.
func (p *Page) OnElementPointer(el *Element, event EventType, fn func(PointerContext)) CallbackHandle {
	p.handlers.nextID++
	id := p.handlers.nextID
	h := pointerHandler{id: id, el: el, fn: fn}
	switch event {
	case EventPointerMove:
		p.handlers.pointerMove = append(p.handlers.pointerMove, h)
	case EventPointerEnter:
		p.handlers.pointerEnter = append(p.handlers.pointerEnter, h)
	case EventPointerLeave:
		p.handlers.pointerLeave = append(p.handlers.pointerLeave, h)
	default:
		panic("lumen: unsupported pointer event type")
	}
	if el != nil {
		el.Interactive = true
	}
	return CallbackHandle{id: id, reg: &p.handlers, event: event}
}

// --- Hit testing ---

// hitTest finds the topmost interactive element at viewport (x, y).
// Later elements paint over earlier ones.
func (p *Page) hitTest(x, y float64) *Element {
	for i := len(p.elements) - 1; i >= 0; i-- {
		el := p.elements[i]
		if !el.Visible || !el.Interactive {
			continue
		}
		if p.BoundingBox(el).Contains(x, y) {
			return el
		}
	}
	return nil
}

// --- Input processing ---

// PointerMove feeds a pointer position in viewport coordinates. Enter and
// leave fire first when the hovered element changes, then move handlers.
func (p *Page) PointerMove(x, y float64) {
	ps := &p.pointer
	target := p.hitTest(x, y)

	if target != ps.hover {
		if ps.hover != nil {
			p.firePointer(p.handlers.pointerLeave, ps.hover, x, y)
		}
		if target != nil {
			p.firePointer(p.handlers.pointerEnter, target, x, y)
		}
		ps.hover = target
	}

	if ps.inside && x == ps.x && y == ps.y {
		return
	}
	ps.x, ps.y, ps.inside = x, y, true
	p.firePointer(p.handlers.pointerMove, target, x, y)
}

// PointerOut reports that the pointer left the page. The hovered element
// receives a leave event.
func (p *Page) PointerOut() {
	ps := &p.pointer
	if ps.hover != nil {
		p.firePointer(p.handlers.pointerLeave, ps.hover, ps.x, ps.y)
		ps.hover = nil
	}
	ps.inside = false
}

// Pointer returns the last pointer position and whether it is over the page.
func (p *Page) Pointer() (x, y float64, inside bool) {
	return p.pointer.x, p.pointer.y, p.pointer.inside
}

// --- Event dispatch ---

func (p *Page) fireScroll() {
	for _, h := range p.handlers.scroll {
		h.fn()
	}
}

// firePointer runs page-level handlers, then handlers scoped to el.
func (p *Page) firePointer(handlers []pointerHandler, el *Element, x, y float64) {
	ctx := PointerContext{Element: el, X: x, Y: y}
	if el != nil {
		r := p.BoundingBox(el)
		ctx.LocalX, ctx.LocalY = x-r.X, y-r.Y
	}
	for _, h := range handlers {
		if h.el == nil || (el != nil && h.el == el) {
			h.fn(ctx)
		}
	}
}
