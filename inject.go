package lumen

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticScrollBy
	syntheticMove
	syntheticLeave
)

// syntheticEvent represents a single injected input event. Pointer
// coordinates are viewport coordinates, identical to real pointer input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues a jump to scroll offset y. Queued events are
// consumed one per frame by ProcessInjected.
func (p *Page) InjectScroll(y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticScroll, y: y})
}

// InjectScrollBy queues a relative scroll.
func (p *Page) InjectScrollBy(dy float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticScrollBy, y: dy})
}

// InjectMove queues a pointer move to viewport (x, y).
func (p *Page) InjectMove(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectLeave queues the pointer leaving the page.
func (p *Page) InjectLeave() {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectSweep queues pointer moves from (fromX, fromY) to (toX, toY) over
// the given number of frames, endpoints included. Minimum frames is 2.
func (p *Page) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Injected returns the number of queued synthetic events.
func (p *Page) Injected() int {
	return len(p.injectQueue)
}

// ProcessInjected pops one queued event and applies it. Returns true if an
// event was consumed (real input should be skipped this frame).
func (p *Page) ProcessInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		p.SetScrollY(evt.y)
	case syntheticScrollBy:
		p.ScrollBy(evt.y)
	case syntheticMove:
		p.PointerMove(evt.x, evt.y)
	case syntheticLeave:
		p.PointerOut()
	}
	return true
}
