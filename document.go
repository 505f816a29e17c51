package lumen

// Document is the presentation capability set effects run against: read
// element geometry, write transforms, opacity, text and style. *Page is the
// in-process implementation; a browser binding would be another.
type Document interface {
	// QueryAll returns the elements matching a comma-separated selector
	// list, in document order. A selector matching nothing returns nil.
	QueryAll(selector string) []*Element
	// BoundingBox returns the element's box in viewport coordinates,
	// including its current transform offset.
	BoundingBox(el *Element) Rect
	SetTransform(el *Element, x, y float64)
	SetOpacity(el *Element, v float64)
	SetText(el *Element, text string)
	// SetTiming selects the transition preset for subsequent changes.
	SetTiming(el *Element, t Timing)
	SetColor(el *Element, c Color)
	SetShadow(el *Element, level float64)
	Viewport() Viewport
}

// Input is the event source effects subscribe to. Handlers run on the same
// goroutine as frame ticks, between ticks.
type Input interface {
	OnScroll(fn func()) CallbackHandle
	OnPointerMove(fn func(PointerContext)) CallbackHandle
	// OnElementPointer registers an enter, leave or move handler scoped to
	// one element.
	OnElementPointer(el *Element, event EventType, fn func(PointerContext)) CallbackHandle
}

// Scroller exposes the page scroll offset.
type Scroller interface {
	ScrollY() float64
	SetScrollY(y float64)
	MaxScrollY() float64
}

// Platform bundles everything a Landing needs from its host.
type Platform interface {
	Document
	Input
	Scroller
	// TouchPrimary reports whether the primary input has no persistent
	// pointer position.
	TouchPrimary() bool
}
