package lumen

import (
	"strconv"
	"strings"
)

// PointerContext carries pointer event data. X and Y are viewport
// coordinates; LocalX and LocalY are relative to the element's bounding box.
type PointerContext struct {
	Element   *Element
	X, Y      float64
	LocalX    float64
	LocalY    float64
	PointerID int
}

// elementIDCounter is a plain counter (no atomic; lumen is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is an animatable visual node on the page. Layout (Bounds) is owned
// by whoever builds the page; effects only write the transform offset,
// opacity, text and style fields through a Document.
type Element struct {
	// Identity
	ID      uint32
	Name    string // matched by "#name" selectors
	Tag     string // matched by bare selectors ("nav", "section")
	Classes []string
	Attrs   map[string]string

	// Bounds is the layout box before any transform. Document coordinates,
	// or viewport coordinates when Fixed is set.
	Bounds Rect
	Fixed  bool

	// Presentation (rendered values; transitions write these)
	X, Y    float64
	Opacity float64
	Text    string
	Color   Color
	Shadow  float64
	Visible bool

	// Interactive elements take part in pointer hit testing.
	Interactive bool

	// Timing is the transition preset applied to the next transform or
	// opacity change. The zero value applies changes instantly.
	Timing Timing

	targetX, targetY, targetOpacity float64
	trans                           *transition
}

// NewElement creates a visible element with the given selector-style name,
// e.g. NewElement("section#hero.dark", bounds).
func NewElement(selector string, bounds Rect) *Element {
	el := &Element{
		ID:            nextElementID(),
		Bounds:        bounds,
		Opacity:       1,
		targetOpacity: 1,
		Color:         Color{1, 1, 1, 1},
		Visible:       true,
	}
	el.Tag, el.Name, el.Classes = splitSelector(selector)
	return el
}

// HasClass reports whether the element carries the class.
func (el *Element) HasClass(class string) bool {
	for _, c := range el.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// SetAttr sets a data attribute and returns the element for chaining.
func (el *Element) SetAttr(key, value string) *Element {
	if el.Attrs == nil {
		el.Attrs = make(map[string]string)
	}
	el.Attrs[key] = value
	return el
}

// Attr returns the attribute value and whether it was set.
func (el *Element) Attr(key string) (string, bool) {
	v, ok := el.Attrs[key]
	return v, ok
}

// FloatAttr parses a numeric attribute. ok is false when the attribute is
// missing or not a number.
func (el *Element) FloatAttr(key string) (v float64, ok bool) {
	s, found := el.Attrs[key]
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Target returns the transform and opacity the element is transitioning to.
func (el *Element) Target() (x, y, opacity float64) {
	return el.targetX, el.targetY, el.targetOpacity
}

// Animating reports whether a transition is in flight.
func (el *Element) Animating() bool {
	return el.trans != nil && !el.trans.Done
}

// matches reports whether the element satisfies a single compound selector
// such as "a.btn", "#hero", ".reveal" or "[data-speed]".
func (el *Element) matches(sel string) bool {
	if sel == "" {
		return false
	}
	var attr string
	if i := strings.IndexByte(sel, '['); i >= 0 {
		j := strings.IndexByte(sel[i:], ']')
		if j < 0 {
			return false
		}
		attr = sel[i+1 : i+j]
		sel = sel[:i] + sel[i+j+1:]
	}
	if attr != "" {
		if _, ok := el.Attrs[attr]; !ok {
			return false
		}
	}
	tag, name, classes := splitSelector(sel)
	if tag != "" && tag != el.Tag {
		return false
	}
	if name != "" && name != el.Name {
		return false
	}
	for _, c := range classes {
		if !el.HasClass(c) {
			return false
		}
	}
	return true
}

// splitSelector breaks "tag#name.class1.class2" into its parts.
func splitSelector(s string) (tag, name string, classes []string) {
	s = strings.TrimSpace(s)
	for s != "" {
		end := strings.IndexAny(s[1:], "#.") + 1
		if end == 0 {
			end = len(s)
		}
		part := s[:end]
		s = s[end:]
		switch part[0] {
		case '#':
			name = part[1:]
		case '.':
			if part[1:] != "" {
				classes = append(classes, part[1:])
			}
		default:
			tag = part
		}
	}
	return tag, name, classes
}
