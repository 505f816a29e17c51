package lumen

import "testing"

func TestSplitSelector(t *testing.T) {
	tag, name, classes := splitSelector("a#cta.btn.btn-primary")
	if tag != "a" || name != "cta" || len(classes) != 2 || classes[0] != "btn" || classes[1] != "btn-primary" {
		t.Errorf("splitSelector = %q %q %v", tag, name, classes)
	}
	tag, name, classes = splitSelector(".card")
	if tag != "" || name != "" || len(classes) != 1 {
		t.Errorf("splitSelector(.card) = %q %q %v", tag, name, classes)
	}
}

func TestElementMatches(t *testing.T) {
	el := NewElement("div#hero.hero-shape.blob", Rect{})
	el.SetAttr("data-speed", "0.2")

	tests := []struct {
		sel  string
		want bool
	}{
		{"div", true},
		{"#hero", true},
		{".hero-shape", true},
		{"div.blob.hero-shape", true},
		{"[data-speed]", true},
		{"div[data-speed]", true},
		{"span", false},
		{"#other", false},
		{".missing", false},
		{"[data-missing]", false},
		{"[broken", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			if got := el.matches(tt.sel); got != tt.want {
				t.Errorf("matches(%q) = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestElementFloatAttr(t *testing.T) {
	el := NewElement("div", Rect{})
	if _, ok := el.FloatAttr("data-speed"); ok {
		t.Error("missing attribute should not parse")
	}
	el.SetAttr("data-speed", " 0.25 ")
	if v, ok := el.FloatAttr("data-speed"); !ok || v != 0.25 {
		t.Errorf("FloatAttr = %v, %v", v, ok)
	}
	el.SetAttr("data-speed", "slow")
	if _, ok := el.FloatAttr("data-speed"); ok {
		t.Error("non-numeric attribute should not parse")
	}
}

func TestNewElementIDsAreUnique(t *testing.T) {
	a := NewElement("div", Rect{})
	b := NewElement("div", Rect{})
	if a.ID == b.ID || a.ID == 0 {
		t.Errorf("IDs %d and %d", a.ID, b.ID)
	}
	if a.Opacity != 1 || !a.Visible {
		t.Error("new elements should be visible and opaque")
	}
}

func TestPageQueryAll(t *testing.T) {
	p := NewPage(800, 600)
	a := p.Add(NewElement("a.btn-primary", Rect{}))
	p.Add(NewElement("div.card", Rect{}))
	c := p.Add(NewElement("button.btn-magnetic", Rect{}))

	got := p.QueryAll(".btn-primary, .btn-magnetic")
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("QueryAll = %v", got)
	}
	if p.Query(".nothing") != nil {
		t.Error("Query should return nil for no match")
	}
	if p.QueryAll("") != nil {
		t.Error("empty selector should match nothing")
	}
}

func TestPageRemove(t *testing.T) {
	p := NewPage(800, 600)
	a := p.Add(NewElement("div#a", Rect{Width: 10, Height: 10}))
	b := p.Add(NewElement("div#b", Rect{Width: 10, Height: 10}))
	a.Timing = TimingSlow
	p.SetOpacity(a, 0)

	p.Remove(a)
	if len(p.Elements()) != 1 || p.Elements()[0] != b {
		t.Errorf("Elements = %v", p.Elements())
	}
	if a.Animating() {
		t.Error("removed element should drop its transition")
	}
}

func TestPageAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding nil")
		}
	}()
	NewPage(800, 600).Add(nil)
}

func TestPageBoundingBox(t *testing.T) {
	p := NewPage(800, 600)
	p.SetHeight(3000)
	el := p.Add(NewElement("div", Rect{X: 10, Y: 1000, Width: 100, Height: 50}))
	fixed := NewElement("nav", Rect{Width: 800, Height: 64})
	fixed.Fixed = true
	p.Add(fixed)

	p.SetTransform(el, 5, 20)
	p.SetScrollY(400)

	if got := p.BoundingBox(el); got != (Rect{X: 15, Y: 620, Width: 100, Height: 50}) {
		t.Errorf("BoundingBox = %+v", got)
	}
	if got := p.BoundingBox(fixed); got.Y != 0 {
		t.Errorf("fixed element moved with scroll: %+v", got)
	}
}

func TestPageScrollClampsAndNotifies(t *testing.T) {
	p := NewPage(800, 600)
	p.SetHeight(2000)
	var events int
	p.OnScroll(func() { events++ })

	p.SetScrollY(5000)
	if p.ScrollY() != 1400 {
		t.Errorf("ScrollY = %v, want 1400", p.ScrollY())
	}
	p.SetScrollY(1400)
	p.ScrollBy(-100)
	p.SetScrollY(-10)
	if p.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0", p.ScrollY())
	}
	if events != 3 {
		t.Errorf("scroll events = %d, want 3 (no event without movement)", events)
	}
}

func TestPageHeightFromElements(t *testing.T) {
	p := NewPage(800, 600)
	p.Add(NewElement("section", Rect{Y: 0, Height: 900}))
	p.Add(NewElement("section", Rect{Y: 900, Height: 700}))
	nav := NewElement("nav", Rect{Y: 5000, Height: 64})
	nav.Fixed = true
	p.Add(nav)

	if p.Height() != 1600 {
		t.Errorf("Height = %v, want 1600", p.Height())
	}
	if p.MaxScrollY() != 1000 {
		t.Errorf("MaxScrollY = %v, want 1000", p.MaxScrollY())
	}
}

func TestPageSetViewportReclamps(t *testing.T) {
	p := NewPage(800, 600)
	p.SetHeight(1000)
	p.SetScrollY(400)
	p.SetViewport(Viewport{Width: 800, Height: 900})
	if p.ScrollY() != 100 {
		t.Errorf("ScrollY = %v, want 100", p.ScrollY())
	}
}

func TestPageTransitions(t *testing.T) {
	p := NewPage(800, 600)
	el := p.Add(NewElement("div", Rect{Width: 10, Height: 10}))

	p.SetTransform(el, 0, 30)
	if el.Y != 30 || el.Animating() {
		t.Fatal("zero timing should apply instantly")
	}

	p.SetTiming(el, TimingReveal)
	p.SetTransform(el, 0, 0)
	if el.Y != 30 || !el.Animating() {
		t.Fatal("reveal timing should animate")
	}
	p.Update(0.4)
	if el.Y <= 0 || el.Y >= 30 {
		t.Errorf("mid-transition y = %v, want between 0 and 30", el.Y)
	}
	p.Update(0.5)
	if el.Y != 0 || el.Animating() {
		t.Errorf("settled y = %v animating=%v", el.Y, el.Animating())
	}
}

func TestPageTransitionRetargetFromCurrent(t *testing.T) {
	p := NewPage(800, 600)
	el := p.Add(NewElement("div", Rect{Width: 10, Height: 10}))
	el.Timing = Timing{Duration: 1}

	p.SetTransform(el, 100, 0)
	p.Update(0.5)
	mid := el.X
	p.SetTransform(el, 0, 0)
	p.Update(0.01)
	if el.X > mid {
		t.Errorf("retarget jumped: x=%v mid=%v", el.X, mid)
	}
}

func TestPageStyleSetters(t *testing.T) {
	p := NewPage(800, 600)
	el := p.Add(NewElement("span", Rect{}))
	p.SetText(el, "42")
	p.SetColor(el, Color{0, 0, 0, 1})
	p.SetShadow(el, 0.2)
	p.SetOpacity(el, 2)
	if el.Text != "42" || el.Color != (Color{0, 0, 0, 1}) || el.Shadow != 0.2 || el.Opacity != 1 {
		t.Errorf("element = %+v", el)
	}
}

func TestTimingDelayOnly(t *testing.T) {
	p := NewPage(800, 600)
	el := p.Add(NewElement("div", Rect{}))
	el.Timing = Timing{}.WithDelay(0.2)

	p.SetOpacity(el, 0)
	if el.Opacity != 1 {
		t.Fatal("delay should postpone the change")
	}
	p.Update(0.1)
	if el.Opacity != 1 {
		t.Error("changed during delay")
	}
	p.Update(0.2)
	if el.Opacity != 0 {
		t.Errorf("opacity after delay = %v, want 0", el.Opacity)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if got := r.Intersection(Rect{X: 50, Y: 50, Width: 100, Height: 100}); got.Area() != 2500 {
		t.Errorf("Intersection area = %v", got.Area())
	}
	if got := r.Intersection(Rect{X: 200, Y: 0, Width: 10, Height: 10}); got.Area() != 0 {
		t.Errorf("disjoint Intersection area = %v", got.Area())
	}
	if got := r.Expand(-10); got != (Rect{X: 10, Y: 10, Width: 80, Height: 80}) {
		t.Errorf("Expand(-10) = %+v", got)
	}
	if c := r.Center(); c != (Vec2{50, 50}) {
		t.Errorf("Center = %v", c)
	}
}

func TestColorRGBA(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}.RGBA()
	if c.A != 128 || c.R != 128 || c.G != 64 || c.B != 0 {
		t.Errorf("RGBA = %+v", c)
	}
}
