package lumen

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

// wheelStep converts one wheel notch into pixels. The landing glides over
// the distance.
const wheelStep = 60

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is the clear color; the zero value picks one from the theme.
	Background Color
}

// Run opens a window and drives the landing from ebiten's game loop:
// input becomes page events, every Update is one frame tick, and Draw
// paints the elements as flat boxes. It blocks until the window closes.
func Run(l *Landing, page *Page, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	h := newHost(l, page, cfg)
	l.Start()
	return ebiten.RunGame(h)
}

// host implements ebiten.Game.
type host struct {
	landing *Landing
	page    *Page
	cfg     RunConfig
	start   time.Time
	touches []ebiten.TouchID
	anchors []*Element
}

func newHost(l *Landing, page *Page, cfg RunConfig) *host {
	return &host{
		landing: l,
		page:    page,
		cfg:     cfg,
		start:   time.Now(),
		anchors: page.QueryAll("section"),
	}
}

func (h *host) Update() error {
	if r := h.page.ScriptRunner(); r != nil {
		r.Step(h.page)
	}
	if !h.page.ProcessInjected() {
		h.processInput()
	}
	h.landing.Tick(time.Since(h.start))
	h.page.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// processInput turns wheel, keys, cursor and touches into page events.
func (h *host) processInput() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		h.landing.Smooth.ScrollBy(-dy * wheelStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		h.landing.Theme.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		h.page.Screenshot(fmt.Sprintf("scroll-%.0f", h.page.ScrollY()))
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		h.landing.Smooth.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		h.landing.Smooth.ScrollTo(h.page.MaxScrollY())
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		h.landing.Smooth.ScrollTo(h.page.ScrollY() + h.page.Viewport().Height*0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		h.landing.Smooth.ScrollTo(h.page.ScrollY() - h.page.Viewport().Height*0.9)
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6} {
		if i < len(h.anchors) && inpututil.IsKeyJustPressed(key) {
			h.landing.Smooth.ScrollToElement(h.anchors[i])
		}
	}

	h.touches = ebiten.AppendTouchIDs(h.touches[:0])
	if len(h.touches) > 0 {
		h.page.SetTouchPrimary(true)
		return
	}
	if h.page.TouchPrimary() {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	vp := h.page.Viewport()
	if x < 0 || y < 0 || x >= vp.Width || y >= vp.Height {
		if _, _, inside := h.page.Pointer(); inside {
			h.page.PointerOut()
		}
		return
	}
	h.page.PointerMove(x, y)
}

func (h *host) Draw(screen *ebiten.Image) {
	bg := h.cfg.Background
	if bg == (Color{}) {
		bg = Color{0.97, 0.97, 0.98, 1}
		if h.landing.Theme.Dark() {
			bg = Color{0.04, 0.05, 0.08, 1}
		}
	}
	screen.Fill(bg.RGBA())

	vp := h.page.Viewport().Rect()
	for _, el := range h.page.Elements() {
		if !el.Visible || el.Opacity <= 0 {
			continue
		}
		box := h.page.BoundingBox(el)
		if !box.Intersects(vp) {
			continue
		}
		drawElement(screen, el, box)
	}

	if h.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  scroll: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), h.page.ScrollY()), 4, int(vp.Height)-16)
	}
	h.captureScreenshots(screen)
}

// captureScreenshots writes the queued captures of the frame just drawn.
func (h *host) captureScreenshots(screen *ebiten.Image) {
	if h.page.PendingScreenshots() == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	paths, err := h.page.flushScreenshots(pixels, b.Dx(), b.Dy(), time.Now())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
	}
	for _, path := range paths {
		logger.Info("screenshot saved", zap.String("path", path))
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	v := Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	if v != h.page.Viewport() {
		h.page.SetViewport(v)
		h.landing.Scroll.OnScroll()
	}
	return outsideWidth, outsideHeight
}

func drawElement(screen *ebiten.Image, el *Element, box Rect) {
	c := el.Color
	c.A *= el.Opacity
	if el.Shadow > 0 {
		shadow := color.RGBA{A: uint8(clamp01(el.Shadow*el.Opacity) * 255)}
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y+box.Height),
			float32(box.Width), 4, shadow, false)
	}
	vector.DrawFilledRect(screen, float32(box.X), float32(box.Y),
		float32(box.Width), float32(box.Height), c.RGBA(), false)
	if el.Text != "" {
		ebitenutil.DebugPrintAt(screen, el.Text, int(box.X)+8, int(box.Y)+8)
	}
}
