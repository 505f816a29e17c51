package lumen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScreenshotDir is where captures go unless SetScreenshotDir is called.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame. The host
// writes it as <stamp>_<label>.png in the screenshot directory.
func (p *Page) Screenshot(label string) {
	p.shots = append(p.shots, label)
}

// SetScreenshotDir changes the capture directory.
func (p *Page) SetScreenshotDir(dir string) {
	p.shotDir = dir
}

// PendingScreenshots returns the number of queued captures.
func (p *Page) PendingScreenshots() int {
	return len(p.shots)
}

// flushScreenshots writes one PNG per queued label from a premultiplied
// RGBA frame and clears the queue. It returns the written paths.
func (p *Page) flushScreenshots(pixels []byte, w, h int, at time.Time) ([]string, error) {
	if len(p.shots) == 0 {
		return nil, nil
	}
	labels := p.shots
	p.shots = nil

	dir := p.shotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}

	img := straightAlpha(pixels, w, h)
	stamp := at.Format("20060102_150405")
	paths := make([]string, 0, len(labels))
	for i, label := range labels {
		name := fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label))
		if i > 0 {
			name = fmt.Sprintf("%s_%s_%d.png", stamp, sanitizeLabel(label), i)
		}
		path := filepath.Join(dir, name)
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// straightAlpha converts premultiplied RGBA pixels to an NRGBA image.
func straightAlpha(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. An empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
}
