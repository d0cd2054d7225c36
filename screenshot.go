package pixelcafe

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Screenshot queues a labeled screenshot of the logical frame. It is
// captured at the end of the current tick and written to the configured
// screenshot directory with a timestamped filename.
func (l *RenderLoop) Screenshot(label string) {
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// flushScreenshots writes frame once for every queued label. Failures are
// logged and the queue is cleared either way.
func (l *RenderLoop) flushScreenshots(frame *image.RGBA) {
	if len(l.screenshotQueue) == 0 {
		return
	}
	defer func() { l.screenshotQueue = l.screenshotQueue[:0] }()

	if err := os.MkdirAll(l.cfg.ScreenshotDir, 0o755); err != nil {
		l.log.Error("screenshot: mkdir", "dir", l.cfg.ScreenshotDir, "err", err)
		return
	}

	img := toNRGBA(frame)
	stamp := l.clock().Format("20060102_150405")
	for _, label := range l.screenshotQueue {
		path := filepath.Join(l.cfg.ScreenshotDir, fmt.Sprintf("%s_%06d_%s.png", stamp, l.ticks, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			l.log.Error("screenshot", "err", err)
			continue
		}
		l.log.Info("screenshot written", "path", path)
	}
}

// toNRGBA converts premultiplied RGBA to straight-alpha NRGBA.
func toNRGBA(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := img.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := src.Pix[si], src.Pix[si+1], src.Pix[si+2], src.Pix[si+3]
			if a > 0 && a < 255 {
				r = uint8(min(int(r)*255/int(a), 255))
				g = uint8(min(int(g)*255/int(a), 255))
				bl = uint8(min(int(bl)*255/int(a), 255))
			}
			img.Pix[di] = r
			img.Pix[di+1] = g
			img.Pix[di+2] = bl
			img.Pix[di+3] = a
			si += 4
			di += 4
		}
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
