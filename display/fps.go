package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the FPS readout is redrawn.
const fpsRefresh = 500 * time.Millisecond

// fpsWidget displays the current FPS and TPS in a small cached image.
type fpsWidget struct {
	img   *ebiten.Image
	accum time.Duration
	dirty bool
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), dirty: true}
}

// update marks the readout for redraw every fpsRefresh.
func (w *fpsWidget) update(dt time.Duration) {
	w.accum += dt
	if w.accum < fpsRefresh {
		return
	}
	w.accum = 0
	w.dirty = true
}

func (w *fpsWidget) draw(screen *ebiten.Image, x, y int) {
	if w.dirty {
		w.img.Clear()
		// Semi-transparent background for readability
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		w.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(w.img, op)
}
