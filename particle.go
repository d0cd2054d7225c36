package pixelcafe

import (
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
	"golang.org/x/image/draw"
)

// Debris spawn ranges. Velocities are in logical pixels per tick, lifetimes
// in seconds.
var (
	debrisVX   = Range{Min: -1.5, Max: 1.5}
	debrisVY   = Range{Min: -2.5, Max: -0.5}
	debrisLife = Range{Min: 0.4, Max: 1.2}
)

// Debris is one decorative paper fleck thrown off by the tear. It never gates
// transition completion.
type Debris struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // lifetime in seconds
	Age    float64 // seconds lived so far
	Alpha  float64
	fade   *Fade
}

// debrisField holds the live flecks of one tear.
type debrisField struct {
	flecks []Debris
}

// spawn replaces the field with n flecks at random positions inside w×h.
func (f *debrisField) spawn(rng *rand.Rand, w, h, n int) {
	f.flecks = f.flecks[:0]
	for range max(0, n) {
		d := Debris{
			X:     float64(rng.IntN(w + 1)),
			Y:     float64(rng.IntN(h + 1)),
			VX:    debrisVX.Random(rng),
			VY:    debrisVY.Random(rng),
			Life:  debrisLife.Random(rng),
			Alpha: 1,
		}
		d.fade = NewFade(1, 0, time.Duration(d.Life*float64(time.Second)), ease.InQuad)
		f.flecks = append(f.flecks, d)
	}
}

// update advances every fleck by one tick, swap-removing expired ones.
func (f *debrisField) update(dt time.Duration) {
	secs := dt.Seconds()
	alive := len(f.flecks)
	i := 0
	for i < alive {
		d := &f.flecks[i]
		d.Age += secs
		if d.Age >= d.Life {
			// Swap with last alive fleck.
			alive--
			f.flecks[i] = f.flecks[alive]
			continue
		}
		d.X += d.VX
		d.Y += d.VY
		d.Alpha = d.fade.Update(dt)
		i++
	}
	f.flecks = f.flecks[:alive]
}

// draw paints each fleck as a 2×2 paper-coloured speck over dst.
func (f *debrisField) draw(dst *image.RGBA) {
	b := dst.Bounds()
	for _, d := range f.flecks {
		a := uint8(clamp01(d.Alpha) * float64(paperColor.A))
		if a == 0 {
			continue
		}
		x, y := int(d.X), int(d.Y)
		r := image.Rect(x, y, x+2, y+2).Intersect(b)
		if r.Empty() {
			continue
		}
		c := color.NRGBA{R: paperColor.R, G: paperColor.G, B: paperColor.B, A: a}
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
	}
}
