package pixelcafe

import (
	"image"
	"math/rand/v2"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Diagonal baseline of the tear edge, as fractions of the canvas height.
const (
	tearBaseTop  = 0.15
	tearBaseSpan = 0.7
)

// fringeWidth is the stroke width of the paper-edge highlight in pixels.
const fringeWidth = 2

// TearGeometry is the procedural shape of one torn-page transition. It is
// regenerated every time a tear starts.
type TearGeometry struct {
	Width, Height int
	// Edge holds segments+1 points spanning the width, left to right.
	Edge   []Vec2
	Debris []Debris
}

// TearGenerator builds tear geometry and renders the torn-page reveal. All
// randomness comes from the injected source, so a fixed seed reproduces the
// same edge and debris.
type TearGenerator struct {
	rng    *rand.Rand
	width  int
	height int
	edge   []Vec2
	debris debrisField
	ready  bool

	// scratch reused across Render calls
	z      vector.Rasterizer
	mask   *image.Alpha
	fringe *image.Alpha
}

// NewTearGenerator creates a generator drawing from rng. A nil rng is seeded
// from the clock.
func NewTearGenerator(rng *rand.Rand) *TearGenerator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &TearGenerator{rng: rng}
}

// Begin generates a fresh edge and debris for a w×h canvas. The edge follows
// a diagonal from 15% to 85% of the height with each point jittered by up to
// ±wobble pixels. segments <= 0 yields a straight two-point diagonal.
func (g *TearGenerator) Begin(w, h, segments, wobble, debris int) {
	g.width, g.height = max(0, w), max(0, h)
	g.edge = g.edge[:0]
	fh := float64(g.height)
	if segments <= 0 {
		g.edge = append(g.edge,
			Vec2{0, fh * tearBaseTop},
			Vec2{float64(g.width), fh * (tearBaseTop + tearBaseSpan)})
	} else {
		for i := 0; i <= segments; i++ {
			t := float64(i) / float64(segments)
			jitter := 0
			if wobble > 0 {
				jitter = g.rng.IntN(2*wobble+1) - wobble
			}
			g.edge = append(g.edge, Vec2{
				X: float64(i * g.width / segments),
				Y: fh*tearBaseTop + fh*tearBaseSpan*t + float64(jitter),
			})
		}
	}
	g.debris.spawn(g.rng, g.width, g.height, debris)
	g.ready = true
}

// Ready reports whether Begin has been called.
func (g *TearGenerator) Ready() bool { return g.ready }

// Geometry returns a copy of the current edge and debris.
func (g *TearGenerator) Geometry() TearGeometry {
	geo := TearGeometry{
		Width:  g.width,
		Height: g.height,
		Edge:   make([]Vec2, len(g.edge)),
		Debris: make([]Debris, len(g.debris.flecks)),
	}
	copy(geo.Edge, g.edge)
	copy(geo.Debris, g.debris.flecks)
	return geo
}

// Pull returns how far the edge has travelled right at progress.
func (g *TearGenerator) Pull(progress float64) float64 {
	return clamp01(progress) * float64(g.width) * pullFactor
}

// RevealMask returns a new binary mask of the area where the after-frame
// shows at progress. Revealed pixels are 255, all others 0. The revealed
// area never shrinks as progress grows, and progress 0 reveals nothing.
func (g *TearGenerator) RevealMask(progress float64) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, g.width, g.height))
	rasterizeReveal(m, g.edge, g.Pull(progress))
	return m
}

// Render writes the torn-page composite into dst: after shows through the
// reveal mask over before, a paper-edge fringe traces the pulled edge and
// the live debris is drawn on top. All three images share the canvas size.
func (g *TearGenerator) Render(dst, before, after *image.RGBA, progress float64) {
	b := dst.Bounds()
	draw.Draw(dst, b, before, before.Bounds().Min, draw.Src)
	if !g.ready || b.Dx() != g.width || b.Dy() != g.height {
		return
	}

	g.mask = reuseAlpha(g.mask, b)
	pull := g.Pull(progress)
	rasterizeReveal(g.mask, g.edge, pull)
	draw.DrawMask(dst, b, after, after.Bounds().Min, g.mask, image.Point{}, draw.Over)

	if pull > 0 {
		g.fringe = reuseAlpha(g.fringe, b)
		strokeEdge(g.fringe, &g.z, g.pulledEdge(pull), fringeWidth)
		draw.DrawMask(dst, b, image.NewUniform(fringeColor), image.Point{}, g.fringe, image.Point{}, draw.Over)
	}

	g.debris.draw(dst)
}

// UpdateDebris advances the decorative debris by one tick.
func (g *TearGenerator) UpdateDebris(dt time.Duration) {
	g.debris.update(dt)
}

// pulledEdge returns the edge shifted right by pull, clamped to the canvas.
func (g *TearGenerator) pulledEdge(pull float64) []Vec2 {
	right := float64(g.width - 1)
	pts := make([]Vec2, len(g.edge))
	for i, p := range g.edge {
		pts[i] = Vec2{min(right, p.X+pull), p.Y}
	}
	return pts
}

func reuseAlpha(m *image.Alpha, r image.Rectangle) *image.Alpha {
	if m != nil && m.Rect == r {
		return m
	}
	return image.NewAlpha(r)
}
