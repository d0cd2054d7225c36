package pixelcafe

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// pullFactor is how far across the canvas the tear edge travels at full
// progress, as a fraction of the width.
const pullFactor = 0.95

// edgeAt evaluates the piecewise-linear tear edge at x. Outside the first
// and last point the edge is held flat. Vertices are returned exactly and
// values between two vertices never leave the range they span, so the
// result moves monotonically along each segment.
func edgeAt(edge []Vec2, x float64) float64 {
	if len(edge) == 0 {
		return 0
	}
	if x <= edge[0].X {
		return edge[0].Y
	}
	for i := 1; i < len(edge); i++ {
		a, b := edge[i-1], edge[i]
		if x < b.X {
			if b.X == a.X {
				return b.Y
			}
			y := lerp(a.Y, b.Y, (x-a.X)/(b.X-a.X))
			return math.Max(math.Min(a.Y, b.Y), math.Min(math.Max(a.Y, b.Y), y))
		}
		if x == b.X {
			return b.Y
		}
	}
	return edge[len(edge)-1].Y
}

// sweptSpan returns the vertical extent covered by the edge between x0 and
// x1. The extremes of a piecewise-linear curve lie at the window ends or at
// interior vertices.
func sweptSpan(edge []Vec2, x0, x1 float64) (top, bottom float64) {
	top = math.Min(edgeAt(edge, x0), edgeAt(edge, x1))
	bottom = math.Max(edgeAt(edge, x0), edgeAt(edge, x1))
	for _, p := range edge {
		if p.X > x0 && p.X < x1 {
			top = math.Min(top, p.Y)
			bottom = math.Max(bottom, p.Y)
		}
	}
	return top, bottom
}

// rasterizeReveal fills dst with the binary reveal mask for pull. A pixel is
// revealed when its centre lies left of the pull, or when the edge has swept
// across its centre on the way from cx-pull to cx. That window only widens
// as pull grows, so a revealed pixel stays revealed.
func rasterizeReveal(dst *image.Alpha, edge []Vec2, pull float64) {
	clear(dst.Pix)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || pull <= 0 {
		return
	}
	for px := 0; px < w; px++ {
		cx := float64(px) + 0.5
		y0, y1 := 0, h-1
		if cx >= pull {
			top, bottom := sweptSpan(edge, math.Max(0, cx-pull), cx)
			y0 = max(0, int(math.Ceil(top-0.5)))
			y1 = min(h-1, int(math.Floor(bottom-0.5)))
		}
		for py := y0; py <= y1; py++ {
			dst.Pix[py*dst.Stride+px] = 255
		}
	}
}

// strokeEdge rasterizes a polyline of the given width into dst as coverage.
func strokeEdge(dst *image.Alpha, z *vector.Rasterizer, pts []Vec2, width float64) {
	clear(dst.Pix)
	b := dst.Bounds()
	if len(pts) < 2 || b.Empty() {
		return
	}
	z.Reset(b.Dx(), b.Dy())
	z.DrawOp = draw.Src
	half := width / 2
	for i := 1; i < len(pts); i++ {
		a, c := pts[i-1], pts[i]
		dx, dy := c.X-a.X, c.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		z.LineTo(float32(c.X+nx), float32(c.Y+ny))
		z.LineTo(float32(c.X-nx), float32(c.Y-ny))
		z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		z.ClosePath()
	}
	z.Draw(dst, b, image.Opaque, image.Point{})
}
