package pixelcafe

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ColorMatrix is a 4×5 color transform applied on the CPU. Rows produce R, G,
// B, A; columns weight the source R, G, B, A plus an offset in 0-255 units.
// Offsets are scaled by source alpha so premultiplied pixels stay valid.
type ColorMatrix [20]float64

// IdentityMatrix leaves colors unchanged.
var IdentityMatrix = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// FocusTintMatrix desaturates to the channel average and pushes the result
// toward a cool blue, marking the focused placeholder as distinct from the
// inside scene it was derived from.
var FocusTintMatrix = ColorMatrix{
	0.55 / 3, 0.55 / 3, 0.55 / 3, 0, 8,
	0.6 / 3, 0.6 / 3, 0.6 / 3, 0, 12,
	0.9 / 3, 0.9 / 3, 0.9 / 3, 0, 50,
	0, 0, 0, 1, 0,
}

// Apply writes m(src) into dst. dst and src must share bounds; they may be
// the same image.
func (m *ColorMatrix) Apply(dst, src *image.RGBA) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			r := float64(src.Pix[si])
			g := float64(src.Pix[si+1])
			bl := float64(src.Pix[si+2])
			a := float64(src.Pix[si+3])
			k := a / 255
			nr := m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4]*k
			ng := m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9]*k
			nb := m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14]*k
			na := m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19]
			na = clampChannel(na, 255)
			dst.Pix[di] = uint8(clampChannel(nr, na))
			dst.Pix[di+1] = uint8(clampChannel(ng, na))
			dst.Pix[di+2] = uint8(clampChannel(nb, na))
			dst.Pix[di+3] = uint8(na)
			si += 4
			di += 4
		}
	}
}

// Vignette darkens img in place outside a normalized radius. Pixels whose
// distance from the center (1 = edge midpoint) exceeds inner fade over span
// to a dimming of strength.
type Vignette struct {
	Inner    float64
	Span     float64
	Strength float64
}

// FocusVignette is the vignette used on the focused placeholder.
var FocusVignette = Vignette{Inner: 0.65, Span: 0.5, Strength: 0.55}

// Apply dims img in place.
func (v Vignette) Apply(img *image.RGBA) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 || v.Span <= 0 {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := (float64(y-b.Min.Y) - h/2) / (h / 2)
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := (float64(x-b.Min.X) - w/2) / (w / 2)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > v.Inner {
				fade := math.Min(1, (dist-v.Inner)/v.Span)
				dim := 1 - fade*v.Strength
				img.Pix[i] = uint8(float64(img.Pix[i]) * dim)
				img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * dim)
				img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * dim)
			}
			i += 4
		}
	}
}

// PlaceholderFrame returns a flat w×h frame used when a scene asset is
// missing.
func PlaceholderFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderColor), image.Point{}, draw.Src)
	return img
}

// FocusedPlaceholder derives a stand-in for the focused scene from the inside
// frame: tinted by FocusTintMatrix, then vignetted. base is not modified.
func FocusedPlaceholder(base *image.RGBA) *image.RGBA {
	out := image.NewRGBA(base.Bounds())
	m := FocusTintMatrix
	m.Apply(out, base)
	FocusVignette.Apply(out)
	return out
}

func clampChannel(v, hi float64) float64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return math.Floor(v + 0.5)
}
