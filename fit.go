package pixelcafe

import (
	"image"

	"golang.org/x/image/draw"
)

// FitMode is the policy for normalizing a decoded frame of arbitrary size to
// the logical canvas.
type FitMode string

const (
	FitStretch   FitMode = "stretch"   // resize to exactly the canvas, ignoring aspect
	FitLetterbox FitMode = "letterbox" // fit inside, pad with opaque bars
	FitFill      FitMode = "fill"      // cover the canvas, center-crop the excess
)

// Standardize returns src as a w×h RGBA image using mode. Scaling is nearest
// neighbour to keep pixel art crisp. Unknown modes behave like FitFill. The
// result is always a new image; src is never modified.
func Standardize(src image.Image, w, h int, mode FitMode) *image.RGBA {
	sb := src.Bounds()
	fw, fh := sb.Dx(), sb.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if fw == 0 || fh == 0 || w == 0 || h == 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(placeholderColor), image.Point{}, draw.Src)
		return dst
	}
	if fw == w && fh == h {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
		return dst
	}

	switch mode {
	case FitStretch:
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)

	case FitLetterbox:
		ratio := min(float64(w)/float64(fw), float64(h)/float64(fh))
		nw := min(w, max(1, int(float64(fw)*ratio)))
		nh := min(h, max(1, int(float64(fh)*ratio)))
		draw.Draw(dst, dst.Bounds(), image.NewUniform(letterboxColor), image.Point{}, draw.Src)
		ox := (w - nw) / 2
		oy := (h - nh) / 2
		draw.NearestNeighbor.Scale(dst, image.Rect(ox, oy, ox+nw, oy+nh), src, sb, draw.Src, nil)

	default:
		ratio := max(float64(w)/float64(fw), float64(h)/float64(fh))
		// Rounding must never leave the cover short of the canvas.
		nw := max(w, int(float64(fw)*ratio))
		nh := max(h, int(float64(fh)*ratio))
		scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, sb, draw.Src, nil)
		left := (nw - w) / 2
		top := (nh - h) / 2
		draw.Draw(dst, dst.Bounds(), scaled, image.Pt(left, top), draw.Src)
	}
	return dst
}
