package pixelcafe

import (
	"image/color"
	"testing"
)

func TestIdentityMatrix(t *testing.T) {
	src := solid(4, 4, color.RGBA{10, 120, 250, 255})
	src.SetRGBA(1, 1, color.RGBA{5, 6, 7, 8})
	dst := solid(4, 4, color.RGBA{})
	m := IdentityMatrix
	m.Apply(dst, src)
	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestColorMatrixInPlace(t *testing.T) {
	img := solid(2, 2, color.RGBA{100, 50, 0, 255})
	m := ColorMatrix{
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
	m.Apply(img, img)
	if got := img.RGBAAt(1, 1); got != (color.RGBA{50, 100, 0, 255}) {
		t.Errorf("swapped = %v, want {50 100 0 255}", got)
	}
}

func TestColorMatrixPremultiplied(t *testing.T) {
	src := solid(1, 1, color.RGBA{})
	dst := solid(1, 1, color.RGBA{1, 1, 1, 1})
	m := FocusTintMatrix
	m.Apply(dst, src)
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("transparent pixel = %v, want fully transparent", got)
	}

	half := solid(1, 1, color.RGBA{100, 100, 100, 128})
	m.Apply(dst, half)
	got := dst.RGBAAt(0, 0)
	if got.A != 128 {
		t.Errorf("alpha = %d, want 128", got.A)
	}
	if got.R > got.A || got.G > got.A || got.B > got.A {
		t.Errorf("channels exceed alpha: %v", got)
	}
}

func TestFocusTintIsCool(t *testing.T) {
	src := solid(1, 1, color.RGBA{90, 90, 90, 255})
	dst := solid(1, 1, color.RGBA{})
	m := FocusTintMatrix
	m.Apply(dst, src)
	got := dst.RGBAAt(0, 0)
	if !(got.B > got.G && got.G > got.R) {
		t.Errorf("tint = %v, want blue > green > red", got)
	}
}

func TestVignette(t *testing.T) {
	img := solid(21, 21, color.RGBA{200, 200, 200, 255})
	FocusVignette.Apply(img)
	if got := img.RGBAAt(10, 10); got.R != 200 {
		t.Errorf("center = %v, want untouched", got)
	}
	corner := img.RGBAAt(0, 0)
	if corner.R >= 200 {
		t.Errorf("corner = %v, want dimmed", corner)
	}
	if corner.A != 255 {
		t.Errorf("corner alpha = %d, want 255", corner.A)
	}

	// Zero span disables the effect.
	flat := solid(4, 4, color.RGBA{200, 200, 200, 255})
	Vignette{Inner: 0, Span: 0, Strength: 1}.Apply(flat)
	if got := flat.RGBAAt(0, 0); got.R != 200 {
		t.Errorf("zero span changed pixel to %v", got)
	}
}

func TestPlaceholderFrame(t *testing.T) {
	img := PlaceholderFrame(3, 2)
	if img.Rect.Dx() != 3 || img.Rect.Dy() != 2 {
		t.Fatalf("size = %v", img.Rect)
	}
	if got := img.RGBAAt(2, 1); got != placeholderColor {
		t.Errorf("pixel = %v, want %v", got, placeholderColor)
	}
}

func TestFocusedPlaceholder(t *testing.T) {
	base := solid(16, 16, color.RGBA{180, 120, 60, 255})
	out := FocusedPlaceholder(base)
	if out == base {
		t.Fatal("FocusedPlaceholder must return a new image")
	}
	if got := base.RGBAAt(8, 8); got != (color.RGBA{180, 120, 60, 255}) {
		t.Errorf("base modified: %v", got)
	}
	if out.RGBAAt(8, 8) == base.RGBAAt(8, 8) {
		t.Error("placeholder should differ from the inside frame")
	}
	if out.RGBAAt(0, 0).B >= out.RGBAAt(8, 8).B {
		t.Error("corners should be darker than the center")
	}
}
