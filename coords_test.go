package pixelcafe

import (
	"image/color"
	"testing"
)

func TestResolveScale(t *testing.T) {
	auto := ScaleConfig{Mode: ScaleAuto, Fixed: 3, MaxDisplayWidth: 800, MaxDisplayHeight: 600}
	tests := []struct {
		name string
		cfg  ScaleConfig
		w, h int
		want int
	}{
		{"auto small canvas", auto, 128, 96, 6},
		{"auto capped", auto, 64, 48, maxAutoScale},
		{"auto too large", auto, 1200, 900, 1},
		{"auto exact fit", auto, 400, 300, 2},
		{"fixed", ScaleConfig{Mode: ScaleFixed, Fixed: 3}, 128, 96, 3},
		{"fixed zero", ScaleConfig{Mode: ScaleFixed}, 128, 96, 1},
		{"none", ScaleConfig{Mode: ScaleNone, Fixed: 5}, 128, 96, 1},
		{"unknown", ScaleConfig{Mode: "zoom"}, 128, 96, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveScale(tt.cfg, tt.w, tt.h); got != tt.want {
				t.Errorf("ResolveScale = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLogicalSize(t *testing.T) {
	a := testSequence(100, 50, true, ms)
	b := testSequence(80, 90, true, ms)
	if w, h := LogicalSize(128, 96, a, b, invalidSequence("x", true)); w != 100 || h != 90 {
		t.Errorf("LogicalSize = %dx%d, want 100x90", w, h)
	}
	if w, h := LogicalSize(128, 96, invalidSequence("x", true), nil); w != 128 || h != 96 {
		t.Errorf("LogicalSize = %dx%d, want 128x96", w, h)
	}
}

func TestDeviceToLogical(t *testing.T) {
	m := NewCoordinateMapper(128, 96, 4)
	tests := []struct {
		dx, dy int
		lx, ly int
	}{
		{0, 0, 0, 0},
		{3, 3, 0, 0},
		{4, 7, 1, 1},
		{511, 383, 127, 95},
		{-1, -1, -1, -1},
		{-4, -5, -1, -2},
	}
	for _, tt := range tests {
		lx, ly := m.DeviceToLogical(tt.dx, tt.dy)
		if lx != tt.lx || ly != tt.ly {
			t.Errorf("DeviceToLogical(%d, %d) = (%d, %d), want (%d, %d)", tt.dx, tt.dy, lx, ly, tt.lx, tt.ly)
		}
	}
}

func TestLogicalRoundTrip(t *testing.T) {
	m := NewCoordinateMapper(128, 96, 3)
	for lx := -2; lx < 10; lx++ {
		dx, dy := m.LogicalToDevice(lx, lx+1)
		for off := 0; off < 3; off++ {
			gx, gy := m.DeviceToLogical(dx+off, dy+off)
			if gx != lx || gy != lx+1 {
				t.Errorf("round trip of (%d, %d)+%d = (%d, %d)", lx, lx+1, off, gx, gy)
			}
		}
	}
}

func TestMapperSizes(t *testing.T) {
	m := NewCoordinateMapper(128, 96, 0)
	if m.Scale() != 1 {
		t.Errorf("Scale = %d, want 1", m.Scale())
	}
	m = NewCoordinateMapper(128, 96, 5)
	if w, h := m.DisplaySize(); w != 640 || h != 480 {
		t.Errorf("DisplaySize = %dx%d, want 640x480", w, h)
	}
	if w, h := m.LogicalSize(); w != 128 || h != 96 {
		t.Errorf("LogicalSize = %dx%d, want 128x96", w, h)
	}
}

func TestCursorAnchor(t *testing.T) {
	m := NewCoordinateMapper(128, 96, 4)
	locked := CursorConfig{LockToScreen: true, Offset: Point{X: 2, Y: -1}}
	if x, y := m.CursorAnchor(13, 9, locked); x != 15 || y != 8 {
		t.Errorf("locked anchor = (%d, %d), want (15, 8)", x, y)
	}
	snapped := CursorConfig{Offset: Point{X: 1, Y: 0}}
	if x, y := m.CursorAnchor(13, 9, snapped); x != 16 || y != 8 {
		t.Errorf("snapped anchor = (%d, %d), want (16, 8)", x, y)
	}
}

func TestHitboxContainsInclusive(t *testing.T) {
	b := Hitbox{X1: 50, Y1: 40, X2: 70, Y2: 90}
	tests := []struct {
		x, y int
		want bool
	}{
		{50, 40, true},
		{70, 90, true},
		{60, 60, true},
		{49, 60, false},
		{71, 60, false},
		{60, 91, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got := b.Expand(10); got != (Hitbox{55, 60, 65, 70}) {
		t.Errorf("Expand = %+v", got)
	}
	if !(Hitbox{X1: 5, X2: 4}).Empty() {
		t.Error("inverted box should be empty")
	}
}

func TestStandardize(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	src := solid(100, 50, red)

	t.Run("fill covers", func(t *testing.T) {
		dst := Standardize(src, 80, 80, FitFill)
		if dst.Rect.Dx() != 80 || dst.Rect.Dy() != 80 {
			t.Fatalf("size = %v", dst.Rect)
		}
		for _, p := range [][2]int{{0, 0}, {79, 0}, {0, 79}, {79, 79}, {40, 40}} {
			if got := dst.RGBAAt(p[0], p[1]); got != red {
				t.Errorf("pixel %v = %v, want %v", p, got, red)
			}
		}
	})

	t.Run("letterbox pads", func(t *testing.T) {
		dst := Standardize(src, 80, 80, FitLetterbox)
		if got := dst.RGBAAt(40, 0); got != letterboxColor {
			t.Errorf("top bar = %v, want %v", got, letterboxColor)
		}
		if got := dst.RGBAAt(40, 40); got != red {
			t.Errorf("center = %v, want %v", got, red)
		}
		if got := dst.RGBAAt(40, 79); got != letterboxColor {
			t.Errorf("bottom bar = %v, want %v", got, letterboxColor)
		}
	})

	t.Run("stretch", func(t *testing.T) {
		dst := Standardize(src, 80, 80, FitStretch)
		if got := dst.RGBAAt(0, 79); got != red {
			t.Errorf("corner = %v, want %v", got, red)
		}
	})

	t.Run("same size copies", func(t *testing.T) {
		dst := Standardize(src, 100, 50, FitLetterbox)
		if dst == src {
			t.Fatal("Standardize must return a new image")
		}
		if got := dst.RGBAAt(99, 49); got != red {
			t.Errorf("corner = %v, want %v", got, red)
		}
	})

	t.Run("empty source", func(t *testing.T) {
		dst := Standardize(solid(0, 0, red), 4, 4, FitFill)
		if got := dst.RGBAAt(1, 1); got != placeholderColor {
			t.Errorf("pixel = %v, want %v", got, placeholderColor)
		}
	})
}
