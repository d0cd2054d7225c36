package display

import (
	"testing"

	"github.com/phanxgames/pixelcafe"
)

func TestBoxToDevice(t *testing.T) {
	m := pixelcafe.NewCoordinateMapper(128, 96, 4)
	got := boxToDevice(m, pixelcafe.Hitbox{X1: 10, Y1: 20, X2: 14, Y2: 21})
	want := rectF{X: 40, Y: 80, W: 20, H: 8}
	if got != want {
		t.Errorf("boxToDevice = %+v, want %+v", got, want)
	}
}

func TestHintLines(t *testing.T) {
	got := hintLines([]pixelcafe.MissingAsset{
		{Scene: "outside", Path: "assets/outside.gif"},
		{Scene: "focused"},
	})
	want := []string{"outside scene: add outside.gif", "focused scene: add focused.gif"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHintsForState(t *testing.T) {
	missing := []pixelcafe.MissingAsset{{Scene: "outside"}, {Scene: "inside"}, {Scene: "focused"}}
	tests := []struct {
		state pixelcafe.SceneState
		want  int
	}{
		{pixelcafe.StateOutside, 1},
		{pixelcafe.StateFading, 2},
		{pixelcafe.StateInside, 1},
		{pixelcafe.StateTearing, 2},
		{pixelcafe.StateFocused, 1},
	}
	for _, tt := range tests {
		if got := len(hintsFor(tt.state, missing)); got != tt.want {
			t.Errorf("hintsFor(%v) = %d hints, want %d", tt.state, got, tt.want)
		}
	}
}

func TestCursorScale(t *testing.T) {
	tests := []struct {
		w, h, max int
		want      float64
	}{
		{16, 16, 48, 1},
		{96, 48, 48, 0.5},
		{40, 200, 50, 0.25},
		{200, 200, 0, 1},
	}
	for _, tt := range tests {
		if got := cursorScale(tt.w, tt.h, tt.max); got != tt.want {
			t.Errorf("cursorScale(%d, %d, %d) = %v, want %v", tt.w, tt.h, tt.max, got, tt.want)
		}
	}
}

func TestCoordText(t *testing.T) {
	got := coordText(pixelcafe.Point{X: 3, Y: 7}, pixelcafe.StateInside)
	if got != "3,7 inside" {
		t.Errorf("coordText = %q, want %q", got, "3,7 inside")
	}
}
