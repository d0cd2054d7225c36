package pixelcafe

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestDebrisSpawnInBounds(t *testing.T) {
	var f debrisField
	f.spawn(testRand(), 40, 30, 25)
	if len(f.flecks) != 25 {
		t.Fatalf("len = %d, want 25", len(f.flecks))
	}
	for i, d := range f.flecks {
		if d.X < 0 || d.X > 40 || d.Y < 0 || d.Y > 30 {
			t.Errorf("fleck %d at (%v, %v) outside canvas", i, d.X, d.Y)
		}
		if d.VX < debrisVX.Min || d.VX > debrisVX.Max {
			t.Errorf("fleck %d VX = %v out of range", i, d.VX)
		}
		if d.VY < debrisVY.Min || d.VY > debrisVY.Max {
			t.Errorf("fleck %d VY = %v out of range", i, d.VY)
		}
		if d.Life < debrisLife.Min || d.Life > debrisLife.Max {
			t.Errorf("fleck %d Life = %v out of range", i, d.Life)
		}
	}

	f.spawn(testRand(), 40, 30, 0)
	if len(f.flecks) != 0 {
		t.Errorf("respawn with 0 left %d flecks", len(f.flecks))
	}
}

func TestDebrisUpdateMovesAndFades(t *testing.T) {
	var f debrisField
	f.flecks = []Debris{{X: 10, Y: 10, VX: 1, VY: -2, Life: 1, Alpha: 1, fade: NewFade(1, 0, time.Second, nil)}}
	f.update(100 * time.Millisecond)
	d := f.flecks[0]
	if d.X != 11 || d.Y != 8 {
		t.Errorf("position = (%v, %v), want (11, 8)", d.X, d.Y)
	}
	if d.Alpha >= 1 || d.Alpha <= 0 {
		t.Errorf("Alpha = %v, want in (0, 1)", d.Alpha)
	}
}

func TestDebrisSwapRemove(t *testing.T) {
	mk := func(x, life float64) Debris {
		return Debris{X: x, Life: life, Alpha: 1, fade: NewFade(1, 0, time.Duration(life*float64(time.Second)), nil)}
	}
	var f debrisField
	f.flecks = []Debris{mk(0, 0.05), mk(1, 1), mk(2, 0.05), mk(3, 1)}
	f.update(100 * time.Millisecond)
	if len(f.flecks) != 2 {
		t.Fatalf("len = %d, want 2", len(f.flecks))
	}
	seen := map[float64]bool{}
	for _, d := range f.flecks {
		seen[d.X] = true
	}
	if !seen[1] || !seen[3] {
		t.Errorf("survivors = %+v, want flecks 1 and 3", f.flecks)
	}

	f.update(2 * time.Second)
	if len(f.flecks) != 0 {
		t.Errorf("len = %d, want 0 after every lifetime", len(f.flecks))
	}
}

func TestDebrisDraw(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	f := debrisField{flecks: []Debris{
		{X: 2, Y: 3, Alpha: 1},
		{X: 7, Y: 7, Alpha: 1},
		{X: 20, Y: 20, Alpha: 1},
		{X: 5, Y: 0, Alpha: 0},
	}}
	f.draw(dst)
	want := color.RGBA{paperColor.R, paperColor.G, paperColor.B, 255}
	for _, p := range []image.Point{{2, 3}, {3, 4}, {7, 7}} {
		if got := dst.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
	if got := dst.RGBAAt(5, 0); got.A != 0 {
		t.Errorf("invisible fleck drew %v", got)
	}
}
