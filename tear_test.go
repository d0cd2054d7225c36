package pixelcafe

import (
	"image/color"
	"math"
	"testing"
	"time"
)

func TestTearBeginDeterministic(t *testing.T) {
	a := NewTearGenerator(newRand(99))
	b := NewTearGenerator(newRand(99))
	a.Begin(128, 96, 18, 24, 22)
	b.Begin(128, 96, 18, 24, 22)
	ga, gb := a.Geometry(), b.Geometry()
	if len(ga.Edge) != 19 {
		t.Fatalf("edge points = %d, want 19", len(ga.Edge))
	}
	for i := range ga.Edge {
		if ga.Edge[i] != gb.Edge[i] {
			t.Fatalf("edge[%d] = %v vs %v", i, ga.Edge[i], gb.Edge[i])
		}
	}
	if len(ga.Debris) != 22 {
		t.Fatalf("debris = %d, want 22", len(ga.Debris))
	}
	for i := range ga.Debris {
		if ga.Debris[i].X != gb.Debris[i].X || ga.Debris[i].VY != gb.Debris[i].VY {
			t.Fatalf("debris[%d] differs", i)
		}
	}
}

func TestTearEdgeShape(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(100, 100, 10, 5, 0)
	edge := g.Geometry().Edge
	if edge[0].X != 0 || edge[len(edge)-1].X != 100 {
		t.Errorf("edge spans %v..%v, want 0..100", edge[0].X, edge[len(edge)-1].X)
	}
	for i, p := range edge {
		base := 15 + 70*float64(i)/10
		if math.Abs(p.Y-base) > 5+1e-9 {
			t.Errorf("edge[%d].Y = %v, want within 5 of %v", i, p.Y, base)
		}
		if i > 0 && p.X <= edge[i-1].X {
			t.Errorf("edge x not increasing at %d", i)
		}
	}
}

func TestTearStraightEdge(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(40, 20, 0, 8, 0)
	edge := g.Geometry().Edge
	if len(edge) != 2 {
		t.Fatalf("edge points = %d, want 2", len(edge))
	}
	if edge[0].X != 0 || math.Abs(edge[0].Y-3) > 1e-9 {
		t.Errorf("edge[0] = %v, want (0, 3)", edge[0])
	}
	if edge[1].X != 40 || math.Abs(edge[1].Y-17) > 1e-9 {
		t.Errorf("edge[1] = %v, want (40, 17)", edge[1])
	}
}

func TestTearGeometryIsCopy(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(40, 20, 4, 2, 3)
	geo := g.Geometry()
	geo.Edge[0].Y = -100
	if g.Geometry().Edge[0].Y == -100 {
		t.Error("Geometry must return a copy")
	}
}

func TestTearPull(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(200, 100, 4, 0, 0)
	tests := []struct {
		progress, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 95},
		{1, 190},
		{2, 190},
	}
	for _, tt := range tests {
		if got := g.Pull(tt.progress); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Pull(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestTearRender(t *testing.T) {
	before := solid(32, 24, color.RGBA{200, 0, 0, 255})
	after := solid(32, 24, color.RGBA{0, 0, 200, 255})

	g := NewTearGenerator(testRand())
	dst := solid(32, 24, color.RGBA{})

	g.Render(dst, before, after, 0.5)
	if got := dst.RGBAAt(1, 12); got != before.RGBAAt(1, 12) {
		t.Errorf("before Begin pixel = %v, want before", got)
	}

	g.Begin(32, 24, 6, 3, 0)
	g.Render(dst, before, after, 0)
	for i := range dst.Pix {
		if dst.Pix[i] != before.Pix[i] {
			t.Fatal("progress 0 should show the before frame exactly")
		}
	}

	g.Render(dst, before, after, 1)
	if got := dst.RGBAAt(1, 12); got != after.RGBAAt(1, 12) {
		t.Errorf("revealed pixel = %v, want after", got)
	}
}

func TestTearRenderSizeMismatch(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(64, 48, 6, 3, 0)
	before := solid(32, 24, color.RGBA{200, 0, 0, 255})
	after := solid(32, 24, color.RGBA{0, 0, 200, 255})
	dst := solid(32, 24, color.RGBA{})
	g.Render(dst, before, after, 1)
	if got := dst.RGBAAt(1, 12); got != before.RGBAAt(1, 12) {
		t.Errorf("pixel = %v, want before on size mismatch", got)
	}
}

func TestTearUpdateDebris(t *testing.T) {
	g := NewTearGenerator(testRand())
	g.Begin(64, 48, 6, 3, 10)
	g.UpdateDebris(5 * time.Second)
	if n := len(g.Geometry().Debris); n != 0 {
		t.Errorf("debris = %d after every lifetime, want 0", n)
	}
}
