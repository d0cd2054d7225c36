package pixelcafe

import (
	"image/color"
	"math/rand/v2"
)

// Vec2 is a 2D vector in logical canvas pixels.
type Vec2 struct {
	X, Y float64
}

// Point is an integer coordinate pair. Used for cursor offsets and logical
// hit-test positions.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Hitbox is an inclusive logical-coordinate rectangle (x1, y1)-(x2, y2).
// Both corners are part of the box, matching how scene hotspots are authored
// against the source GIF pixels.
type Hitbox struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// Contains reports whether the logical point (x, y) lies inside the box.
// Points on the edge are considered inside.
func (b Hitbox) Contains(x, y int) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

// Empty reports whether the box has no area.
func (b Hitbox) Empty() bool {
	return b.X2 < b.X1 || b.Y2 < b.Y1
}

// Expand returns a size×size box sharing the center of b.
func (b Hitbox) Expand(size int) Hitbox {
	cx := (b.X1 + b.X2) / 2
	cy := (b.Y1 + b.Y2) / 2
	half := size / 2
	return Hitbox{X1: cx - half, Y1: cy - half, X2: cx + half, Y2: cy + half}
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Cue names a one-shot sound effect played by the audio collaborator.
type Cue uint8

const (
	CueBell Cue = iota // door bell, played when a crossfade starts
	CueTear            // paper tear, played when a tear transition starts
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueBell:
		return "bell"
	case CueTear:
		return "tear"
	default:
		return "unknown"
	}
}

// Palette used by placeholders and the tear effect.
var (
	placeholderColor = color.RGBA{20, 20, 20, 255}
	letterboxColor   = color.RGBA{0, 0, 0, 255}
	fringeColor      = color.NRGBA{255, 255, 255, 180}
	paperColor       = color.NRGBA{245, 242, 233, 255}
)

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
