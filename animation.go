package pixelcafe

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a single value from one level to another over a fixed
// duration. Create one with NewFade and call Update each tick.
//
// There is no global animation manager; owners call Update themselves.
type Fade struct {
	tween *gween.Tween
	Value float64
	Done  bool
}

// NewFade creates a Fade from → to over d using the easing function. A nil
// easing function is linear.
func NewFade(from, to float64, d time.Duration, fn ease.TweenFunc) *Fade {
	if fn == nil {
		fn = ease.Linear
	}
	secs := float32(d.Seconds())
	if secs <= 0 {
		return &Fade{Value: to, Done: true}
	}
	return &Fade{
		tween: gween.New(float32(from), float32(to), secs, fn),
		Value: from,
	}
}

// Update advances the fade by dt and returns the new value. Once done the
// value stays at its target.
func (f *Fade) Update(dt time.Duration) float64 {
	if f.Done {
		return f.Value
	}
	val, finished := f.tween.Update(float32(dt.Seconds()))
	f.Value = float64(val)
	f.Done = finished
	return f.Value
}
