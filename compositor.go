package pixelcafe

import (
	"image"
	"log/slog"
	"time"
)

// Scenes bundles the three scene sequences. Any of them may be invalid or
// nil; the compositor substitutes placeholders.
type Scenes struct {
	Outside *Sequence
	Inside  *Sequence
	Focused *Sequence
}

// Elapsed holds the per-scene animation clocks.
type Elapsed struct {
	Outside time.Duration
	Inside  time.Duration
	Focused time.Duration
}

// Snapshot is everything the compositor needs for one tick.
type Snapshot struct {
	State    SceneState
	Progress float64
	Elapsed  Elapsed
}

// MissingAsset names a scene that is drawn from a placeholder.
type MissingAsset struct {
	Scene string
	Path  string
}

// Compositor selects, normalizes and blends scene frames into one logical
// canvas image per tick.
type Compositor struct {
	scenes Scenes
	width  int
	height int
	fit    FitMode
	tear   *TearGenerator
	tcfg   TransitionConfig
	log    *slog.Logger

	standard    map[*image.RGBA]*image.RGBA // source frame → standardized
	focusStand  map[*image.RGBA]*image.RGBA // standardized inside → focused placeholder
	placeholder *image.RGBA
	pool        framePool
}

// NewCompositor creates a compositor for a w×h canvas. tear renders the
// Tearing state; tcfg supplies the geometry used when a tear is entered
// without Begin having run, as happens after Force.
func NewCompositor(scenes Scenes, w, h int, fit FitMode, tear *TearGenerator, tcfg TransitionConfig, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	if tear == nil {
		tear = NewTearGenerator(nil)
	}
	return &Compositor{
		scenes:     scenes,
		width:      w,
		height:     h,
		fit:        fit,
		tear:       tear,
		tcfg:       tcfg,
		log:        logger.With("component", "compositor"),
		standard:   make(map[*image.RGBA]*image.RGBA),
		focusStand: make(map[*image.RGBA]*image.RGBA),
	}
}

// Size returns the logical canvas size.
func (c *Compositor) Size() (int, int) { return c.width, c.height }

// MissingAssets lists the scenes that fell back to placeholders.
func (c *Compositor) MissingAssets() []MissingAsset {
	var out []MissingAsset
	add := func(name string, s *Sequence) {
		if !s.Valid() {
			out = append(out, MissingAsset{Scene: name, Path: s.Path()})
		}
	}
	add("outside", c.scenes.Outside)
	add("inside", c.scenes.Inside)
	add("focused", c.scenes.Focused)
	return out
}

// Render composes the frame for snap. The returned image belongs to the
// caller until it is handed back through Release.
func (c *Compositor) Render(snap Snapshot) *image.RGBA {
	dst := c.pool.Acquire(c.width, c.height)
	switch snap.State {
	case StateOutside:
		c.copyInto(dst, c.outsideFrame(snap.Elapsed))
	case StateFading:
		Blend(dst, c.outsideFrame(snap.Elapsed), c.insideFrame(snap.Elapsed), snap.Progress)
	case StateInside:
		c.copyInto(dst, c.insideFrame(snap.Elapsed))
	case StateFadingToFocused:
		in := c.insideFrame(snap.Elapsed)
		Blend(dst, in, c.focusedFrame(snap.Elapsed, in), snap.Progress)
	case StateTearing:
		in := c.insideFrame(snap.Elapsed)
		if !c.tear.Ready() {
			c.tear.Begin(c.width, c.height, c.tcfg.TearSegments, c.tcfg.TearWobble, c.tcfg.TearDebris)
		}
		c.tear.Render(dst, in, c.focusedFrame(snap.Elapsed, in), snap.Progress)
	case StateFocused:
		in := c.insideFrame(snap.Elapsed)
		c.copyInto(dst, c.focusedFrame(snap.Elapsed, in))
	default:
		c.copyInto(dst, c.placeholderFrame())
	}
	return dst
}

// Release hands a rendered frame back for reuse.
func (c *Compositor) Release(img *image.RGBA) {
	c.pool.Release(img)
}

func (c *Compositor) copyInto(dst, src *image.RGBA) {
	copy(dst.Pix, src.Pix)
}

func (c *Compositor) outsideFrame(e Elapsed) *image.RGBA {
	return c.sceneFrame(c.scenes.Outside, e.Outside)
}

func (c *Compositor) insideFrame(e Elapsed) *image.RGBA {
	return c.sceneFrame(c.scenes.Inside, e.Inside)
}

// focusedFrame returns the focused scene frame, or a placeholder derived from
// the standardized inside frame in when the focused asset is invalid.
func (c *Compositor) focusedFrame(e Elapsed, in *image.RGBA) *image.RGBA {
	if c.scenes.Focused.Valid() {
		return c.sceneFrame(c.scenes.Focused, e.Focused)
	}
	if f, ok := c.focusStand[in]; ok {
		return f
	}
	f := FocusedPlaceholder(in)
	c.focusStand[in] = f
	c.log.Debug("derived focused placeholder", "cached", len(c.focusStand))
	return f
}

// sceneFrame returns the standardized frame of seq at elapsed.
func (c *Compositor) sceneFrame(seq *Sequence, elapsed time.Duration) *image.RGBA {
	src := seq.FrameAt(elapsed)
	if src == nil {
		return c.placeholderFrame()
	}
	if f, ok := c.standard[src]; ok {
		return f
	}
	f := Standardize(src, c.width, c.height, c.fit)
	c.standard[src] = f
	c.log.Debug("standardized frame", "scene", seq.Path(), "fit", c.fit, "cached", len(c.standard))
	return f
}

func (c *Compositor) placeholderFrame() *image.RGBA {
	if c.placeholder == nil {
		c.placeholder = PlaceholderFrame(c.width, c.height)
	}
	return c.placeholder
}

// Blend writes the linear interpolation (1-alpha)*a + alpha*b into dst.
// alpha is clamped to [0, 1]; at 0 dst equals a exactly and at 1 it equals
// b exactly. a, b and dst must share dimensions.
func Blend(dst, a, b *image.RGBA, alpha float64) {
	k := int(clamp01(alpha)*256 + 0.5)
	switch k {
	case 0:
		copy(dst.Pix, a.Pix)
		return
	case 256:
		copy(dst.Pix, b.Pix)
		return
	}
	inv := 256 - k
	for i := range dst.Pix {
		dst.Pix[i] = uint8((int(a.Pix[i])*inv + int(b.Pix[i])*k + 128) >> 8)
	}
}
