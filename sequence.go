package pixelcafe

import (
	"image"
	"time"
)

// DefaultFrameDuration is used for frames whose source omits a delay.
const DefaultFrameDuration = 100 * time.Millisecond

// Frame is one fully composited picture of an animated sequence.
type Frame struct {
	Image    *image.RGBA
	Duration time.Duration
}

// Sequence is a decoded multi-frame image asset. It is created once at load
// time and never modified afterwards, so frames may be shared freely between
// the compositor caches and callers.
//
// An invalid sequence has no frames and zero size. A valid sequence always has
// at least one frame and a positive total duration.
type Sequence struct {
	path   string
	frames []Frame
	total  time.Duration
	width  int
	height int
	valid  bool
	loop   bool
}

// newSequence builds a valid sequence from frames, which must be non-empty
// and carry positive durations.
func newSequence(path string, frames []Frame, w, h int, loop bool) *Sequence {
	var total time.Duration
	for _, f := range frames {
		total += f.Duration
	}
	return &Sequence{
		path:   path,
		frames: frames,
		total:  total,
		width:  w,
		height: h,
		valid:  len(frames) > 0 && total > 0,
		loop:   loop,
	}
}

// invalidSequence returns the explicit "failed to load" value.
func invalidSequence(path string, loop bool) *Sequence {
	return &Sequence{path: path, loop: loop}
}

// Valid reports whether the sequence decoded successfully. A nil sequence is
// invalid.
func (s *Sequence) Valid() bool { return s != nil && s.valid }

// Path returns the file the sequence was loaded from.
func (s *Sequence) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Width returns the canvas width in pixels, or 0 when invalid.
func (s *Sequence) Width() int {
	if !s.Valid() {
		return 0
	}
	return s.width
}

// Height returns the canvas height in pixels, or 0 when invalid.
func (s *Sequence) Height() int {
	if !s.Valid() {
		return 0
	}
	return s.height
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	if !s.Valid() {
		return 0
	}
	return len(s.frames)
}

// Total returns the sum of all frame durations.
func (s *Sequence) Total() time.Duration {
	if !s.Valid() {
		return 0
	}
	return s.total
}

// Loop reports whether lookups wrap around the total duration.
func (s *Sequence) Loop() bool { return s != nil && s.loop }

// Frame returns frame i. It panics if i is out of range, like a slice index.
func (s *Sequence) Frame(i int) Frame { return s.frames[i] }

// FrameIndex returns the index of the frame visible at elapsed, or -1 for an
// invalid sequence. Looping sequences wrap elapsed modulo Total (negative
// values wrap forward); non-looping ones clamp it to [0, Total).
func (s *Sequence) FrameIndex(elapsed time.Duration) int {
	if !s.Valid() {
		return -1
	}
	t := elapsed
	if s.loop {
		t %= s.total
		if t < 0 {
			t += s.total
		}
	} else {
		if t < 0 {
			t = 0
		}
		if t >= s.total {
			t = s.total - 1
		}
	}

	var acc time.Duration
	for i, f := range s.frames {
		acc += f.Duration
		if t < acc {
			return i
		}
	}
	return len(s.frames) - 1
}

// FrameAt returns the frame image visible at elapsed. It is a pure function
// of (s, elapsed): identical inputs return the identical *image.RGBA.
// Returns nil for an invalid sequence.
func (s *Sequence) FrameAt(elapsed time.Duration) *image.RGBA {
	i := s.FrameIndex(elapsed)
	if i < 0 {
		return nil
	}
	return s.frames[i].Image
}
