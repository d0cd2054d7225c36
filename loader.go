package pixelcafe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var errNoFrames = errors.New("no frames")

// SequenceLoader decodes scene assets into Sequences. Load never fails: any
// problem is logged and produces an invalid sequence.
type SequenceLoader struct {
	fsys fs.FS
	loop bool
	log  *slog.Logger
}

// NewSequenceLoader creates a loader reading from the OS filesystem. loop is
// stamped onto every sequence it produces. A nil logger uses slog.Default.
func NewSequenceLoader(loop bool, logger *slog.Logger) *SequenceLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SequenceLoader{
		loop: loop,
		log:  logger.With("component", "loader"),
	}
}

// LoadSequence loads path with a default loader.
func LoadSequence(path string, loop bool) *Sequence {
	return NewSequenceLoader(loop, nil).Load(path)
}

// LoadSequenceWithFallback loads primary, or fallback when primary is invalid.
func LoadSequenceWithFallback(primary, fallback string, loop bool) *Sequence {
	return NewSequenceLoader(loop, nil).LoadWithFallback(primary, fallback)
}

// WithFS returns a copy of the loader that reads from fsys instead of the OS.
func (l *SequenceLoader) WithFS(fsys fs.FS) *SequenceLoader {
	cp := *l
	cp.fsys = fsys
	return &cp
}

// Load reads and decodes path. Missing files, unsupported formats and empty
// animations all yield an invalid sequence.
func (l *SequenceLoader) Load(path string) *Sequence {
	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Info("asset missing", "path", path)
		} else {
			l.log.Error("failed to read asset", "path", path, "err", err)
		}
		return invalidSequence(path, l.loop)
	}

	seq, err := DecodeSequence(path, data, l.loop)
	if err != nil {
		l.log.Error("failed to decode asset", "path", path, "err", err)
		return invalidSequence(path, l.loop)
	}
	l.log.Debug("asset loaded", "path", path, "frames", seq.Len(),
		"size", fmt.Sprintf("%dx%d", seq.Width(), seq.Height()), "total", seq.Total())
	return seq
}

// LoadWithFallback loads primary and, if that is invalid and fallback names an
// existing file, loads fallback instead.
func (l *SequenceLoader) LoadWithFallback(primary, fallback string) *Sequence {
	seq := l.Load(primary)
	if seq.Valid() || fallback == "" || fallback == primary {
		return seq
	}
	if !l.exists(fallback) {
		return seq
	}
	l.log.Info("falling back to alternate asset", "configured", primary, "fallback", fallback)
	return l.Load(fallback)
}

func (l *SequenceLoader) readFile(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, path)
	}
	return os.ReadFile(path)
}

func (l *SequenceLoader) exists(path string) bool {
	var err error
	if l.fsys != nil {
		_, err = fs.Stat(l.fsys, path)
	} else {
		_, err = os.Stat(path)
	}
	return err == nil
}

// DecodeSequence decodes an animated GIF, or any registered still image
// format as a single-frame sequence.
func DecodeSequence(path string, data []byte, loop bool) (*Sequence, error) {
	if bytes.HasPrefix(data, []byte("GIF8")) {
		return decodeGIF(path, data, loop)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	frame := toRGBA(img)
	b := frame.Bounds()
	return newSequence(path, []Frame{{Image: frame, Duration: DefaultFrameDuration}}, b.Dx(), b.Dy(), loop), nil
}

// decodeGIF composites every GIF frame onto the logical screen so each Frame
// is a complete picture, honouring the per-frame disposal method.
func decodeGIF(path string, data []byte, loop bool) (*Sequence, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}

	if len(g.Image) == 0 {
		// Fall back to the decoder's default image as one synthetic frame.
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode gif: %w", errNoFrames)
		}
		frame := toRGBA(img)
		b := frame.Bounds()
		return newSequence(path, []Frame{{Image: frame, Duration: DefaultFrameDuration}}, b.Dx(), b.Dy(), loop), nil
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		var union image.Rectangle
		for _, p := range g.Image {
			union = union.Union(p.Bounds())
		}
		w, h = union.Max.X, union.Max.Y
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := make([]Frame, 0, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = cloneRGBA(canvas)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frames = append(frames, Frame{Image: cloneRGBA(canvas), Duration: gifDelay(g, i)})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return newSequence(path, frames, w, h, loop), nil
}

// gifDelay converts the GIF delay (1/100 s) of frame i, defaulting omitted or
// zero delays to DefaultFrameDuration.
func gifDelay(g *gif.GIF, i int) time.Duration {
	if i >= len(g.Delay) || g.Delay[i] <= 0 {
		return DefaultFrameDuration
	}
	return time.Duration(g.Delay[i]) * 10 * time.Millisecond
}

// toRGBA copies img into a fresh RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
