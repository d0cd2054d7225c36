package pixelcafe

import "image"

// framePool manages reusable RGBA frames keyed by exact dimensions. After
// warmup, Acquire/Release are zero-alloc.
type framePool struct {
	buckets map[uint64][]*image.RGBA
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(uint32(h))
}

// Acquire returns a w×h frame. Its contents are undefined; callers overwrite
// every pixel.
func (p *framePool) Acquire(w, h int) *image.RGBA {
	key := poolKey(w, h)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			return img
		}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Release returns a frame to the pool for reuse.
func (p *framePool) Release(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*image.RGBA)
	}
	key := poolKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}

// Len returns the number of idle frames held by the pool.
func (p *framePool) Len() int {
	n := 0
	for _, s := range p.buckets {
		n += len(s)
	}
	return n
}
