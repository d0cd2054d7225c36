package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveType defines oscillator wave shapes.
type waveType int

const (
	waveSine waveType = iota
	waveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, d time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000)+1, 7)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume scales a stream linearly. Zero is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

const (
	bellDuration = 900 * time.Millisecond
	tearDuration = 350 * time.Millisecond
)

// synthBell is a door-bell ding: a fundamental with an octave overtone that
// decays faster.
func synthBell(rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newOscillator(1318.5, bellDuration, waveSine, rate), bellDuration, 5*time.Millisecond, 850*time.Millisecond, rate)
	over := newEnvelope(newOscillator(2637, bellDuration, waveSine, rate), bellDuration, 5*time.Millisecond, 400*time.Millisecond, rate)
	return beep.Take(rate.N(bellDuration), beep.Mix(volume(fund, 0.6), volume(over, 0.25)))
}

// synthTear is a short burst of shaped noise.
func synthTear(rate beep.SampleRate) beep.Streamer {
	noise := newOscillator(0, tearDuration, waveNoise, rate)
	return volume(newEnvelope(noise, tearDuration, 20*time.Millisecond, 250*time.Millisecond, rate), 0.4)
}
