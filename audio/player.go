// Package audio plays the one-shot cues of the scene engine through a beep
// mixer. Cues are decoded from WAV files once at load time and replayed from
// memory; playback never blocks the caller.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/phanxgames/pixelcafe"
)

// resampleQuality is the beep resampler quality used for cue files whose rate
// differs from the device rate.
const resampleQuality = 4

// ErrNoCue is returned by PlayCue for a cue that has neither a file nor a
// synthesized fallback.
var ErrNoCue = errors.New("cue not loaded")

// Player implements pixelcafe.CuePlayer.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	cues        map[pixelcafe.Cue]*beep.Buffer
	initialized bool
	log         *slog.Logger

	// lock guards mixer access shared with the speaker goroutine. It is
	// speaker.Lock in production.
	lock, unlock func()
}

// NewPlayer creates a player for the given device sample rate. Nothing
// touches the audio device until Initialize.
func NewPlayer(sampleRate int, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		rate:   beep.SampleRate(sampleRate),
		mixer:  &beep.Mixer{},
		cues:   make(map[pixelcafe.Cue]*beep.Buffer),
		log:    logger.With("component", "audio"),
		lock:   speaker.Lock,
		unlock: speaker.Unlock,
	}
}

// NewFromConfig builds a player with every cue loaded from cfg. Missing or
// undecodable files fall back to synthesized cues when cfg.Audio.Synthesize
// is set, otherwise the cue stays silent.
func NewFromConfig(cfg pixelcafe.Config, logger *slog.Logger) *Player {
	p := NewPlayer(cfg.Audio.SampleRate, logger)
	load := func(c pixelcafe.Cue, path string, vol float64, synth func(beep.SampleRate) beep.Streamer) {
		err := p.LoadCue(c, path, vol)
		if err == nil {
			return
		}
		if errors.Is(err, os.ErrNotExist) {
			p.log.Info("cue file missing", "cue", c, "path", path)
		} else {
			p.log.Warn("cue file unusable", "cue", c, "path", path, "err", err)
		}
		if cfg.Audio.Synthesize {
			p.SetCue(c, volume(synth(p.rate), vol))
		}
	}
	load(pixelcafe.CueBell, cfg.Assets.Bell, cfg.Audio.BellVolume, synthBell)
	load(pixelcafe.CueTear, cfg.Assets.Tear, cfg.Audio.TearVolume, synthTear)
	return p
}

// Initialize opens the audio device and starts the mixer. Safe to call more
// than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops every playing cue.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	p.initialized = false
}

// LoadCue decodes the WAV file at path into memory for c, resampled to the
// device rate and scaled by vol.
func (p *Player) LoadCue(c pixelcafe.Cue, path string, vol float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cue %s: %w", path, err)
	}
	defer f.Close()
	return p.decodeCue(c, f, vol)
}

func (p *Player) decodeCue(c pixelcafe.Cue, r io.Reader, vol float64) error {
	s, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode cue %s: %w", c, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != p.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, p.rate, s)
	}
	p.SetCue(c, volume(src, vol))
	return nil
}

// SetCue buffers s as the sound of c, replacing any previous one.
func (p *Player) SetCue(c pixelcafe.Cue, s beep.Streamer) {
	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)

	p.mu.Lock()
	p.cues[c] = buf
	p.mu.Unlock()
}

// HasCue reports whether c has a sound.
func (p *Player) HasCue(c pixelcafe.Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cues[c]
	return ok
}

// CueLength returns the buffered length of c.
func (p *Player) CueLength(c pixelcafe.Cue) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, ok := p.cues[c]
	if !ok {
		return 0
	}
	return p.rate.D(buf.Len())
}

// PlayCue starts c and returns immediately. Before Initialize it is a
// silent no-op.
func (p *Player) PlayCue(c pixelcafe.Cue) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.cues[c]
	if !ok {
		return fmt.Errorf("play %s: %w", c, ErrNoCue)
	}
	if !p.initialized {
		p.log.Debug("audio not initialized, cue skipped", "cue", c)
		return nil
	}
	p.lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	p.unlock()
	return nil
}

// Playing returns the number of cues currently mixing.
func (p *Player) Playing() int {
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}
