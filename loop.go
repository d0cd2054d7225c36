package pixelcafe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"
)

// ErrScriptDone is returned by Tick once an attached playback script has
// run every step. Run treats it as a clean exit.
var ErrScriptDone = errors.New("script done")

// CuePlayer plays one-shot sound cues. Calls are fire-and-forget; the loop
// logs errors and never waits on playback.
type CuePlayer interface {
	PlayCue(Cue) error
}

// Presenter receives the logical frame at the end of every tick. The frame
// must not be retained after Present returns.
type Presenter interface {
	Present(*image.RGBA) error
}

// Collaborator is updated once per tick after the state machine, for
// overlays and other UI that reacts to the current scene.
type Collaborator interface {
	Update(dt time.Duration, state SceneState)
}

// LoopOption configures a RenderLoop.
type LoopOption func(*RenderLoop)

// WithLogger sets the logger used by the loop and the components it builds.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *RenderLoop) { l.log = logger }
}

// WithClock replaces the wall clock used to measure tick deltas.
func WithClock(now func() time.Time) LoopOption {
	return func(l *RenderLoop) { l.clock = now }
}

// WithCuePlayer sets the audio collaborator.
func WithCuePlayer(p CuePlayer) LoopOption {
	return func(l *RenderLoop) { l.cues = p }
}

// WithPresenter sets the display collaborator.
func WithPresenter(p Presenter) LoopOption {
	return func(l *RenderLoop) { l.presenter = p }
}

// WithCollaborator registers a per-tick collaborator. May be repeated.
func WithCollaborator(c Collaborator) LoopOption {
	return func(l *RenderLoop) { l.collaborators = append(l.collaborators, c) }
}

// WithRand sets the random source of the tear generator.
func WithRand(rng *rand.Rand) LoopOption {
	return func(l *RenderLoop) { l.rng = rng }
}

// WithScript attaches a playback script.
func WithScript(s *ScriptRunner) LoopOption {
	return func(l *RenderLoop) { l.script = s }
}

// RenderLoop ties the core together once per tick: measure dt, route input,
// advance the state machine and collaborators, compose and present the
// frame. It owns all scene state and must be driven from one goroutine.
type RenderLoop struct {
	cfg           Config
	log           *slog.Logger
	clock         func() time.Time
	rng           *rand.Rand
	cues          CuePlayer
	presenter     Presenter
	collaborators []Collaborator
	script        *ScriptRunner

	scenes  Scenes
	mapper  CoordinateMapper
	machine *StateMachine
	router  *InputRouter
	tear    *TearGenerator
	tearAt  uint64 // machine entry count of the last tear start
	comp    *Compositor

	elapsed Elapsed
	last    time.Time
	started bool
	ticks   uint64
	frame   *image.RGBA

	screenshotQueue []string
	stats           debugStats
}

// NewRenderLoop builds every core component for scenes under cfg. The
// logical canvas is the largest valid scene, and the display scale is
// resolved against it once for the session.
func NewRenderLoop(cfg Config, scenes Scenes, opts ...LoopOption) *RenderLoop {
	l := &RenderLoop{
		cfg:    cfg,
		scenes: scenes,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.rng == nil {
		l.rng = newRand(cfg.Transition.Seed)
	}

	w, h := LogicalSize(cfg.DefaultWidth, cfg.DefaultHeight, scenes.Outside, scenes.Inside, scenes.Focused)
	scale := ResolveScale(cfg.Scale, w, h)
	l.mapper = NewCoordinateMapper(w, h, scale)
	l.machine = NewStateMachine(cfg.Transition, l.log)
	l.machine.SetObserver(l)
	l.tear = NewTearGenerator(l.rng)
	l.comp = NewCompositor(scenes, w, h, cfg.Fit, l.tear, cfg.Transition, l.log)
	l.router = NewInputRouter(l.mapper, l.machine, cfg.Input, l.log)

	dw, dh := l.mapper.DisplaySize()
	l.log.Info("render loop ready",
		"logical", fmt.Sprintf("%dx%d", w, h),
		"scale", scale,
		"display", fmt.Sprintf("%dx%d", dw, dh),
		"fit", cfg.Fit,
		"transition", cfg.Transition.Style,
	)
	for _, m := range l.comp.MissingAssets() {
		l.log.Warn("scene uses placeholder", "scene", m.Scene, "path", m.Path)
	}
	return l
}

func newRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// TransitionStarted turns state machine effects into cue playback and tear
// geometry.
func (l *RenderLoop) TransitionStarted(from, to SceneState, effect Effect) {
	switch effect {
	case EffectBell:
		l.playCue(CueBell)
	case EffectBeginTear:
		l.beginTear()
		l.playCue(CueTear)
	}
}

// beginTear generates fresh tear geometry for the tearing state just
// entered.
func (l *RenderLoop) beginTear() {
	w, h := l.mapper.LogicalSize()
	t := l.cfg.Transition
	l.tear.Begin(w, h, t.TearSegments, t.TearWobble, t.TearDebris)
	l.tearAt = l.machine.Entries()
}

func (l *RenderLoop) playCue(c Cue) {
	if l.cues == nil {
		return
	}
	if err := l.cues.PlayCue(c); err != nil {
		l.log.Warn("cue failed", "cue", c, "err", err)
	}
}

// Tick runs one frame and returns the composed image, which stays valid
// until the next Tick. It returns ErrScriptDone alongside the frame once an
// attached script has finished, and wraps presenter errors.
func (l *RenderLoop) Tick() (*image.RGBA, error) {
	start := l.clock()
	var dt time.Duration
	if l.started {
		dt = max(0, start.Sub(l.last))
	}
	l.last = start
	l.started = true

	if l.script != nil {
		l.script.step(l)
	}
	l.router.ProcessInjected()
	l.machine.Update(dt)
	state := l.machine.State()
	if state == StateTearing && l.tearAt != l.machine.Entries() {
		// Forced into tearing without an effect.
		l.beginTear()
	}
	for _, c := range l.collaborators {
		c.Update(dt, state)
	}

	step := dt.Truncate(time.Millisecond)
	l.elapsed.Outside += step
	l.elapsed.Inside += step
	l.elapsed.Focused += step
	if state == StateTearing {
		l.tear.UpdateDebris(dt)
	}
	updated := l.clock()

	if l.frame != nil {
		l.comp.Release(l.frame)
	}
	l.frame = l.comp.Render(Snapshot{
		State:    state,
		Progress: l.machine.Progress(),
		Elapsed:  l.elapsed,
	})
	rendered := l.clock()

	var err error
	if l.presenter != nil {
		if perr := l.presenter.Present(l.frame); perr != nil {
			err = fmt.Errorf("present frame: %w", perr)
		}
	}
	l.flushScreenshots(l.frame)
	l.ticks++

	if l.cfg.Debug {
		l.stats.add(updated.Sub(start), rendered.Sub(updated), l.clock().Sub(rendered))
		l.debugLog()
	}

	if err == nil && l.script != nil && l.script.Done() {
		err = ErrScriptDone
	}
	return l.frame, err
}

// Run drives Tick at the configured FPS ceiling until ctx is cancelled, the
// script finishes or presenting fails. A finished script returns nil.
func (l *RenderLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.TickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := l.Tick(); err != nil {
				if errors.Is(err, ErrScriptDone) {
					l.log.Info("script finished", "ticks", l.ticks)
					return nil
				}
				return err
			}
		}
	}
}

// State returns the current scene state.
func (l *RenderLoop) State() SceneState { return l.machine.State() }

// TriggerFade requests the outside → inside transition.
func (l *RenderLoop) TriggerFade() bool { return l.machine.TriggerFade() }

// TriggerFocus requests the inside → focused transition.
func (l *RenderLoop) TriggerFocus() bool { return l.machine.TriggerFocus() }

// Force overwrites the scene state without guards.
func (l *RenderLoop) Force(s SceneState) { l.machine.Force(s) }

// Escape leaves the focused scene for the inside scene.
func (l *RenderLoop) Escape() bool { return l.machine.Escape() }

// Machine returns the scene state machine.
func (l *RenderLoop) Machine() *StateMachine { return l.machine }

// Mapper returns the session's coordinate mapper.
func (l *RenderLoop) Mapper() CoordinateMapper { return l.mapper }

// Router returns the input router.
func (l *RenderLoop) Router() *InputRouter { return l.router }

// Compositor returns the frame compositor.
func (l *RenderLoop) Compositor() *Compositor { return l.comp }

// Tear returns the tear generator.
func (l *RenderLoop) Tear() *TearGenerator { return l.tear }

// Config returns the configuration the loop was built with.
func (l *RenderLoop) Config() Config { return l.cfg }

// Frame returns the most recent frame, or nil before the first Tick.
func (l *RenderLoop) Frame() *image.RGBA { return l.frame }

// Ticks returns the number of completed ticks.
func (l *RenderLoop) Ticks() uint64 { return l.ticks }

// Elapsed returns the scene animation clocks.
func (l *RenderLoop) Elapsed() Elapsed { return l.elapsed }
