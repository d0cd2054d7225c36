package pixelcafe

import (
	"log/slog"
	"time"
)

// SceneState identifies which scene (or transition between scenes) is active.
type SceneState uint8

const (
	StateOutside         SceneState = iota // street view, waiting for the door click
	StateFading                            // crossfade outside → inside
	StateInside                            // cafe interior
	StateFadingToFocused                   // crossfade inside → focused
	StateTearing                           // torn-page reveal inside → focused
	StateFocused                           // focused desk view
)

var stateNames = [...]string{
	StateOutside:         "outside",
	StateFading:          "fading",
	StateInside:          "inside",
	StateFadingToFocused: "fading_to_focused",
	StateTearing:         "tearing",
	StateFocused:         "focused",
}

// String returns the state name.
func (s SceneState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Timed reports whether the state advances a transition counter on Update.
func (s SceneState) Timed() bool {
	return s == StateFading || s == StateFadingToFocused || s == StateTearing
}

// Trigger is an input to the transition table.
type Trigger uint8

const (
	TriggerFade     Trigger = iota // door click: outside → inside
	TriggerFocus                   // "focused" mood chosen: inside → focused
	TriggerComplete                // transition counter reached its duration
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerFade:
		return "fade"
	case TriggerFocus:
		return "focus"
	case TriggerComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Effect is the side effect attached to a transition row.
type Effect uint8

const (
	EffectNone      Effect = iota
	EffectBell             // play the bell cue
	EffectBeginTear        // generate tear geometry and play the tear cue
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectBell:
		return "bell"
	case EffectBeginTear:
		return "begin_tear"
	default:
		return "unknown"
	}
}

// Transition is one row of the state × trigger table. Style is only set on
// rows that depend on the configured transition style.
type Transition struct {
	From    SceneState
	Trigger Trigger
	Style   TransitionStyle
	To      SceneState
	Effect  Effect
}

var transitionTable = []Transition{
	{From: StateOutside, Trigger: TriggerFade, To: StateFading, Effect: EffectBell},
	{From: StateFading, Trigger: TriggerComplete, To: StateInside},
	{From: StateInside, Trigger: TriggerFocus, Style: StyleCrossfade, To: StateFadingToFocused, Effect: EffectBell},
	{From: StateInside, Trigger: TriggerFocus, Style: StyleTear, To: StateTearing, Effect: EffectBeginTear},
	{From: StateFadingToFocused, Trigger: TriggerComplete, To: StateFocused},
	{From: StateTearing, Trigger: TriggerComplete, To: StateFocused},
}

// Transitions returns a copy of the full transition table.
func Transitions() []Transition {
	out := make([]Transition, len(transitionTable))
	copy(out, transitionTable)
	return out
}

// lookupTransition finds the row for (from, trigger) under style.
func lookupTransition(from SceneState, trigger Trigger, style TransitionStyle) (Transition, bool) {
	for _, t := range transitionTable {
		if t.From != from || t.Trigger != trigger {
			continue
		}
		if t.Style != "" && t.Style != style {
			continue
		}
		return t, true
	}
	return Transition{}, false
}

// TransitionContext is the tick counter of the running transition.
// 0 <= FadeCounter; the transition is complete once FadeCounter >= Duration.
type TransitionContext struct {
	FadeCounter int
	Duration    int
}

// Complete reports whether the counter reached the duration.
func (c TransitionContext) Complete() bool {
	return c.FadeCounter >= c.Duration
}

// Progress returns FadeCounter/Duration clamped to [0, 1].
func (c TransitionContext) Progress() float64 {
	if c.Duration <= 0 {
		return 1
	}
	return clamp01(float64(c.FadeCounter) / float64(c.Duration))
}

// Observer is notified whenever a transition starts through a trigger.
// Forced state changes do not notify.
type Observer interface {
	TransitionStarted(from, to SceneState, effect Effect)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to SceneState, effect Effect)

// TransitionStarted calls f.
func (f ObserverFunc) TransitionStarted(from, to SceneState, effect Effect) {
	f(from, to, effect)
}

// StateMachine owns the current scene state and the transition counter.
// It is driven from the tick goroutine only.
type StateMachine struct {
	state     SceneState
	ctx       TransitionContext
	style     TransitionStyle
	crossfade int
	tear      int
	observer  Observer
	log       *slog.Logger

	// entries counts state entries, forced or triggered
	entries uint64
}

// NewStateMachine creates a machine in StateOutside. Durations below one tick
// are raised to one.
func NewStateMachine(cfg TransitionConfig, logger *slog.Logger) *StateMachine {
	if logger == nil {
		logger = slog.Default()
	}
	style := cfg.Style
	if style == "" {
		style = StyleCrossfade
	}
	return &StateMachine{
		state:     StateOutside,
		style:     style,
		crossfade: max(1, cfg.CrossfadeFrames),
		tear:      max(1, cfg.TearFrames),
		log:       logger.With("component", "scene"),
	}
}

// SetObserver installs the side-effect hook. nil removes it.
func (m *StateMachine) SetObserver(o Observer) {
	m.observer = o
}

// State returns the active state.
func (m *StateMachine) State() SceneState { return m.state }

// Entries returns how many times a state has been entered. A forced
// re-entry of the same state still counts, so callers can tell a fresh
// transition from a continuing one.
func (m *StateMachine) Entries() uint64 { return m.entries }

// Context returns the running transition counter.
func (m *StateMachine) Context() TransitionContext { return m.ctx }

// Progress returns the running transition's progress in [0, 1], or 0 in a
// steady state.
func (m *StateMachine) Progress() float64 {
	if !m.state.Timed() {
		return 0
	}
	return m.ctx.Progress()
}

// Style returns the configured inside → focused transition style.
func (m *StateMachine) Style() TransitionStyle { return m.style }

// TriggerFade starts the outside → inside crossfade. Accepted only in
// StateOutside; anywhere else it is a no-op. Reports whether it was accepted.
func (m *StateMachine) TriggerFade() bool {
	return m.fire(TriggerFade)
}

// TriggerFocus starts the inside → focused transition in the configured
// style. Accepted only in StateInside. Reports whether it was accepted.
func (m *StateMachine) TriggerFocus() bool {
	return m.fire(TriggerFocus)
}

func (m *StateMachine) fire(trigger Trigger) bool {
	t, ok := lookupTransition(m.state, trigger, m.style)
	if !ok {
		m.log.Debug("trigger ignored", "trigger", trigger, "state", m.state)
		return false
	}
	m.enter(t.To)
	m.log.Debug("transition started", "from", t.From, "to", t.To, "effect", t.Effect)
	if m.observer != nil {
		m.observer.TransitionStarted(t.From, t.To, t.Effect)
	}
	return true
}

// enter switches state and resets the counter for the new state's duration.
func (m *StateMachine) enter(s SceneState) {
	m.state = s
	m.entries++
	m.ctx = TransitionContext{Duration: m.durationFor(s)}
}

func (m *StateMachine) durationFor(s SceneState) int {
	switch s {
	case StateFading, StateFadingToFocused:
		return m.crossfade
	case StateTearing:
		return m.tear
	default:
		return 0
	}
}

// Update advances the running transition by one tick. The counter is frame
// counted; dt is accepted for symmetry with other tick participants but does
// not scale the step. Steady states are left untouched. Reports whether the
// state changed.
func (m *StateMachine) Update(dt time.Duration) bool {
	if !m.state.Timed() {
		return false
	}
	m.ctx.FadeCounter++
	if !m.ctx.Complete() {
		return false
	}
	t, ok := lookupTransition(m.state, TriggerComplete, m.style)
	if !ok {
		return false
	}
	m.log.Debug("transition complete", "from", t.From, "to", t.To, "ticks", m.ctx.FadeCounter)
	m.enter(t.To)
	return true
}

// Force overwrites the state without consulting the table, resetting the
// counter. Used by collaborators that exit nested UI. No effect fires.
func (m *StateMachine) Force(s SceneState) {
	m.log.Debug("state forced", "from", m.state, "to", s)
	m.enter(s)
}

// Escape returns to StateInside from the focused scene or any transition
// toward it. Reports whether the state changed.
func (m *StateMachine) Escape() bool {
	switch m.state {
	case StateFadingToFocused, StateTearing, StateFocused:
		m.Force(StateInside)
		return true
	default:
		return false
	}
}
