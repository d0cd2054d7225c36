package pixelcafe

import (
	"testing"
	"time"
)

type recordedEffect struct {
	from, to SceneState
	effect   Effect
}

func newTestMachine(style TransitionStyle) (*StateMachine, *[]recordedEffect) {
	m := NewStateMachine(TransitionConfig{Style: style, CrossfadeFrames: 3, TearFrames: 5}, quietLogger())
	var got []recordedEffect
	m.SetObserver(ObserverFunc(func(from, to SceneState, effect Effect) {
		got = append(got, recordedEffect{from, to, effect})
	}))
	return m, &got
}

func TestStateMachineStartsOutside(t *testing.T) {
	m, _ := newTestMachine(StyleCrossfade)
	if m.State() != StateOutside {
		t.Errorf("State = %v, want outside", m.State())
	}
	if m.Progress() != 0 {
		t.Errorf("Progress = %v, want 0", m.Progress())
	}
}

func TestTriggerGuards(t *testing.T) {
	tests := []struct {
		state     SceneState
		fadeOK    bool
		focusOK   bool
		escapeOK  bool
		afterFade SceneState
	}{
		{StateOutside, true, false, false, StateFading},
		{StateFading, false, false, false, StateFading},
		{StateInside, false, true, false, StateInside},
		{StateFadingToFocused, false, false, true, StateFadingToFocused},
		{StateTearing, false, false, true, StateTearing},
		{StateFocused, false, false, true, StateFocused},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			m, _ := newTestMachine(StyleCrossfade)
			m.Force(tt.state)
			if got := m.TriggerFade(); got != tt.fadeOK {
				t.Errorf("TriggerFade = %v, want %v", got, tt.fadeOK)
			}
			if m.State() != tt.afterFade {
				t.Errorf("State = %v, want %v", m.State(), tt.afterFade)
			}

			m.Force(tt.state)
			if got := m.TriggerFocus(); got != tt.focusOK {
				t.Errorf("TriggerFocus = %v, want %v", got, tt.focusOK)
			}

			m.Force(tt.state)
			if got := m.Escape(); got != tt.escapeOK {
				t.Errorf("Escape = %v, want %v", got, tt.escapeOK)
			}
			if tt.escapeOK && m.State() != StateInside {
				t.Errorf("after Escape State = %v, want inside", m.State())
			}
		})
	}
}

func TestCrossfadeCompletesAfterDuration(t *testing.T) {
	m, effects := newTestMachine(StyleCrossfade)
	if !m.TriggerFade() {
		t.Fatal("TriggerFade rejected")
	}
	if len(*effects) != 1 || (*effects)[0] != (recordedEffect{StateOutside, StateFading, EffectBell}) {
		t.Fatalf("effects = %+v", *effects)
	}

	for i := 1; i < 3; i++ {
		if m.Update(time.Millisecond) {
			t.Fatalf("completed early at tick %d", i)
		}
		if want := float64(i) / 3; m.Progress() != want {
			t.Errorf("tick %d Progress = %v, want %v", i, m.Progress(), want)
		}
	}
	if !m.Update(time.Millisecond) {
		t.Fatal("should complete on the third tick")
	}
	if m.State() != StateInside {
		t.Errorf("State = %v, want inside", m.State())
	}
	if m.Update(time.Second) {
		t.Error("steady state must not change on Update")
	}
	if len(*effects) != 1 {
		t.Errorf("completion fired %d effects, want 1 total", len(*effects))
	}
}

func TestFocusStyles(t *testing.T) {
	tests := []struct {
		style  TransitionStyle
		via    SceneState
		effect Effect
		ticks  int
	}{
		{StyleCrossfade, StateFadingToFocused, EffectBell, 3},
		{StyleTear, StateTearing, EffectBeginTear, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			m, effects := newTestMachine(tt.style)
			m.Force(StateInside)
			if !m.TriggerFocus() {
				t.Fatal("TriggerFocus rejected")
			}
			if m.State() != tt.via {
				t.Fatalf("State = %v, want %v", m.State(), tt.via)
			}
			if got := (*effects)[0].effect; got != tt.effect {
				t.Errorf("effect = %v, want %v", got, tt.effect)
			}
			for i := 0; i < tt.ticks; i++ {
				m.Update(0)
			}
			if m.State() != StateFocused {
				t.Errorf("State = %v after %d ticks, want focused", m.State(), tt.ticks)
			}
		})
	}
}

func TestForceResetsCounterSilently(t *testing.T) {
	m, effects := newTestMachine(StyleTear)
	m.Force(StateInside)
	m.TriggerFocus()
	m.Update(0)
	m.Update(0)
	m.Force(StateTearing)
	if got := m.Context().FadeCounter; got != 0 {
		t.Errorf("FadeCounter = %d, want 0", got)
	}
	if got := m.Context().Duration; got != 5 {
		t.Errorf("Duration = %d, want 5", got)
	}
	if len(*effects) != 1 {
		t.Errorf("Force fired effects: %+v", *effects)
	}
}

func TestEntriesCountForcedReentry(t *testing.T) {
	m, _ := newTestMachine(StyleTear)
	start := m.Entries()
	m.Force(StateTearing)
	m.Force(StateTearing)
	if got := m.Entries() - start; got != 2 {
		t.Errorf("entries after two forces = %d, want 2", got)
	}
	m.Update(0)
	if got := m.Entries() - start; got != 2 {
		t.Errorf("a running tick changed entries to %d", got)
	}
	m.Force(StateInside)
	m.TriggerFocus()
	if got := m.Entries() - start; got != 4 {
		t.Errorf("entries = %d, want 4", got)
	}
}

func TestDurationsRaisedToOneTick(t *testing.T) {
	m := NewStateMachine(TransitionConfig{}, quietLogger())
	if m.Style() != StyleCrossfade {
		t.Errorf("Style = %q, want crossfade", m.Style())
	}
	m.TriggerFade()
	if !m.Update(0) {
		t.Error("zero duration should complete on the first tick")
	}
}

func TestTransitionContextProgress(t *testing.T) {
	tests := []struct {
		ctx  TransitionContext
		want float64
	}{
		{TransitionContext{0, 4}, 0},
		{TransitionContext{2, 4}, 0.5},
		{TransitionContext{6, 4}, 1},
		{TransitionContext{0, 0}, 1},
	}
	for _, tt := range tests {
		if got := tt.ctx.Progress(); got != tt.want {
			t.Errorf("%+v Progress = %v, want %v", tt.ctx, got, tt.want)
		}
	}
}

func TestTransitionsTableCopy(t *testing.T) {
	rows := Transitions()
	rows[0].To = StateFocused
	if Transitions()[0].To != StateFading {
		t.Error("Transitions must return a copy")
	}
}

func TestStateNames(t *testing.T) {
	if got := StateFadingToFocused.String(); got != "fading_to_focused" {
		t.Errorf("String = %q", got)
	}
	if got := SceneState(99).String(); got != "unknown" {
		t.Errorf("String = %q, want unknown", got)
	}
}
