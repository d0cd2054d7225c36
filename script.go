package pixelcafe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// scriptStep is a single action in a playback script. Coordinates are
// logical pixels, matching what screenshots show.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
	// State is the target of "force" and the condition of "wait".
	State string `json:"state,omitempty"`
}

// script is the top-level JSON structure of a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var (
	errNoSteps = errors.New("no steps")

	knownActions = map[string]bool{
		"click": true, "move": true, "key": true, "fade": true, "focus": true,
		"escape": true, "force": true, "wait": true, "screenshot": true,
	}
)

// ScriptRunner sequences injected input, direct triggers and screenshots
// across ticks for deterministic headless playback. Attach it to a
// RenderLoop with WithScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitState SceneState
	waiting   bool
	done      bool
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", errNoSteps)
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			if _, err := parseKey(st.Key); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		}
		if st.Action == "force" || (st.Action == "wait" && st.State != "") {
			if _, err := ParseSceneState(st.State); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// LoadScriptFile reads and parses a playback script from path.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return LoadScript(data)
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(l *RenderLoop) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if l.router.Pending() > 0 {
		return
	}
	if r.waiting {
		if l.machine.State() != r.waitState {
			return
		}
		r.waiting = false
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	m := l.router.Mapper()
	half := m.Scale() / 2
	switch st.Action {
	case "screenshot":
		l.Screenshot(st.Label)
	case "click":
		dx, dy := m.LogicalToDevice(st.X, st.Y)
		l.router.InjectClick(dx+half, dy+half)
	case "move":
		dx, dy := m.LogicalToDevice(st.X, st.Y)
		l.router.InjectMove(dx+half, dy+half)
	case "key":
		k, _ := parseKey(st.Key)
		l.router.InjectKey(k)
	case "fade":
		l.TriggerFade()
	case "focus":
		l.TriggerFocus()
	case "escape":
		l.Escape()
	case "force":
		s, _ := ParseSceneState(st.State)
		l.Force(s)
	case "wait":
		if st.State != "" {
			r.waitState, _ = ParseSceneState(st.State)
			r.waiting = l.machine.State() != r.waitState
		} else if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.waiting && l.router.Pending() == 0 {
		r.done = true
	}
}

func parseKey(name string) (Key, error) {
	switch name {
	case "escape", "esc":
		return KeyEscape, nil
	case "enter", "return":
		return KeyEnter, nil
	default:
		return 0, fmt.Errorf("unknown key %q", name)
	}
}

// ParseSceneState returns the state named s.
func ParseSceneState(s string) (SceneState, error) {
	for i, name := range stateNames {
		if name == s {
			return SceneState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scene state %q", s)
}
